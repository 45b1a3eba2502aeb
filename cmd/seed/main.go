package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/campusvoice/backend/internal/config"
	"github.com/campusvoice/backend/internal/database"
	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/internal/semantic"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// SeedCategory describes one campus area to create
type SeedCategory struct {
	Name        string
	Description string
}

// SeedFeedback describes one fixture feedback record
type SeedFeedback struct {
	Title       string
	Description string
	Category    string
	Status      string
	SubmittedBy string
	Responses   []SeedResponse
}

type SeedResponse struct {
	AdminName string
	Text      string
}

var (
	Categories = []SeedCategory{
		{Name: "WiFi & Network", Description: "Campus internet and network connectivity"},
		{Name: "Hostel", Description: "Hostel facilities and maintenance"},
		{Name: "Cafeteria", Description: "Food quality and cafeteria service"},
		{Name: "Classrooms", Description: "Lecture halls, labs and equipment"},
		{Name: "Library", Description: "Library services and study spaces"},
		{Name: "Transport", Description: "Campus shuttle and parking"},
	}

	FeedbackFixtures = []SeedFeedback{
		{
			Title:       "Wifi keeps dropping in the library",
			Description: "The wifi on the second floor of the library disconnects every few minutes during the evening.",
			Category:    "WiFi & Network",
			Status:      models.StatusInProgress,
			SubmittedBy: "student_204",
			Responses: []SeedResponse{
				{AdminName: "IT Desk", Text: "We have identified a faulty access point and ordered a replacement."},
			},
		},
		{
			Title:       "Hostel B water heater broken",
			Description: "There has been no hot water in hostel block B for three days now.",
			Category:    "Hostel",
			Status:      models.StatusPending,
			SubmittedBy: "student_117",
		},
		{
			Title:       "Cold food at dinner",
			Description: "Dinner served at the main cafeteria has been cold almost every day this week.",
			Category:    "Cafeteria",
			Status:      models.StatusResolved,
			SubmittedBy: "student_331",
			Responses: []SeedResponse{
				{AdminName: "Cafeteria Manager", Text: "The serving line heaters were repaired on Monday."},
			},
		},
		{
			Title:       "Projector not working in hall 3",
			Description: "The projector in lecture hall 3 will not turn on and classes keep getting delayed.",
			Category:    "Classrooms",
			Status:      models.StatusPending,
			SubmittedBy: "student_089",
		},
		{
			Title:       "Shuttle always late",
			Description: "The morning shuttle from the north gate is consistently ten minutes late.",
			Category:    "Transport",
			Status:      models.StatusRejected,
			SubmittedBy: "student_412",
			Responses: []SeedResponse{
				{AdminName: "Transport Office", Text: "Shuttle timings were adjusted for roadworks; the schedule is correct."},
			},
		},
		{
			Title:       "Library too noisy",
			Description: "The group study area noise carries into the quiet zone on the first floor.",
			Category:    "Library",
			Status:      models.StatusPending,
			SubmittedBy: "student_260",
		},
	}

	// Command line flags
	dryRun  = flag.Bool("dry-run", false, "Print what would be seeded without writing")
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
	limit   = flag.Int("limit", 0, "Limit number of feedback fixtures to seed (0 = all)")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting CampusVoice seeder...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	fixtures := FeedbackFixtures
	if *limit > 0 && *limit < len(fixtures) {
		fixtures = fixtures[:*limit]
		logger.WithField("limit", *limit).Info("Limited fixtures to seed")
	}

	if *dryRun {
		for _, f := range fixtures {
			logger.WithFields(logrus.Fields{
				"title":     f.Title,
				"category":  f.Category,
				"status":    f.Status,
				"responses": len(f.Responses),
			}).Info("DRY RUN: would seed feedback")
		}
		logger.WithFields(logrus.Fields{
			"categories": len(Categories),
			"feedback":   len(fixtures),
		}).Info("Dry run completed")
		return
	}

	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Migrations failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)

	var semanticService *semantic.Service
	if cfg.Semantic.Enabled {
		if err := cfg.ValidateSemantic(); err != nil {
			logger.WithError(err).Fatal("Semantic backend configuration validation failed")
		}
		semanticClient := semantic.NewClient(cfg.Semantic.BaseURL, cfg.Semantic.APIKey, logger)
		semanticService = semantic.NewService(semanticClient, logger)
	}

	if err := seed(repoManager, semanticService, fixtures, logger); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	logger.Info("Seeding completed successfully")
}

func seed(repoManager *repository.RepositoryManager, semanticService *semantic.Service, fixtures []SeedFeedback, logger *logrus.Logger) error {
	categoryIDs := make(map[string]uint, len(Categories))

	for _, c := range Categories {
		category := &models.Category{Name: c.Name, Description: c.Description}
		if err := repoManager.Category.Create(category); err != nil {
			// Re-running the seeder against an existing database is fine;
			// resolve the category instead of failing on the unique index.
			existing, lookupErr := findCategoryByName(repoManager, c.Name)
			if lookupErr != nil {
				return err
			}
			category = existing
		}
		categoryIDs[c.Name] = category.ID
		logger.WithField("category", c.Name).Debug("Category ready")
	}

	for i, f := range fixtures {
		categoryID := categoryIDs[f.Category]
		feedback := &models.FeedbackRecord{
			Title:       f.Title,
			Description: f.Description,
			Status:      f.Status,
			CategoryID:  &categoryID,
			SubmittedBy: f.SubmittedBy,
		}

		if err := repoManager.Feedback.Create(feedback); err != nil {
			logger.WithError(err).WithField("title", f.Title).Error("Failed to seed feedback")
			continue
		}

		for _, r := range f.Responses {
			response := &models.FeedbackResponse{
				FeedbackID:   feedback.ID,
				AdminName:    r.AdminName,
				ResponseText: r.Text,
			}
			if err := repoManager.Response.Create(response); err != nil {
				logger.WithError(err).WithField("feedback_id", feedback.ID).Warn("Failed to seed response")
			}
		}

		if err := repoManager.PopularTopic.IncrementCount(f.Category); err != nil {
			logger.WithError(err).WithField("topic", f.Category).Warn("Failed to bump topic")
		}

		if semanticService != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := semanticService.IndexFeedback(ctx, feedback.ID, feedback.ComparableText()); err != nil {
				logger.WithError(err).WithField("feedback_id", feedback.ID).Warn("Failed to index feedback")
			}
			cancel()
		}

		logger.WithFields(logrus.Fields{
			"title":    f.Title,
			"progress": i + 1,
			"total":    len(fixtures),
		}).Info("Feedback seeded")
	}

	return nil
}

func findCategoryByName(repoManager *repository.RepositoryManager, name string) (*models.Category, error) {
	categories, err := repoManager.Category.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}
	return nil, os.ErrNotExist
}
