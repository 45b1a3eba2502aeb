package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/internal/semantic"
	"github.com/sirupsen/logrus"
)

const semanticIndexTimeout = 15 * time.Second

// FeedbackService handles the submission flow and admin operations.
type FeedbackService struct {
	repoManager      *repository.RepositoryManager
	duplicateChecker *DuplicateCheckService
	semanticService  *semantic.Service
	logger           *logrus.Logger
}

func NewFeedbackService(
	repoManager *repository.RepositoryManager,
	duplicateChecker *DuplicateCheckService,
	semanticService *semantic.Service,
	logger *logrus.Logger,
) *FeedbackService {
	return &FeedbackService{
		repoManager:      repoManager,
		duplicateChecker: duplicateChecker,
		semanticService:  semanticService,
		logger:           logger,
	}
}

// Submit stores new feedback. The duplicate check runs first so the
// submitter sees similar existing feedback alongside their own record;
// an engine failure never blocks the submission.
func (s *FeedbackService) Submit(ctx context.Context, req *models.SubmitFeedbackRequest, userSession string) (*models.SubmitFeedbackResult, error) {
	result := &models.SubmitFeedbackResult{}

	duplicates, err := s.duplicateChecker.CheckDuplicates(ctx, req.Description, req.CategoryID, 0)
	if err != nil && !IsValidationError(err) {
		s.logger.WithError(err).Warn("Duplicate check failed, accepting submission anyway")
	}
	if duplicates != nil {
		result.SimilarFeedback = duplicates.SimilarFeedback
		result.SimilarCount = duplicates.Count
	}

	feedback := &models.FeedbackRecord{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusPending,
		CategoryID:  req.CategoryID,
		SubmittedBy: req.SubmittedBy,
		UserSession: userSession,
	}

	if err := s.repoManager.Feedback.Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	result.Feedback = feedback

	s.bumpTopic(req.CategoryID)

	if s.semanticService != nil {
		go s.indexSemantic(feedback)
	}

	return result, nil
}

// GetByID returns one feedback record with its responses
func (s *FeedbackService) GetByID(id uint) (*models.FeedbackRecord, error) {
	return s.repoManager.Feedback.GetByID(id)
}

// ListRecent returns the newest feedback, optionally filtered by category
func (s *FeedbackService) ListRecent(limit int, categoryID *uint) ([]models.FeedbackRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repoManager.Feedback.GetRecent(limit, categoryID)
}

// AddResponse appends an admin response to a feedback record
func (s *FeedbackService) AddResponse(feedbackID uint, adminName, responseText string) (*models.FeedbackResponse, error) {
	if _, err := s.repoManager.Feedback.GetByID(feedbackID); err != nil {
		return nil, fmt.Errorf("feedback not found: %w", err)
	}

	response := &models.FeedbackResponse{
		FeedbackID:   feedbackID,
		AdminName:    adminName,
		ResponseText: responseText,
	}

	if err := s.repoManager.Response.Create(response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	return response, nil
}

// UpdateStatus transitions a feedback record to a new status
func (s *FeedbackService) UpdateStatus(feedbackID uint, status string) error {
	switch status {
	case models.StatusPending, models.StatusInProgress, models.StatusResolved, models.StatusRejected:
	default:
		return fmt.Errorf("invalid status: %s", status)
	}

	return s.repoManager.Feedback.UpdateStatus(feedbackID, status)
}

// bumpTopic increments the trending counter for the feedback's category
func (s *FeedbackService) bumpTopic(categoryID *uint) {
	if categoryID == nil {
		return
	}

	category, err := s.repoManager.Category.GetByID(*categoryID)
	if err != nil {
		s.logger.WithError(err).WithField("category_id", *categoryID).Warn("Failed to resolve category for topic tracking")
		return
	}

	if err := s.repoManager.PopularTopic.IncrementCount(category.Name); err != nil {
		s.logger.WithError(err).WithField("topic", category.Name).Warn("Failed to update popular topics")
	}
}

func (s *FeedbackService) indexSemantic(feedback *models.FeedbackRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), semanticIndexTimeout)
	defer cancel()

	if err := s.semanticService.IndexFeedback(ctx, feedback.ID, feedback.ComparableText()); err != nil {
		s.logger.WithError(err).WithField("feedback_id", feedback.ID).Warn("Failed to index feedback in semantic backend")
	}
}
