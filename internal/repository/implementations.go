package repository

import (
	"github.com/campusvoice/backend/internal/models"
	"gorm.io/gorm"
)

// FeedbackRepositoryImpl implements FeedbackRepository
type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) models.FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) Create(feedback *models.FeedbackRecord) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) GetByID(id uint) (*models.FeedbackRecord, error) {
	var feedback models.FeedbackRecord
	err := r.db.Preload("Category").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&feedback, id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// GetRecent returns the newest non-deleted records, optionally filtered
// by category. Soft-deleted rows are excluded by gorm's default scope.
func (r *FeedbackRepositoryImpl) GetRecent(limit int, categoryID *uint) ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord

	query := r.db.Preload("Category").Order("created_at DESC").Limit(limit)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	err := query.Find(&records).Error
	return records, err
}

func (r *FeedbackRepositoryImpl) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.FeedbackRecord{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ResponseRepositoryImpl implements ResponseRepository
type ResponseRepositoryImpl struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) models.ResponseRepository {
	return &ResponseRepositoryImpl{db: db}
}

func (r *ResponseRepositoryImpl) Create(response *models.FeedbackResponse) error {
	return r.db.Create(response).Error
}

func (r *ResponseRepositoryImpl) GetByFeedbackID(feedbackID uint) ([]models.FeedbackResponse, error) {
	var responses []models.FeedbackResponse
	err := r.db.Where("feedback_id = ?", feedbackID).
		Order("created_at DESC").
		Find(&responses).Error
	return responses, err
}

// CategoryRepositoryImpl implements CategoryRepository
type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) models.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepositoryImpl) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// DuplicateCheckQueryRepositoryImpl implements DuplicateCheckQueryRepository
type DuplicateCheckQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewDuplicateCheckQueryRepository(db *gorm.DB) models.DuplicateCheckQueryRepository {
	return &DuplicateCheckQueryRepositoryImpl{db: db}
}

func (r *DuplicateCheckQueryRepositoryImpl) Create(query *models.DuplicateCheckQuery) error {
	return r.db.Create(query).Error
}

func (r *DuplicateCheckQueryRepositoryImpl) GetRecent(limit int) ([]models.DuplicateCheckQuery, error) {
	var queries []models.DuplicateCheckQuery
	err := r.db.Order("checked_at DESC").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

// PopularTopicRepositoryImpl implements PopularTopicRepository
type PopularTopicRepositoryImpl struct {
	db *gorm.DB
}

func NewPopularTopicRepository(db *gorm.DB) models.PopularTopicRepository {
	return &PopularTopicRepositoryImpl{db: db}
}

func (r *PopularTopicRepositoryImpl) IncrementCount(topicText string) error {
	return r.db.Exec(`
		INSERT INTO popular_topics (topic_text, report_count, last_reported, created_at, updated_at)
		VALUES (?, 1, NOW(), NOW(), NOW())
		ON CONFLICT (topic_text)
		DO UPDATE SET
			report_count = popular_topics.report_count + 1,
			last_reported = NOW(),
			updated_at = NOW()
	`, topicText).Error
}

func (r *PopularTopicRepositoryImpl) GetTop(limit int) ([]models.PopularTopic, error) {
	var topics []models.PopularTopic
	err := r.db.Order("report_count DESC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

// SystemHealthRepositoryImpl implements SystemHealthRepository
type SystemHealthRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemHealthRepository(db *gorm.DB) models.SystemHealthRepository {
	return &SystemHealthRepositoryImpl{db: db}
}

func (r *SystemHealthRepositoryImpl) UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error {
	return r.db.Exec(`
		INSERT INTO system_health (service_name, status, response_time_ms, error_message, checked_at)
		VALUES (?, ?, ?, ?, NOW())
	`, serviceName, status, responseTime, errorMsg).Error
}

func (r *SystemHealthRepositoryImpl) GetServiceHealth(serviceName string) (*models.SystemHealth, error) {
	var health models.SystemHealth
	err := r.db.Where("service_name = ?", serviceName).
		Order("checked_at DESC").
		First(&health).Error
	if err != nil {
		return nil, err
	}
	return &health, nil
}

func (r *SystemHealthRepositoryImpl) GetAllServicesHealth() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Raw(`
		SELECT DISTINCT ON (service_name) *
		FROM system_health
		ORDER BY service_name, checked_at DESC
	`).Scan(&health).Error
	return health, err
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	Feedback            models.FeedbackRepository
	Response            models.ResponseRepository
	Category            models.CategoryRepository
	DuplicateCheckQuery models.DuplicateCheckQueryRepository
	PopularTopic        models.PopularTopicRepository
	SystemHealth        models.SystemHealthRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Feedback:            NewFeedbackRepository(db),
		Response:            NewResponseRepository(db),
		Category:            NewCategoryRepository(db),
		DuplicateCheckQuery: NewDuplicateCheckQueryRepository(db),
		PopularTopic:        NewPopularTopicRepository(db),
		SystemHealth:        NewSystemHealthRepository(db),
	}
}
