package models

// GORM models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Feedback status values
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups feedback by campus area (wifi, hostel, cafeteria, ...)
type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`

	// Associations
	Feedback []FeedbackRecord `json:"feedback,omitempty" gorm:"foreignKey:CategoryID"`
}

// FeedbackRecord represents one submitted piece of feedback
type FeedbackRecord struct {
	BaseModel
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text;not null"`
	Status      string `json:"status" gorm:"default:'pending';check:status IN ('pending','in_progress','resolved','rejected')"`
	CategoryID  *uint  `json:"category_id"`
	SubmittedBy string `json:"submitted_by"`
	UserSession string `json:"user_session"`

	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Associations
	Category  *Category          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Responses []FeedbackResponse `json:"responses,omitempty" gorm:"foreignKey:FeedbackID"`
}

// ComparableText is the concatenation of title and description used for
// similarity scoring. Never persisted.
func (f *FeedbackRecord) ComparableText() string {
	if f.Title == "" {
		return f.Description
	}
	return f.Title + " " + f.Description
}

// FeedbackResponse represents an admin reply to a feedback record
type FeedbackResponse struct {
	BaseModel
	FeedbackID   uint   `json:"feedback_id" gorm:"not null;index"`
	AdminName    string `json:"admin_name" gorm:"not null"`
	ResponseText string `json:"response_text" gorm:"type:text;not null"`

	// Associations
	Feedback FeedbackRecord `json:"-" gorm:"foreignKey:FeedbackID"`
}

// DuplicateCheckQuery records duplicate-check analytics per request
type DuplicateCheckQuery struct {
	BaseModel
	QueryText      string    `json:"query_text" gorm:"type:text;not null"`
	UserSession    string    `json:"user_session"`
	MatchCount     int       `json:"match_count" gorm:"default:0"`
	ResponseTimeMs int       `json:"response_time_ms"`
	CheckedAt      time.Time `json:"checked_at" gorm:"default:NOW()"`
	UserAgent      string    `json:"user_agent"`
	IPAddress      string    `json:"ip_address" gorm:"type:inet"`
}

// PopularTopic represents frequently reported feedback areas
type PopularTopic struct {
	BaseModel
	TopicText    string    `json:"topic_text" gorm:"unique;not null"`
	ReportCount  int       `json:"report_count" gorm:"default:1"`
	LastReported time.Time `json:"last_reported" gorm:"default:NOW()"`
}

// SystemHealth represents service health monitoring
type SystemHealth struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ServiceName    string    `json:"service_name" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;check:status IN ('healthy','degraded','unhealthy')"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at" gorm:"default:NOW()"`
}

// Database interfaces for repository pattern
type FeedbackRepository interface {
	Create(feedback *FeedbackRecord) error
	GetByID(id uint) (*FeedbackRecord, error)
	GetRecent(limit int, categoryID *uint) ([]FeedbackRecord, error)
	UpdateStatus(id uint, status string) error
}

type ResponseRepository interface {
	Create(response *FeedbackResponse) error
	GetByFeedbackID(feedbackID uint) ([]FeedbackResponse, error)
}

type CategoryRepository interface {
	Create(category *Category) error
	GetByID(id uint) (*Category, error)
	GetAll() ([]Category, error)
}

type DuplicateCheckQueryRepository interface {
	Create(query *DuplicateCheckQuery) error
	GetRecent(limit int) ([]DuplicateCheckQuery, error)
}

type PopularTopicRepository interface {
	IncrementCount(topicText string) error
	GetTop(limit int) ([]PopularTopic, error)
}

type SystemHealthRepository interface {
	UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error
	GetServiceHealth(serviceName string) (*SystemHealth, error)
	GetAllServicesHealth() ([]SystemHealth, error)
}

// TableName methods for custom table names
func (Category) TableName() string            { return "categories" }
func (FeedbackRecord) TableName() string      { return "feedback_records" }
func (FeedbackResponse) TableName() string    { return "feedback_responses" }
func (DuplicateCheckQuery) TableName() string { return "duplicate_check_queries" }
func (PopularTopic) TableName() string        { return "popular_topics" }
func (SystemHealth) TableName() string        { return "system_health" }

// Model validation methods
func (f *FeedbackRecord) Validate() error {
	if f.Description == "" {
		return fmt.Errorf("description is required")
	}
	validStatuses := map[string]bool{
		StatusPending:    true,
		StatusInProgress: true,
		StatusResolved:   true,
		StatusRejected:   true,
	}
	if f.Status != "" && !validStatuses[f.Status] {
		return fmt.Errorf("invalid status: %s", f.Status)
	}
	return nil
}

func (r *FeedbackResponse) Validate() error {
	if r.FeedbackID == 0 {
		return fmt.Errorf("feedback ID is required")
	}
	if r.ResponseText == "" {
		return fmt.Errorf("response text is required")
	}
	return nil
}

func (q *DuplicateCheckQuery) Validate() error {
	if q.QueryText == "" {
		return fmt.Errorf("query text is required")
	}
	if q.ResponseTimeMs < 0 {
		return fmt.Errorf("response time cannot be negative")
	}
	return nil
}

// GORM hooks
func (f *FeedbackRecord) BeforeCreate(tx *gorm.DB) error {
	return f.Validate()
}

func (r *FeedbackResponse) BeforeCreate(tx *gorm.DB) error {
	return r.Validate()
}

func (q *DuplicateCheckQuery) BeforeCreate(tx *gorm.DB) error {
	return q.Validate()
}
