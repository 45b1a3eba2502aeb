package models

type DuplicateCheckRequest struct {
	Description string `json:"description" binding:"required"`
	CategoryID  *uint  `json:"category_id"`
	Limit       int    `json:"limit"`
}

type DuplicateCheckResult struct {
	SimilarFeedback []SimilarFeedbackView `json:"similar_feedback"`
	Count           int                   `json:"count"`
}

// SimilarFeedbackView is the response shape for one matched record
type SimilarFeedbackView struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	Category        string         `json:"category"`
	SubmittedBy     string         `json:"submitted_by"`
	SubmittedDate   string         `json:"submitted_date"`
	SimilarityScore float64        `json:"similarity_score"`
	Responses       []ResponseView `json:"responses"`
}

type ResponseView struct {
	Response  string `json:"response"`
	CreatedAt string `json:"created_at"`
	AdminName string `json:"admin_name"`
}

type SubmitFeedbackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description" binding:"required"`
	CategoryID  *uint  `json:"category_id"`
	SubmittedBy string `json:"submitted_by"`
}

type SubmitFeedbackResult struct {
	Feedback        *FeedbackRecord       `json:"feedback"`
	SimilarFeedback []SimilarFeedbackView `json:"similar_feedback,omitempty"`
	SimilarCount    int                   `json:"similar_count"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddResponseRequest struct {
	AdminName    string `json:"admin_name" binding:"required"`
	ResponseText string `json:"response_text" binding:"required"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
