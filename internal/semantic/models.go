package semantic

// Request models
type IndexRequest struct {
	Documents []Document `json:"documents"`
	Source    string     `json:"source,omitempty"`
}

type Document struct {
	ExternalID string `json:"external_id"`
	Content    string `json:"content"`
}

type SearchRequest struct {
	Query    string  `json:"query"`
	MinScore float64 `json:"min_score"`
	Limit    int     `json:"limit,omitempty"`
}

type DeleteRequest struct {
	Source     string `json:"source,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// Response models
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type SearchResult struct {
	ExternalID string  `json:"external_id"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}
