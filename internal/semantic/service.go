package semantic

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Service struct {
	client *Client
	logger *logrus.Logger
}

func NewService(client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// IndexFeedback pushes one feedback record's comparable text to the
// embedding backend for later semantic lookup.
func (s *Service) IndexFeedback(ctx context.Context, feedbackID uint, text string) error {
	req := IndexRequest{
		Documents: []Document{{
			ExternalID: fmt.Sprintf("feedback/%d", feedbackID),
			Content:    text,
		}},
		Source: "campusvoice/feedback",
	}

	return s.client.IndexWithRetry(ctx, req)
}

// FindSimilar queries the embedding backend for semantically close
// feedback texts.
func (s *Service) FindSimilar(ctx context.Context, query string, minScore float64, limit int) ([]SearchResult, error) {
	req := SearchRequest{
		Query:    query,
		MinScore: minScore,
		Limit:    limit,
	}

	response, err := s.client.SearchWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	return response.Results, nil
}

// RemoveFeedback deletes a feedback record's document from the backend
func (s *Service) RemoveFeedback(ctx context.Context, feedbackID uint) error {
	req := DeleteRequest{
		ExternalID: fmt.Sprintf("feedback/%d", feedbackID),
	}

	return s.client.DeleteDocuments(req)
}
