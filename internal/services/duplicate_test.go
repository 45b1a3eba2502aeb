package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/campusvoice/backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedbackRepo struct {
	records []models.FeedbackRecord
	err     error
	calls   int
}

func (f *fakeFeedbackRepo) Create(feedback *models.FeedbackRecord) error { return nil }

func (f *fakeFeedbackRepo) GetByID(id uint) (*models.FeedbackRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, fmt.Errorf("record %d not found", id)
}

func (f *fakeFeedbackRepo) GetRecent(limit int, categoryID *uint) ([]models.FeedbackRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeFeedbackRepo) UpdateStatus(id uint, status string) error { return nil }

type fakeResponseRepo struct {
	responses map[uint][]models.FeedbackResponse
	err       error
}

func (f *fakeResponseRepo) Create(response *models.FeedbackResponse) error { return nil }

func (f *fakeResponseRepo) GetByFeedbackID(feedbackID uint) ([]models.FeedbackResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[feedbackID], nil
}

func record(id uint, description string) models.FeedbackRecord {
	r := models.FeedbackRecord{
		Description: description,
		Status:      models.StatusPending,
	}
	r.ID = id
	r.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return r
}

func newChecker(feedbackRepo *fakeFeedbackRepo, responseRepo *fakeResponseRepo, opts Options) *DuplicateCheckService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewDuplicateCheckService(feedbackRepo, responseRepo, logger, opts)
}

func TestCheckDuplicates_ValidationBoundary(t *testing.T) {
	feedbackRepo := &fakeFeedbackRepo{}
	checker := newChecker(feedbackRepo, &fakeResponseRepo{}, Options{})

	// 9 characters: rejected before storage is touched.
	_, err := checker.CheckDuplicates(context.Background(), "wifi slow", nil, 0)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, 0, feedbackRepo.calls)

	// Exactly 10 characters: proceeds to scoring.
	result, err := checker.CheckDuplicates(context.Background(), "wifi slows", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 1, feedbackRepo.calls)
}

func TestCheckDuplicates_EndToEnd(t *testing.T) {
	feedbackRepo := &fakeFeedbackRepo{
		records: []models.FeedbackRecord{
			record(1, "Library wifi disconnects frequently"),
			record(2, "Parking lot lighting is broken"),
		},
	}
	checker := newChecker(feedbackRepo, &fakeResponseRepo{}, Options{})

	result, err := checker.CheckDuplicates(context.Background(), "The library wifi keeps disconnecting every few minutes", nil, 0)
	require.NoError(t, err)

	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(1), result.SimilarFeedback[0].ID)
	assert.GreaterOrEqual(t, result.SimilarFeedback[0].SimilarityScore, 0.3)
}

func TestCheckDuplicates_TopThreeCap(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	for i := uint(1); i <= 5; i++ {
		repo.records = append(repo.records, record(i, "hostel wifi keeps dropping every evening"))
	}
	checker := newChecker(repo, &fakeResponseRepo{}, Options{})

	result, err := checker.CheckDuplicates(context.Background(), "hostel wifi keeps dropping", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
}

func TestCheckDuplicates_LimitOverride(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	for i := uint(1); i <= 5; i++ {
		repo.records = append(repo.records, record(i, "hostel wifi keeps dropping every evening"))
	}
	checker := newChecker(repo, &fakeResponseRepo{}, Options{})

	result, err := checker.CheckDuplicates(context.Background(), "hostel wifi keeps dropping", nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestCheckDuplicates_MatchesAcrossChunks(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	for i := uint(1); i <= 57; i++ {
		repo.records = append(repo.records, record(i, fmt.Sprintf("cafeteria served cold breakfast on day %d", i)))
	}
	repo.records = append(repo.records, record(58, "projector in lecture hall three will not turn on"))

	checker := newChecker(repo, &fakeResponseRepo{}, Options{ChunkSize: 25})

	result, err := checker.CheckDuplicates(context.Background(), "lecture hall projector will not turn on", nil, 0)
	require.NoError(t, err)

	require.NotZero(t, result.Count)
	assert.Equal(t, uint(58), result.SimilarFeedback[0].ID)
}

func TestCheckDuplicates_IdenticalRecordsBothSurface(t *testing.T) {
	repo := &fakeFeedbackRepo{
		records: []models.FeedbackRecord{
			record(1, "water cooler on second floor leaking"),
			record(2, "water cooler on second floor leaking"),
		},
	}
	checker := newChecker(repo, &fakeResponseRepo{}, Options{})

	result, err := checker.CheckDuplicates(context.Background(), "second floor water cooler is leaking", nil, 0)
	require.NoError(t, err)

	require.Equal(t, 2, result.Count)
	assert.Equal(t, uint(1), result.SimilarFeedback[0].ID)
	assert.Equal(t, uint(2), result.SimilarFeedback[1].ID)
}

func TestCheckDuplicates_ResponseEnrichment(t *testing.T) {
	repo := &fakeFeedbackRepo{
		records: []models.FeedbackRecord{record(1, "Library wifi disconnects frequently")},
	}
	responseRepo := &fakeResponseRepo{
		responses: map[uint][]models.FeedbackResponse{
			1: {{AdminName: "IT Desk", ResponseText: "Router replacement scheduled"}},
		},
	}
	checker := newChecker(repo, responseRepo, Options{})

	result, err := checker.CheckDuplicates(context.Background(), "library wifi keeps disconnecting", nil, 0)
	require.NoError(t, err)

	require.Equal(t, 1, result.Count)
	require.Len(t, result.SimilarFeedback[0].Responses, 1)
	assert.Equal(t, "IT Desk", result.SimilarFeedback[0].Responses[0].AdminName)
	assert.Equal(t, "Router replacement scheduled", result.SimilarFeedback[0].Responses[0].Response)
}

func TestCheckDuplicates_ResponseFetchFailureIsNotFatal(t *testing.T) {
	repo := &fakeFeedbackRepo{
		records: []models.FeedbackRecord{record(1, "Library wifi disconnects frequently")},
	}
	responseRepo := &fakeResponseRepo{err: fmt.Errorf("connection reset")}
	checker := newChecker(repo, responseRepo, Options{})

	result, err := checker.CheckDuplicates(context.Background(), "library wifi keeps disconnecting", nil, 0)
	require.NoError(t, err)

	require.Equal(t, 1, result.Count)
	assert.Empty(t, result.SimilarFeedback[0].Responses)
}

func TestCheckDuplicates_StorageFailure(t *testing.T) {
	repo := &fakeFeedbackRepo{err: fmt.Errorf("connection refused")}
	checker := newChecker(repo, &fakeResponseRepo{}, Options{})

	_, err := checker.CheckDuplicates(context.Background(), "hostel wifi keeps dropping", nil, 0)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestCheckDuplicates_ScoreRounding(t *testing.T) {
	repo := &fakeFeedbackRepo{
		records: []models.FeedbackRecord{record(1, "exam schedule clashes with lab sessions")},
	}
	checker := newChecker(repo, &fakeResponseRepo{}, Options{MinScore: 0.1})

	result, err := checker.CheckDuplicates(context.Background(), "exam schedule clash with laboratory sessions", nil, 0)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)

	score := result.SimilarFeedback[0].SimilarityScore
	assert.InDelta(t, score, float64(int(score*100+0.5))/100, 1e-9)
}
