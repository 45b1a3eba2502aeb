package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/internal/services"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFeedbackRepo struct {
	records []models.FeedbackRecord
}

func (r *stubFeedbackRepo) Create(feedback *models.FeedbackRecord) error { return nil }

func (r *stubFeedbackRepo) GetByID(id uint) (*models.FeedbackRecord, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			return &r.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFeedbackRepo) GetRecent(limit int, categoryID *uint) ([]models.FeedbackRecord, error) {
	if limit > 0 && limit < len(r.records) {
		return r.records[:limit], nil
	}
	return r.records, nil
}

func (r *stubFeedbackRepo) UpdateStatus(id uint, status string) error { return nil }

type stubResponseRepo struct{}

func (r *stubResponseRepo) Create(response *models.FeedbackResponse) error { return nil }

func (r *stubResponseRepo) GetByFeedbackID(feedbackID uint) ([]models.FeedbackResponse, error) {
	return nil, nil
}

type stubQueryRepo struct {
	created chan *models.DuplicateCheckQuery
}

func (r *stubQueryRepo) Create(query *models.DuplicateCheckQuery) error {
	select {
	case r.created <- query:
	default:
	}
	return nil
}

func (r *stubQueryRepo) GetRecent(limit int) ([]models.DuplicateCheckQuery, error) {
	return nil, nil
}

func newTestRouter(records []models.FeedbackRecord) (*gin.Engine, *stubQueryRepo) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	checker := services.NewDuplicateCheckService(
		&stubFeedbackRepo{records: records},
		&stubResponseRepo{},
		logger,
		services.Options{},
	)

	queryRepo := &stubQueryRepo{created: make(chan *models.DuplicateCheckQuery, 1)}
	repoManager := &repository.RepositoryManager{DuplicateCheckQuery: queryRepo}

	handler := NewDuplicateCheckHandler(checker, repoManager, logger)

	router := gin.New()
	router.POST("/api/v1/duplicates/check", handler.HandleCheck)
	return router, queryRepo
}

func postCheck(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/duplicates/check", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "test-session")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestHandleCheck_ReturnsMatches(t *testing.T) {
	records := []models.FeedbackRecord{
		{
			BaseModel:   models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
			Title:       "Wifi keeps dropping",
			Description: "The wifi connection in the library keeps dropping every evening",
			Status:      models.StatusPending,
		},
		{
			BaseModel:   models.BaseModel{ID: 2, CreatedAt: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)},
			Title:       "Cafeteria food cold",
			Description: "Dinner at the cafeteria has been served cold all week",
			Status:      models.StatusPending,
		},
	}
	router, queryRepo := newTestRouter(records)

	recorder := postCheck(t, router, models.DuplicateCheckRequest{
		Description: "wifi in the library keeps dropping at night",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	assert.True(t, envelope.Success)

	var result models.DuplicateCheckResult
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &result))

	require.Equal(t, 1, result.Count)
	assert.Equal(t, uint(1), result.SimilarFeedback[0].ID)
	assert.GreaterOrEqual(t, result.SimilarFeedback[0].SimilarityScore, 0.3)

	// Analytics write happens off the request goroutine
	select {
	case tracked := <-queryRepo.created:
		assert.Equal(t, "test-session", tracked.UserSession)
		assert.Equal(t, 1, tracked.MatchCount)
	case <-time.After(2 * time.Second):
		t.Fatal("expected duplicate check query to be tracked")
	}
}

func TestHandleCheck_ShortDescription(t *testing.T) {
	router, _ := newTestRouter(nil)

	recorder := postCheck(t, router, models.DuplicateCheckRequest{
		Description: "wifi slow",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	assert.False(t, envelope.Success)

	var result models.DuplicateCheckResult
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.SimilarFeedback)
	assert.Empty(t, result.SimilarFeedback)
}

func TestHandleCheck_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/duplicates/check", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Invalid request format", envelope.Message)
}

func TestHandleCheck_MissingDescription(t *testing.T) {
	router, _ := newTestRouter(nil)

	recorder := postCheck(t, router, map[string]interface{}{"limit": 3})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	assert.False(t, envelope.Success)
}
