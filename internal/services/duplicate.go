package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/internal/similarity"
	"github.com/sirupsen/logrus"
)

// MinDescriptionLength is the minimum description length (in runes)
// required before a duplicate check will run.
const MinDescriptionLength = 10

// ErrDescriptionTooShort signals a validation failure that never reaches
// the scoring engine or storage.
var ErrDescriptionTooShort = fmt.Errorf("description must be at least %d characters", MinDescriptionLength)

// Options tunes the duplicate check. MinScore is an empirically chosen
// noise floor, not an analytically derived threshold.
type Options struct {
	MinScore       float64
	MaxMatches     int
	CandidateLimit int
	ChunkSize      int
}

func DefaultOptions() Options {
	return Options{
		MinScore:       0.3,
		MaxMatches:     3,
		CandidateLimit: 100,
		ChunkSize:      25,
	}
}

// DuplicateCheckService orchestrates the lexical similarity engine over
// stored feedback. It is read-only against storage.
type DuplicateCheckService struct {
	feedbackRepo models.FeedbackRepository
	responseRepo models.ResponseRepository
	logger       *logrus.Logger
	opts         Options
}

func NewDuplicateCheckService(
	feedbackRepo models.FeedbackRepository,
	responseRepo models.ResponseRepository,
	logger *logrus.Logger,
	opts Options,
) *DuplicateCheckService {
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultOptions().MinScore
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = DefaultOptions().MaxMatches
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = DefaultOptions().CandidateLimit
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultOptions().ChunkSize
	}

	return &DuplicateCheckService{
		feedbackRepo: feedbackRepo,
		responseRepo: responseRepo,
		logger:       logger,
		opts:         opts,
	}
}

// CheckDuplicates finds stored feedback similar to description. limit
// overrides the configured match cap when positive.
func (s *DuplicateCheckService) CheckDuplicates(ctx context.Context, description string, categoryID *uint, limit int) (*models.DuplicateCheckResult, error) {
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return nil, ErrDescriptionTooShort
	}

	maxMatches := s.opts.MaxMatches
	if limit > 0 && limit < maxMatches {
		maxMatches = limit
	}

	candidates, err := s.feedbackRepo.GetRecent(s.opts.CandidateLimit, categoryID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load duplicate-check candidates")
		return nil, fmt.Errorf("failed to load candidate feedback: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"min_score":  s.opts.MinScore,
	}).Debug("Running duplicate check")

	matches := s.matchChunked(ctx, description, candidates)

	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	views := make([]models.SimilarFeedbackView, 0, len(matches))
	for _, m := range matches {
		record := candidates[m.Index]
		views = append(views, s.buildView(&record, m.Score))
	}

	return &models.DuplicateCheckResult{
		SimilarFeedback: views,
		Count:           len(views),
	}, nil
}

// matchChunked scores candidates in fixed-size batches to bound peak
// memory, then merges and re-sorts. Chunk-local indices are mapped back
// to positions in the candidate slice so matches re-join their records
// without content-derived keys.
func (s *DuplicateCheckService) matchChunked(ctx context.Context, query string, candidates []models.FeedbackRecord) []similarity.Match {
	var merged []similarity.Match

	for start := 0; start < len(candidates); start += s.opts.ChunkSize {
		select {
		case <-ctx.Done():
			return merged
		default:
		}

		end := start + s.opts.ChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}

		texts := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			texts = append(texts, candidates[i].ComparableText())
		}

		for _, m := range similarity.FindMostSimilar(query, texts, s.opts.MaxMatches, s.opts.MinScore) {
			m.Index += start
			merged = append(merged, m)
		}
	}

	// Re-rank the per-chunk survivors globally. Stable, so equal scores
	// keep storage order (newest first).
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	return merged
}

// buildView assembles the response shape for one matched record.
// Fetching responses is best effort: a failure logs a warning and the
// match is returned with an empty responses list.
func (s *DuplicateCheckService) buildView(record *models.FeedbackRecord, score float64) models.SimilarFeedbackView {
	view := models.SimilarFeedbackView{
		ID:              record.ID,
		Title:           record.Title,
		Description:     record.Description,
		Status:          record.Status,
		SubmittedBy:     record.SubmittedBy,
		SubmittedDate:   record.CreatedAt.Format("2006-01-02 15:04:05"),
		SimilarityScore: roundScore(score),
		Responses:       []models.ResponseView{},
	}

	if record.Category != nil {
		view.Category = record.Category.Name
	}

	responses, err := s.responseRepo.GetByFeedbackID(record.ID)
	if err != nil {
		s.logger.WithError(err).WithField("feedback_id", record.ID).Warn("Failed to fetch responses for matched feedback")
		return view
	}

	for _, r := range responses {
		view.Responses = append(view.Responses, models.ResponseView{
			Response:  r.ResponseText,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
			AdminName: r.AdminName,
		})
	}

	return view
}

// IsValidationError reports whether err is a request-input problem
// rather than a storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrDescriptionTooShort)
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
