package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bizcoach/assessment-server/internal/metrics"
	"github.com/bizcoach/assessment-server/internal/repository"
	"github.com/bizcoach/assessment-server/internal/repository/models"
	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/swot"
)

const (
	dbTimeout = 1 * time.Second
)

var (
	ErrNotFound          = errors.New("not found")
	ErrStorageFailure    = errors.New("storage failure")
	ErrInvalidBusinessID = errors.New("business id is required")
	ErrInvalidQuarter    = errors.New("invalid quarter")
	ErrInvalidCategory   = errors.New("invalid swot category")
	ErrInvalidAssessment = errors.New("invalid assessment")
)

// SaveHook runs after an assessment has been stored. Hooks run synchronously
// on the saving goroutine.
type SaveHook func(ctx context.Context, result AssessmentResult)

// AssessmentService scores questionnaires and serves stored results.
type AssessmentService struct {
	assessments AssessmentRepository
	swot        SwotRepository
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	onSaved     []SaveHook
}

// NewAssessmentService creates a new AssessmentService instance.
func NewAssessmentService(assessments AssessmentRepository, swotRepo SwotRepository, logger *zap.Logger) *AssessmentService {
	if assessments == nil {
		panic("assessment storage must not be nil")
	}
	if swotRepo == nil {
		panic("swot storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &AssessmentService{
		assessments: assessments,
		swot:        swotRepo,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// OnSaved registers a hook that runs after every successful save, whichever
// transport triggered it. Register hooks before serving requests.
func (s *AssessmentService) OnSaved(hook SaveHook) {
	if hook != nil {
		s.onSaved = append(s.onSaved, hook)
	}
}

func validateBusinessID(businessID string) error {
	if strings.TrimSpace(businessID) == "" {
		return ErrInvalidBusinessID
	}
	return nil
}

// Submit scores a completed questionnaire and persists the result. When the
// save fails the computed result is still returned together with an error
// wrapping ErrStorageFailure; pass it to SaveAssessment to retry.
func (s *AssessmentService) Submit(ctx context.Context, businessID string, answers map[string]any) (AssessmentResult, error) {
	if err := validateBusinessID(businessID); err != nil {
		return AssessmentResult{}, err
	}

	assessment := scoring.ComputeAssessment(answers)
	result := AssessmentResult{
		ID:            s.newID(),
		BusinessID:    businessID,
		TotalScore:    assessment.TotalScore,
		Percentage:    assessment.Percentage,
		HealthStatus:  assessment.HealthStatus,
		SectionScores: assessment.SectionScores,
		ComputedAt:    s.now().UTC(),
		Answers:       answers,
	}

	metrics.AssessmentsComputed.WithLabelValues(string(result.HealthStatus)).Inc()
	metrics.AssessmentPercentage.Observe(float64(result.Percentage))

	s.logger.Info("assessment computed",
		zap.String("business_id", businessID),
		zap.String("assessment_id", result.ID),
		zap.Float64("total_score", result.TotalScore),
		zap.Int("percentage", result.Percentage),
		zap.String("health_status", string(result.HealthStatus)))

	if err := s.save(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// SaveAssessment stores a result previously returned by a Submit whose save
// failed. The ID and computedAt are kept; the scores are derived again from
// the answers, so the stored row matches what Submit computed. Saving an ID
// that is already stored changes nothing.
func (s *AssessmentService) SaveAssessment(ctx context.Context, result AssessmentResult) (AssessmentResult, error) {
	if err := validateBusinessID(result.BusinessID); err != nil {
		return AssessmentResult{}, err
	}
	if _, err := uuid.Parse(result.ID); err != nil {
		return AssessmentResult{}, fmt.Errorf("%w: id %q: %w", ErrInvalidAssessment, result.ID, err)
	}
	if result.ComputedAt.IsZero() {
		return AssessmentResult{}, fmt.Errorf("%w: computedAt is required", ErrInvalidAssessment)
	}

	assessment := scoring.ComputeAssessment(result.Answers)
	result.TotalScore = assessment.TotalScore
	result.Percentage = assessment.Percentage
	result.HealthStatus = assessment.HealthStatus
	result.SectionScores = assessment.SectionScores
	result.ComputedAt = result.ComputedAt.UTC()

	if err := s.save(ctx, result); err != nil {
		return AssessmentResult{}, err
	}

	s.logger.Info("assessment save retried",
		zap.String("business_id", result.BusinessID),
		zap.String("assessment_id", result.ID))
	return result, nil
}

func (s *AssessmentService) save(ctx context.Context, result AssessmentResult) error {
	rec, err := toRecord(result)
	if err != nil {
		return fmt.Errorf("encode assessment: %w", err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.assessments.Save(dbCtx, rec); err != nil {
		metrics.AssessmentSaveFailures.Inc()
		s.logger.Error("failed to save assessment",
			zap.String("assessment_id", result.ID),
			zap.String("business_id", result.BusinessID),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	for _, hook := range s.onSaved {
		hook(ctx, result)
	}
	return nil
}

// Latest returns the most recent assessment for a business.
func (s *AssessmentService) Latest(ctx context.Context, businessID string) (AssessmentResult, error) {
	if err := validateBusinessID(businessID); err != nil {
		return AssessmentResult{}, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rec, err := s.assessments.LoadLatest(dbCtx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return AssessmentResult{}, ErrNotFound
		}
		return AssessmentResult{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return fromRecord(rec)
}

// Recommendations returns advice for the three weakest sections of the latest
// assessment.
func (s *AssessmentService) Recommendations(ctx context.Context, businessID string) ([]scoring.Recommendation, error) {
	latest, err := s.Latest(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return scoring.Recommend(latest.SectionScores), nil
}

// ScoreChange compares the latest assessment with the one before it.
func (s *AssessmentService) ScoreChange(ctx context.Context, businessID string) (ScoreChange, error) {
	if err := validateBusinessID(businessID); err != nil {
		return ScoreChange{}, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	recs, err := s.assessments.ListRecent(dbCtx, businessID, 2)
	if err != nil {
		return ScoreChange{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if len(recs) == 0 {
		return ScoreChange{}, ErrNotFound
	}

	change := ScoreChange{
		CurrentPercentage: recs[0].Percentage,
		CurrentTotal:      recs[0].TotalScore,
		ChangePoints:      recs[0].Percentage,
	}
	if len(recs) > 1 {
		change.HasPrevious = true
		change.PreviousPercentage = recs[1].Percentage
		change.PreviousTotal = recs[1].TotalScore
		change.ChangePoints = recs[0].Percentage - recs[1].Percentage
	}
	return change, nil
}

// CompareQuarters diffs two quarters of a SWOT board. An empty from quarter
// means the quarter before to. An empty category compares every category.
func (s *AssessmentService) CompareQuarters(ctx context.Context, businessID, from, to, category string) (SwotComparison, error) {
	if err := validateBusinessID(businessID); err != nil {
		return SwotComparison{}, err
	}

	toQ, err := swot.ParseQuarter(to)
	if err != nil {
		return SwotComparison{}, fmt.Errorf("%w: %v", ErrInvalidQuarter, err)
	}
	var fromQ swot.Quarter
	if strings.TrimSpace(from) != "" {
		fromQ, err = swot.ParseQuarter(from)
	} else {
		fromQ, err = toQ.Previous()
	}
	if err != nil {
		return SwotComparison{}, fmt.Errorf("%w: %v", ErrInvalidQuarter, err)
	}

	var cat swot.Category
	if strings.TrimSpace(category) != "" {
		if cat, err = swot.ParseCategory(category); err != nil {
			return SwotComparison{}, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
		}
	}

	var fromItems, toItems []swot.Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.loadQuarter(gctx, businessID, fromQ)
		fromItems = items
		return err
	})
	g.Go(func() error {
		items, err := s.loadQuarter(gctx, businessID, toQ)
		toItems = items
		return err
	})
	if err := g.Wait(); err != nil {
		return SwotComparison{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	var diff swot.Result
	if cat != "" {
		diff = swot.DiffCategory(fromItems, toItems, cat)
	} else {
		diff = swot.Diff(fromItems, toItems)
	}

	metrics.SwotComparisons.Inc()
	s.logger.Info("compared swot quarters",
		zap.String("business_id", businessID),
		zap.String("from", fromQ.String()),
		zap.String("to", toQ.String()),
		zap.Int("added", len(diff.Added)),
		zap.Int("removed", len(diff.Removed)),
		zap.Int("kept", len(diff.Kept)))

	return SwotComparison{
		BusinessID:  businessID,
		FromQuarter: fromQ.String(),
		ToQuarter:   toQ.String(),
		Category:    string(cat),
		Diff:        diff,
	}, nil
}

func (s *AssessmentService) loadQuarter(ctx context.Context, businessID string, q swot.Quarter) ([]swot.Item, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.swot.ListItems(dbCtx, businessID, q.String())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", q, err)
	}

	items := make([]swot.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, swot.Item{Category: swot.Category(r.Category), Text: r.Text})
	}
	return items, nil
}

func toRecord(r AssessmentResult) (models.AssessmentRecord, error) {
	sections, err := json.Marshal(r.SectionScores)
	if err != nil {
		return models.AssessmentRecord{}, err
	}
	answers := r.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return models.AssessmentRecord{}, err
	}
	return models.AssessmentRecord{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		TotalScore:    r.TotalScore,
		Percentage:    r.Percentage,
		HealthStatus:  string(r.HealthStatus),
		SectionScores: sections,
		Answers:       raw,
		ComputedAt:    r.ComputedAt,
	}, nil
}

func fromRecord(rec models.AssessmentRecord) (AssessmentResult, error) {
	var sections []scoring.SectionScore
	if err := json.Unmarshal(rec.SectionScores, &sections); err != nil {
		return AssessmentResult{}, fmt.Errorf("%w: decode section scores: %v", ErrStorageFailure, err)
	}
	var answers map[string]any
	if len(rec.Answers) > 0 {
		if err := json.Unmarshal(rec.Answers, &answers); err != nil {
			return AssessmentResult{}, fmt.Errorf("%w: decode answers: %v", ErrStorageFailure, err)
		}
	}
	return AssessmentResult{
		ID:            rec.ID,
		BusinessID:    rec.BusinessID,
		TotalScore:    rec.TotalScore,
		Percentage:    rec.Percentage,
		HealthStatus:  scoring.HealthStatus(rec.HealthStatus),
		SectionScores: sections,
		ComputedAt:    rec.ComputedAt.UTC(),
		Answers:       answers,
	}, nil
}
