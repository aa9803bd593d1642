package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pb "github.com/bizcoach/assessment-server/api/v1"
	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyLatestAssessment CacheKeyType = "grpc:latest_assessment"
	cacheKeyScoreChange      CacheKeyType = "grpc:score_change"
	cacheKeyRecommendations  CacheKeyType = "grpc:recommendations"
)

type GRPCHandlers struct {
	pb.UnimplementedAssessmentScoringServer
	assessments AssessmentService
	reads       *readThrough
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(assessments AssessmentService, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if assessments == nil {
		panic("nil AssessmentService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	logger = logger.Named("grpc-handler")
	return &GRPCHandlers{
		assessments: assessments,
		reads:       newReadThrough(cache, ttl, logger),
		logger:      logger,
		cacheTTL:    ttl,
	}
}

// InvalidateBusiness drops every cached read for the business that owns
// result. It matches service.SaveHook so saves made through any transport
// clear the cache.
func (s *GRPCHandlers) InvalidateBusiness(ctx context.Context, result service.AssessmentResult) {
	businessID := result.BusinessID
	s.reads.forget(ctx,
		normalizeKey(cacheKeyLatestAssessment, businessID),
		normalizeKey(cacheKeyScoreChange, businessID),
		normalizeKey(cacheKeyRecommendations, businessID),
	)
}

func stringField(req *structpb.Struct, name string) string {
	v, ok := req.GetFields()[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(v.GetStringValue())
}

func (s *GRPCHandlers) businessID(req *structpb.Struct) (string, error) {
	id := stringField(req, pb.FieldBusinessID)
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "business_id is required")
	}
	return id, nil
}

func normalizeKey(prefix CacheKeyType, businessID string) string {
	return fmt.Sprintf("%s:%s", prefix, businessID)
}

// toStruct converts a JSON-tagged value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// fromStruct decodes a protobuf Struct into a JSON-tagged value.
func fromStruct(in *structpb.Struct, dest any) error {
	raw, err := json.Marshal(in.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *GRPCHandlers) respond(op string, v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		s.logger.Error("response encoding failed", zap.String("op", op), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "%s: encode response: %v", op, err)
	}
	return out, nil
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("request timeout", zap.String("op", op), zap.Error(err))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrInvalidBusinessID),
		errors.Is(err, service.ErrInvalidQuarter),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidAssessment):
		s.logger.Info("invalid request", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		s.logger.Info("no assessment found", zap.String("op", op))
		return status.Error(codes.NotFound, "no assessment found for this business")
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// SubmitAssessment scores an answer bag and stores the result. If the result
// cannot be stored the call fails with Unavailable and the computed result is
// attached as a status detail; sending that detail to SaveAssessment stores it
// under the same id.
func (s *GRPCHandlers) SubmitAssessment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	businessID, err := s.businessID(req)
	if err != nil {
		return nil, err
	}

	var answers map[string]any
	if v, ok := req.GetFields()[pb.FieldAnswers]; ok && v.GetStructValue() != nil {
		answers = v.GetStructValue().AsMap()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	result, err := s.assessments.Submit(ctx, businessID, answers)
	if err != nil {
		if errors.Is(err, service.ErrStorageFailure) && result.ID != "" {
			return nil, s.unsavedResultError(result, err)
		}
		return nil, s.handleError(ctx, "SubmitAssessment", err)
	}

	return s.respond("SubmitAssessment", result)
}

// SaveAssessment stores a result returned by a failed SubmitAssessment. The
// assessment field carries the result with its answers; business_id, when
// set, must match it. Saving the same id twice keeps one row.
func (s *GRPCHandlers) SaveAssessment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	v, ok := req.GetFields()[pb.FieldAssessment]
	if !ok || v.GetStructValue() == nil {
		return nil, status.Error(codes.InvalidArgument, "assessment is required")
	}

	var result service.AssessmentResult
	if err := fromStruct(v.GetStructValue(), &result); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid assessment: %v", err)
	}
	if id := stringField(req, pb.FieldBusinessID); id != "" {
		if result.BusinessID == "" {
			result.BusinessID = id
		} else if result.BusinessID != id {
			return nil, status.Error(codes.InvalidArgument, "business_id does not match the assessment")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	saved, err := s.assessments.SaveAssessment(ctx, result)
	if err != nil {
		if errors.Is(err, service.ErrStorageFailure) {
			return nil, s.unsavedResultError(result, err)
		}
		return nil, s.handleError(ctx, "SaveAssessment", err)
	}

	return s.respond("SaveAssessment", saved)
}

func (s *GRPCHandlers) unsavedResultError(result service.AssessmentResult, cause error) error {
	s.logger.Error("assessment computed but not saved",
		zap.String("assessment_id", result.ID),
		zap.Error(cause))

	st := status.New(codes.Unavailable, "assessment computed but could not be saved; retry with SaveAssessment using the attached result")
	detail, err := toStruct(result)
	if err != nil {
		return st.Err()
	}
	if withDetail, err := st.WithDetails(detail); err == nil {
		return withDetail.Err()
	}
	return st.Err()
}

func (s *GRPCHandlers) GetLatestAssessment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	businessID, err := s.businessID(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyLatestAssessment, businessID)

	result, err := readCached(ctx, s.reads, cacheKey, func(fetchCtx context.Context) (service.AssessmentResult, error) {
		return s.assessments.Latest(fetchCtx, businessID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetLatestAssessment", err)
	}

	return s.respond("GetLatestAssessment", result)
}

func (s *GRPCHandlers) GetScoreChange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	businessID, err := s.businessID(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyScoreChange, businessID)

	change, err := readCached(ctx, s.reads, cacheKey, func(fetchCtx context.Context) (service.ScoreChange, error) {
		return s.assessments.ScoreChange(fetchCtx, businessID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetScoreChange", err)
	}

	return s.respond("GetScoreChange", change)
}

func (s *GRPCHandlers) GetRecommendations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	businessID, err := s.businessID(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyRecommendations, businessID)

	recs, err := readCached(ctx, s.reads, cacheKey, func(fetchCtx context.Context) ([]scoring.Recommendation, error) {
		return s.assessments.Recommendations(fetchCtx, businessID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetRecommendations", err)
	}

	return s.respond("GetRecommendations", map[string]any{"recommendations": recs})
}

// CompareSwotQuarters is not cached: boards are edited outside this service.
func (s *GRPCHandlers) CompareSwotQuarters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	businessID, err := s.businessID(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cmp, err := s.assessments.CompareQuarters(ctx, businessID,
		stringField(req, pb.FieldFromQuarter),
		stringField(req, pb.FieldToQuarter),
		stringField(req, pb.FieldCategory),
	)
	if err != nil {
		return nil, s.handleError(ctx, "CompareSwotQuarters", err)
	}

	return s.respond("CompareSwotQuarters", cmp)
}
