package http

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	nethttp "net/http"

	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxBodyBytes       = 1 << 20
	healthCheckTimeout = 2 * time.Second
)

type answersRequest struct {
	Answers map[string]any `json:"answers"`
}

type scoreResponse struct {
	Assessment      scoring.Assessment       `json:"assessment"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
}

type unsavedResponse struct {
	Error      string                   `json:"error"`
	Assessment service.AssessmentResult `json:"assessment"`
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w nethttp.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}

func writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(r.Context().Err(), context.DeadlineExceeded):
		logger.Warn("request timeout", zap.String("op", op), zap.Error(err))
		writeErr(w, nethttp.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, service.ErrInvalidBusinessID),
		errors.Is(err, service.ErrInvalidQuarter),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidAssessment):
		writeErr(w, nethttp.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeErr(w, nethttp.StatusNotFound, "no assessment found for this business")
	case errors.Is(err, service.ErrStorageFailure):
		logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		writeErr(w, nethttp.StatusInternalServerError, "database error")
	default:
		logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		writeErr(w, nethttp.StatusInternalServerError, "internal error")
	}
}

func decodeAnswers(w nethttp.ResponseWriter, r *nethttp.Request) (map[string]any, bool) {
	var req answersRequest
	if err := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErr(w, nethttp.StatusBadRequest, "bad json")
		return nil, false
	}
	return req.Answers, true
}

func businessID(r *nethttp.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "businessID"))
}

// HealthHandler runs every check and reports 503 if any fails.
func HealthHandler(checks map[string]HealthCheck, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		results := make(map[string]string, len(checks))
		healthy := true

		for name, check := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			err := check(ctx)
			cancel()

			if err != nil {
				healthy = false
				results[name] = err.Error()
				logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
				continue
			}
			results[name] = "ok"
		}

		status, code := "ok", nethttp.StatusOK
		if !healthy {
			status, code = "degraded", nethttp.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]any{"status": status, "checks": results})
	}
}

// ScoreHandler scores an answer bag without storing it.
func ScoreHandler() nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		answers, ok := decodeAnswers(w, r)
		if !ok {
			return
		}
		a := scoring.ComputeAssessment(answers)
		writeJSON(w, nethttp.StatusOK, scoreResponse{
			Assessment:      a,
			Recommendations: scoring.Recommend(a.SectionScores),
		})
	}
}

// SubmitAssessmentHandler scores and stores an assessment. When storage fails
// the computed result is still returned with 503; PUT it back to
// SaveAssessmentHandler to store it under the same id.
func SubmitAssessmentHandler(svc AssessmentService, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		answers, ok := decodeAnswers(w, r)
		if !ok {
			return
		}

		result, err := svc.Submit(r.Context(), businessID(r), answers)
		if err != nil {
			if errors.Is(err, service.ErrStorageFailure) && result.ID != "" {
				writeUnsaved(w, logger, result, err)
				return
			}
			writeServiceError(w, r, logger, "SubmitAssessment", err)
			return
		}

		writeJSON(w, nethttp.StatusCreated, result)
	}
}

func writeUnsaved(w nethttp.ResponseWriter, logger *zap.Logger, result service.AssessmentResult, err error) {
	logger.Error("assessment computed but not saved",
		zap.String("assessment_id", result.ID),
		zap.Error(err))
	writeJSON(w, nethttp.StatusServiceUnavailable, unsavedResponse{
		Error: "assessment computed but could not be saved; retry with PUT /v1/businesses/" +
			result.BusinessID + "/assessments/" + result.ID + " and the assessment body",
		Assessment: result,
	})
}

// SaveAssessmentHandler stores a result returned by a failed submit. The body
// is the assessment object from the 503 response. Path ids fill in missing
// body ids and must match present ones. Repeating the call is harmless.
func SaveAssessmentHandler(svc AssessmentService, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var result service.AssessmentResult
		if err := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&result); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "bad json")
			return
		}

		pathBusiness := businessID(r)
		pathID := strings.TrimSpace(chi.URLParam(r, "assessmentID"))
		switch {
		case result.BusinessID != "" && result.BusinessID != pathBusiness:
			writeErr(w, nethttp.StatusBadRequest, "businessId does not match the path")
			return
		case result.ID != "" && result.ID != pathID:
			writeErr(w, nethttp.StatusBadRequest, "id does not match the path")
			return
		}
		result.BusinessID = pathBusiness
		result.ID = pathID

		saved, err := svc.SaveAssessment(r.Context(), result)
		if err != nil {
			if errors.Is(err, service.ErrStorageFailure) {
				writeUnsaved(w, logger, result, err)
				return
			}
			writeServiceError(w, r, logger, "SaveAssessment", err)
			return
		}

		writeJSON(w, nethttp.StatusOK, saved)
	}
}

func LatestAssessmentHandler(svc AssessmentService, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		result, err := svc.Latest(r.Context(), businessID(r))
		if err != nil {
			writeServiceError(w, r, logger, "LatestAssessment", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, result)
	}
}

func ScoreChangeHandler(svc AssessmentService, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		change, err := svc.ScoreChange(r.Context(), businessID(r))
		if err != nil {
			writeServiceError(w, r, logger, "ScoreChange", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, change)
	}
}

func RecommendationsHandler(svc AssessmentService, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		recs, err := svc.Recommendations(r.Context(), businessID(r))
		if err != nil {
			writeServiceError(w, r, logger, "Recommendations", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"recommendations": recs})
	}
}

// CompareSwotHandler diffs two SWOT quarters. Query parameters: to (required),
// from (defaults to the quarter before to), category (optional).
func CompareSwotHandler(svc AssessmentService, logger *zap.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		cmp, err := svc.CompareQuarters(r.Context(), businessID(r),
			strings.TrimSpace(q.Get("from")),
			strings.TrimSpace(q.Get("to")),
			strings.TrimSpace(q.Get("category")),
		)
		if err != nil {
			writeServiceError(w, r, logger, "CompareSwot", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, cmp)
	}
}
