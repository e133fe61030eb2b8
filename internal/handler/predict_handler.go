package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/logging"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/service/predict"
)

const (
	// TallyMinuteLayout formats the per-minute tally bucket key.
	TallyMinuteLayout = "2006-01-02-15-04"

	recordTimeout = 5 * time.Second
)

type PredictHandler struct {
	predictService *predict.Service
	resultRecorder domain.PredictionRecorder
	tally          domain.PredictionTally
	now            func() time.Time

	// pending tracks telemetry writes still running after their response.
	pending sync.WaitGroup
}

// NewPredictHandler builds the handler for POST /predict. resultRecorder and
// tally may be nil.
func NewPredictHandler(
	predictService *predict.Service,
	resultRecorder domain.PredictionRecorder,
	tally domain.PredictionTally,
) *PredictHandler {
	return &PredictHandler{
		predictService: predictService,
		resultRecorder: resultRecorder,
		tally:          tally,
		now:            time.Now,
	}
}

type predictResponse struct {
	PredictedTime string `json:"predicted_time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *PredictHandler) HandlePredict(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.PredictionRequest
	var prediction *domain.Prediction
	err := bindRequest(c, &req)
	if err == nil {
		prediction, err = h.predictService.Predict(ctx, &req)
	}

	defer h.recordAsync(ctx, req, prediction, err)

	if err != nil {
		slog.WarnContext(ctx, "prediction failed",
			slog.String("error", err.Error()),
			slog.String("kind", domain.KindOf(err).String()),
		)
		// Both error kinds share one status.
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	slog.DebugContext(ctx, "prediction completed",
		slog.Int("hour", prediction.Hour),
		slog.String("time_of_day", prediction.TimeOfDay.String()),
		slog.Bool("bucketed", prediction.Bucketed),
	)

	c.JSON(http.StatusOK, predictResponse{PredictedTime: prediction.PredictedTime})
}

// Wait blocks until every in-flight telemetry write has finished.
func (h *PredictHandler) Wait() {
	h.pending.Wait()
}

// bindRequest matches payload keys exactly. A differently cased key counts
// as missing.
func bindRequest(c *gin.Context, req *domain.PredictionRequest) error {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWithJSON(&raw); err != nil {
		return domain.NewValidationError("", fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
	}

	fields := []struct {
		key string
		dst any
	}{
		{"priority", &req.Priority},
		{"category", &req.Category},
		{"skipCount", &req.SkipCount},
		{"title", &req.Title},
		{"deadline", &req.Deadline},
	}

	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return domain.NewValidationError(f.key,
					fmt.Errorf("%w: expected %s, got %s", domain.ErrMalformedPayload, typeErr.Type, typeErr.Value))
			}
			return domain.NewValidationError(f.key, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
		}
	}

	return nil
}

// recordAsync writes the tally and result record off the request path. The
// writes keep the request's values but not its cancellation.
func (h *PredictHandler) recordAsync(ctx context.Context, req domain.PredictionRequest, prediction *domain.Prediction, predictErr error) {
	if h.tally == nil && h.resultRecorder == nil {
		return
	}

	outcome := domain.OutcomeOf(prediction, predictErr)
	now := h.now()
	record := buildRecord(ctx, req, prediction, outcome, now)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()

		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		defer cancel()

		h.record(recordCtx, record, now)
	}()
}

func (h *PredictHandler) record(ctx context.Context, record domain.PredictionRecord, now time.Time) {
	if h.tally != nil {
		if err := h.tally.Increment(ctx, now.UTC().Format(TallyMinuteLayout), record.Outcome); err != nil {
			slog.WarnContext(ctx, "failed to increment prediction tally",
				slog.String("error", err.Error()),
				slog.String("outcome", record.Outcome.String()),
			)
		}
	}

	if h.resultRecorder != nil {
		if err := h.resultRecorder.RecordPrediction(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record prediction result",
				slog.String("error", err.Error()),
			)
		}
	}
}

func buildRecord(ctx context.Context, req domain.PredictionRequest, prediction *domain.Prediction, outcome domain.Outcome, now time.Time) domain.PredictionRecord {
	record := domain.PredictionRecord{
		RequestID:  logging.RequestIDFromContext(ctx),
		RecordedAt: now,
		Outcome:    outcome,
		Category:   deref(req.Category),
		Priority:   deref(req.Priority),
	}
	if req.SkipCount != nil {
		record.SkipCount = *req.SkipCount
	}
	if prediction != nil {
		record.Hour = prediction.Hour
		record.TimeOfDay = prediction.TimeOfDay
		record.Bucketed = prediction.Bucketed
	}
	return record
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
