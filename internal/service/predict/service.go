package predict

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/metrics"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/tracing"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/service/timeofday"
)

// Service derives time-of-day predictions for tasks.
//
// The loaded model artifacts are held for the lifetime of the service but
// are not consulted when deriving a prediction.
type Service struct {
	artifacts      *domain.ModelArtifacts
	validate       *validator.Validate
	predictMetrics *metrics.PredictMetrics
}

func NewService(artifacts *domain.ModelArtifacts, predictMetrics *metrics.PredictMetrics) *Service {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.SetTagName("binding")
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Service{
		artifacts:      artifacts,
		validate:       validate,
		predictMetrics: predictMetrics,
	}
}

func (s *Service) Artifacts() *domain.ModelArtifacts {
	return s.artifacts
}

func (s *Service) Predict(ctx context.Context, req *domain.PredictionRequest) (*domain.Prediction, error) {
	ctx, span := tracing.StartPredictSpan(ctx)
	defer span.End()

	start := time.Now()
	prediction, err := s.predict(ctx, req)

	if s.predictMetrics != nil {
		s.predictMetrics.RecordPredictDuration(ctx, time.Since(start))
		s.predictMetrics.RecordPrediction(ctx, domain.OutcomeOf(prediction, err).String())
		if prediction != nil {
			s.predictMetrics.RecordTimeOfDay(ctx, prediction.TimeOfDay.String())
			s.predictMetrics.RecordSkipCount(ctx, *req.SkipCount)
		}
	}

	if err != nil {
		tracing.RecordPredictResult(span, 0, "", false, err)
		return nil, err
	}

	tracing.RecordPredictResult(span, *req.SkipCount, prediction.TimeOfDay.String(), prediction.Bucketed, nil)

	return prediction, nil
}

func (s *Service) predict(ctx context.Context, req *domain.PredictionRequest) (*domain.Prediction, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	_, parseSpan := tracing.StartDeadlineParseSpan(ctx, *req.Deadline)
	deadline, layout, err := ParseDeadline(*req.Deadline)
	if err != nil {
		tracing.RecordDeadlineParseResult(parseSpan, "", 0, err)
		parseSpan.End()
		return nil, domain.NewParseError("deadline", err)
	}
	tracing.RecordDeadlineParseResult(parseSpan, layout, deadline.Hour(), nil)
	parseSpan.End()

	hour := deadline.Hour()
	timeOfDay, err := timeofday.FromHour(hour)
	if err != nil {
		return nil, domain.NewParseError("deadline", err)
	}

	prediction := &domain.Prediction{
		Hour:          hour,
		TimeOfDay:     timeOfDay,
		PredictedTime: domain.NoPredictionMessage,
	}

	if *req.SkipCount > domain.SkipCountThreshold {
		prediction.PredictedTime = timeOfDay.String()
		prediction.Bucketed = true
	}

	return prediction, nil
}

func (s *Service) validateRequest(req *domain.PredictionRequest) error {
	if req == nil {
		return domain.NewValidationError("", domain.ErrMalformedPayload)
	}

	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError("", fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
	}

	var missing []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError(strings.Join(missing, ", "), domain.ErrMissingField)
	}

	fe := fieldErrs[0]
	if fe.Field() == "skipCount" && fe.Tag() == "min" {
		return domain.NewValidationError(fe.Field(), domain.ErrNegativeSkipCount)
	}

	return domain.NewValidationError(fe.Field(), fmt.Errorf("failed %q validation", fe.Tag()))
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
