package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const predictTracerName = "github.com/KasumiMercury/primind-task-time-predictor/internal/service/predict"

func PredictTracer() trace.Tracer {
	return otel.Tracer(predictTracerName)
}

func StartPredictSpan(ctx context.Context) (context.Context, trace.Span) {
	return PredictTracer().Start(ctx, "predict.derive")
}

func StartDeadlineParseSpan(ctx context.Context, deadline string) (context.Context, trace.Span) {
	return PredictTracer().Start(ctx, "predict.parse_deadline",
		trace.WithAttributes(
			attribute.String("deadline.raw", deadline),
		),
	)
}

func RecordDeadlineParseResult(span trace.Span, layout string, hour int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("deadline.layout", layout),
		attribute.Int("deadline.hour", hour),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordPredictResult(span trace.Span, skipCount int, timeOfDay string, bucketed bool, err error) {
	span.SetAttributes(
		attribute.Int("predict.skip_count", skipCount),
		attribute.String("predict.time_of_day", timeOfDay),
		attribute.Bool("predict.bucketed", bucketed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
