package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	predictMeterName = "predict.service"
)

type PredictMetrics struct {
	predictionsTotal   metric.Int64Counter
	timeOfDayTotal     metric.Int64Counter
	predictDuration    metric.Float64Histogram
	skipCountHistogram metric.Int64Histogram
}

func NewPredictMetrics() (*PredictMetrics, error) {
	meter := otel.Meter(predictMeterName)

	predictionsTotal, err := meter.Int64Counter(
		"predict_requests_total",
		metric.WithDescription("Total number of predict calls by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	timeOfDayTotal, err := meter.Int64Counter(
		"predict_time_of_day_total",
		metric.WithDescription("Distribution of derived time-of-day buckets"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	predictDuration, err := meter.Float64Histogram(
		"predict_duration_seconds",
		metric.WithDescription("Time spent deriving a prediction"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01,
		),
	)
	if err != nil {
		return nil, err
	}

	skipCountHistogram, err := meter.Int64Histogram(
		"predict_skip_count",
		metric.WithDescription("Skip count of tasks sent for prediction"),
		metric.WithUnit("{skip}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 3, 4, 5, 10, 20, 50),
	)
	if err != nil {
		return nil, err
	}

	return &PredictMetrics{
		predictionsTotal:   predictionsTotal,
		timeOfDayTotal:     timeOfDayTotal,
		predictDuration:    predictDuration,
		skipCountHistogram: skipCountHistogram,
	}, nil
}

func (m *PredictMetrics) RecordPrediction(ctx context.Context, outcome string) {
	m.predictionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *PredictMetrics) RecordTimeOfDay(ctx context.Context, timeOfDay string) {
	m.timeOfDayTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("time_of_day", timeOfDay),
	))
}

func (m *PredictMetrics) RecordPredictDuration(ctx context.Context, duration time.Duration) {
	m.predictDuration.Record(ctx, duration.Seconds())
}

func (m *PredictMetrics) RecordSkipCount(ctx context.Context, skipCount int) {
	m.skipCountHistogram.Record(ctx, int64(skipCount))
}
