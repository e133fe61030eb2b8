package predictionrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.PredictionRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordPrediction(_ context.Context, _ domain.PredictionRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
