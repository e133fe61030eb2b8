package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=prediction_result_recorder.go -destination=prediction_result_recorder_mock.go -package=domain

type PredictionRecord struct {
	RequestID  string
	RecordedAt time.Time
	Hour       int
	TimeOfDay  TimeOfDay
	Bucketed   bool
	Outcome    Outcome
	SkipCount  int
	Category   string
	Priority   string
}

type PredictionRecorder interface {
	RecordPrediction(ctx context.Context, record PredictionRecord) error
	Flush(ctx context.Context) error
	Close() error
}
