package domain

import "context"

//go:generate mockgen -source=prediction_tally.go -destination=prediction_tally_mock.go -package=domain

// PredictionTally keeps short-lived per-minute counts of predict outcomes.
type PredictionTally interface {
	Increment(ctx context.Context, minuteKey string, outcome Outcome) error
	Counts(ctx context.Context, minuteKey string) (map[Outcome]int, error)
}
