//go:build gcloud

package predictionrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt time.Time           `bigquery:"recorded_at"`
	RequestID  string              `bigquery:"request_id"`
	Outcome    string              `bigquery:"outcome"`
	TimeOfDay  bigquery.NullString `bigquery:"time_of_day"`
	Hour       bigquery.NullInt64  `bigquery:"hour"`
	Bucketed   bool                `bigquery:"bucketed"`
	SkipCount  int64               `bigquery:"skip_count"`
	Category   string              `bigquery:"category"`
	Priority   string              `bigquery:"priority"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.PredictionRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "prediction result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, prediction result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, prediction result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "prediction result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordPrediction(ctx context.Context, record domain.PredictionRecord) error {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	row := &bigQueryRecord{
		RecordedAt: recordedAt,
		RequestID:  record.RequestID,
		Outcome:    record.Outcome.String(),
		Bucketed:   record.Bucketed,
		SkipCount:  int64(record.SkipCount),
		Category:   record.Category,
		Priority:   record.Priority,
	}
	// Failed calls carry no derived fields.
	if record.TimeOfDay != "" {
		row.TimeOfDay = bigquery.NullString{StringVal: record.TimeOfDay.String(), Valid: true}
		row.Hour = bigquery.NullInt64{Int64: int64(record.Hour), Valid: true}
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert prediction result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("outcome", record.Outcome.String()),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
