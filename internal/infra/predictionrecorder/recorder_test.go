package predictionrecorder

import (
	"context"
	"testing"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PREDICTION_RESULTS_DISABLED", "true")
	t.Setenv("INFLUXDB_URL", "")
	t.Setenv("INFLUXDB_BUCKET", "")
	t.Setenv("BIGQUERY_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
	t.Setenv("BIGQUERY_TABLE", "custom_table")

	cfg := LoadConfig()

	if !cfg.Disabled {
		t.Error("Disabled = false, want true")
	}
	if cfg.InfluxDBURL != "http://localhost:8086" {
		t.Errorf("InfluxDBURL = %q, want default", cfg.InfluxDBURL)
	}
	if cfg.InfluxDBBucket != "task_time_predictions" {
		t.Errorf("InfluxDBBucket = %q, want %q", cfg.InfluxDBBucket, "task_time_predictions")
	}
	if cfg.BigQueryProjectID != "my-project" {
		t.Errorf("BigQueryProjectID = %q, want fallback to GOOGLE_CLOUD_PROJECT", cfg.BigQueryProjectID)
	}
	if cfg.BigQueryTable != "custom_table" {
		t.Errorf("BigQueryTable = %q, want %q", cfg.BigQueryTable, "custom_table")
	}
}

func TestNewRecorder_DisabledReturnsNoop(t *testing.T) {
	ctx := context.Background()

	recorder, err := NewRecorder(ctx, &Config{Disabled: true})
	if err != nil {
		t.Fatalf("NewRecorder() unexpected error: %v", err)
	}
	if _, ok := recorder.(*noopRecorder); !ok {
		t.Fatalf("NewRecorder() = %T, want *noopRecorder", recorder)
	}

	if err := recorder.RecordPrediction(ctx, domain.PredictionRecord{Outcome: domain.OutcomeBucketed}); err != nil {
		t.Errorf("RecordPrediction() unexpected error: %v", err)
	}
	if err := recorder.Flush(ctx); err != nil {
		t.Errorf("Flush() unexpected error: %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
}

func TestNewRecorder_UnconfiguredReturnsNoop(t *testing.T) {
	recorder, err := NewRecorder(context.Background(), &Config{})
	if err != nil {
		t.Fatalf("NewRecorder() unexpected error: %v", err)
	}
	if _, ok := recorder.(*noopRecorder); !ok {
		t.Errorf("NewRecorder() = %T, want *noopRecorder", recorder)
	}
}
