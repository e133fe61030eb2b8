//go:build !gcloud

package predictionrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

const (
	predictionMeasurement = "task_time_prediction"

	writeBatchSize       = 100
	writeFlushIntervalMs = 1000
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	bucket   string
	org      string
	errDone  chan struct{}
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.PredictionRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "prediction result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, prediction result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClientWithOptions(cfg.InfluxDBURL, cfg.InfluxDBToken,
		influxdb2.DefaultOptions().
			SetBatchSize(writeBatchSize).
			SetFlushInterval(writeFlushIntervalMs),
	)
	writeAPI := client.WriteAPI(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "prediction result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	r := &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
		errDone:  make(chan struct{}),
	}
	go r.logWriteErrors(writeAPI.Errors())

	return r, nil
}

// RecordPrediction queues the point; batches are written in the background.
func (r *influxDBRecorder) RecordPrediction(_ context.Context, record domain.PredictionRecord) error {
	r.writeAPI.WritePoint(newPredictionPoint(record))
	return nil
}

// logWriteErrors drains the write API error channel until the client closes.
func (r *influxDBRecorder) logWriteErrors(errs <-chan error) {
	defer close(r.errDone)
	for err := range errs {
		slog.Warn("failed to write prediction results to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("bucket", r.bucket),
		)
	}
}

func newPredictionPoint(record domain.PredictionRecord) *write.Point {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	tags := map[string]string{
		"outcome": record.Outcome.String(),
	}
	if record.TimeOfDay != "" {
		tags["time_of_day"] = record.TimeOfDay.String()
	}
	if record.Category != "" {
		tags["category"] = record.Category
	}
	if record.Priority != "" {
		tags["priority"] = record.Priority
	}

	return influxdb2.NewPoint(
		predictionMeasurement,
		tags,
		map[string]any{
			"request_id": record.RequestID,
			"hour":       record.Hour,
			"skip_count": record.SkipCount,
			"bucketed":   record.Bucketed,
		},
		recordedAt,
	)
}

func (r *influxDBRecorder) Flush(_ context.Context) error {
	r.writeAPI.Flush()
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
		<-r.errDone
	}
	return nil
}
