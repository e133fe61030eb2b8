package predict

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/metrics"
)

func ptr[T any](v T) *T {
	return &v
}

func newRequest(priority, category string, skipCount int, title, deadline string) *domain.PredictionRequest {
	return &domain.PredictionRequest{
		Priority:  ptr(priority),
		Category:  ptr(category),
		SkipCount: ptr(skipCount),
		Title:     ptr(title),
		Deadline:  ptr(deadline),
	}
}

func createTestService(t *testing.T) *Service {
	t.Helper()

	predictMetrics, err := metrics.NewPredictMetrics()
	if err != nil {
		t.Fatalf("failed to create predict metrics: %v", err)
	}

	return NewService(&domain.ModelArtifacts{}, predictMetrics)
}

func TestPredict_Examples(t *testing.T) {
	svc := createTestService(t)

	tests := []struct {
		name         string
		req          *domain.PredictionRequest
		wantTime     string
		wantBucketed bool
		wantHour     int
	}{
		{
			name:         "high skip count morning deadline",
			req:          newRequest("high", "work", 5, "X", "2024-01-01T09:30:00"),
			wantTime:     "Morning",
			wantBucketed: true,
			wantHour:     9,
		},
		{
			name:     "low skip count returns placeholder",
			req:      newRequest("low", "home", 1, "Y", "2024-01-01T20:00:00"),
			wantTime: domain.NoPredictionMessage,
			wantHour: 20,
		},
		{
			name:         "hour 23 with skip count 10 is Evening",
			req:          newRequest("medium", "health", 10, "Z", "2024-01-01T23:15:00"),
			wantTime:     "Evening",
			wantBucketed: true,
			wantHour:     23,
		},
		{
			name:     "skip count at threshold returns placeholder",
			req:      newRequest("High", "Work", 3, "Coding", "2024-01-01T14:00:00"),
			wantTime: domain.NoPredictionMessage,
			wantHour: 14,
		},
		{
			name:         "skip count just above threshold returns bucket",
			req:          newRequest("High", "Work", 4, "Coding", "2024-01-01T14:00:00"),
			wantTime:     "Afternoon",
			wantBucketed: true,
			wantHour:     14,
		},
		{
			name:         "client sample deadline with microseconds",
			req:          newRequest("High", "Work", 5, "Coding", "2025-07-15T06:29:57.626143"),
			wantTime:     "Morning",
			wantBucketed: true,
			wantHour:     6,
		},
		{
			name:         "offset deadline buckets on its written hour",
			req:          newRequest("High", "Work", 5, "Coding", "2024-01-01T13:00:00+09:00"),
			wantTime:     "Afternoon",
			wantBucketed: true,
			wantHour:     13,
		},
		{
			name:     "empty strings are present values",
			req:      newRequest("", "", 0, "", "2024-01-01T02:00:00"),
			wantTime: domain.NoPredictionMessage,
			wantHour: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Predict(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Predict() unexpected error: %v", err)
			}
			if got.PredictedTime != tt.wantTime {
				t.Errorf("PredictedTime = %q, want %q", got.PredictedTime, tt.wantTime)
			}
			if got.Bucketed != tt.wantBucketed {
				t.Errorf("Bucketed = %v, want %v", got.Bucketed, tt.wantBucketed)
			}
			if got.Hour != tt.wantHour {
				t.Errorf("Hour = %d, want %d", got.Hour, tt.wantHour)
			}
		})
	}
}

func TestPredict_LowSkipCountIgnoresDeadline(t *testing.T) {
	svc := createTestService(t)

	for skipCount := 0; skipCount <= domain.SkipCountThreshold; skipCount++ {
		for _, deadline := range []string{"2024-01-01T00:00:00", "2024-01-01T08:00:00", "2024-01-01T15:00:00", "2024-01-01T21:00:00"} {
			got, err := svc.Predict(context.Background(), newRequest("p", "c", skipCount, "t", deadline))
			if err != nil {
				t.Fatalf("Predict(skipCount=%d, deadline=%s) unexpected error: %v", skipCount, deadline, err)
			}
			if got.PredictedTime != domain.NoPredictionMessage {
				t.Errorf("Predict(skipCount=%d, deadline=%s) = %q, want placeholder", skipCount, deadline, got.PredictedTime)
			}
		}
	}
}

func TestPredict_IgnoresDescriptiveFields(t *testing.T) {
	svc := createTestService(t)

	base, err := svc.Predict(context.Background(), newRequest("Low", "Work", 7, "a", "2024-03-10T16:45:00"))
	if err != nil {
		t.Fatalf("Predict() unexpected error: %v", err)
	}

	variants := []*domain.PredictionRequest{
		newRequest("High", "Work", 7, "a", "2024-03-10T16:45:00"),
		newRequest("Low", "Fitness", 7, "a", "2024-03-10T16:45:00"),
		newRequest("Low", "Work", 7, "something else entirely", "2024-03-10T16:45:00"),
	}

	for i, req := range variants {
		got, err := svc.Predict(context.Background(), req)
		if err != nil {
			t.Fatalf("variant %d: unexpected error: %v", i, err)
		}
		if *got != *base {
			t.Errorf("variant %d: Predict() = %+v, want %+v", i, got, base)
		}
	}
}

func TestPredict_Idempotent(t *testing.T) {
	svc := createTestService(t)
	req := newRequest("high", "work", 5, "X", "2024-01-01T09:30:00")

	first, err := svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("Predict() unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := svc.Predict(context.Background(), req)
		if err != nil {
			t.Fatalf("Predict() unexpected error: %v", err)
		}
		if *got != *first {
			t.Errorf("call %d: Predict() = %+v, want %+v", i, got, first)
		}
	}
}

func TestPredict_Errors(t *testing.T) {
	svc := NewService(nil, nil)

	tests := []struct {
		name      string
		req       *domain.PredictionRequest
		wantKind  domain.ErrorKind
		wantErr   error
		wantField string
	}{
		{
			name:     "nil request",
			req:      nil,
			wantKind: domain.ErrorKindValidation,
			wantErr:  domain.ErrMalformedPayload,
		},
		{
			name: "missing deadline",
			req: &domain.PredictionRequest{
				Priority:  ptr("high"),
				Category:  ptr("work"),
				SkipCount: ptr(5),
				Title:     ptr("X"),
			},
			wantKind:  domain.ErrorKindValidation,
			wantErr:   domain.ErrMissingField,
			wantField: "deadline",
		},
		{
			name: "missing several fields",
			req: &domain.PredictionRequest{
				Category: ptr("work"),
				Deadline: ptr("2024-01-01T09:30:00"),
			},
			wantKind:  domain.ErrorKindValidation,
			wantErr:   domain.ErrMissingField,
			wantField: "priority, skipCount, title",
		},
		{
			name:      "negative skip count",
			req:       newRequest("high", "work", -1, "X", "2024-01-01T09:30:00"),
			wantKind:  domain.ErrorKindValidation,
			wantErr:   domain.ErrNegativeSkipCount,
			wantField: "skipCount",
		},
		{
			name:      "unparseable deadline",
			req:       newRequest("high", "work", 5, "X", "tomorrow morning"),
			wantKind:  domain.ErrorKindParse,
			wantErr:   domain.ErrUnparseableDeadline,
			wantField: "deadline",
		},
		{
			name:      "empty deadline",
			req:       newRequest("high", "work", 5, "X", ""),
			wantKind:  domain.ErrorKindParse,
			wantErr:   domain.ErrUnparseableDeadline,
			wantField: "deadline",
		},
		{
			name:      "impossible date",
			req:       newRequest("high", "work", 5, "X", "2024-02-30T10:00:00"),
			wantKind:  domain.ErrorKindParse,
			wantErr:   domain.ErrUnparseableDeadline,
			wantField: "deadline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Predict(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("Predict() = %+v, want error", got)
			}
			if got != nil {
				t.Errorf("Predict() prediction = %+v, want nil", got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Predict() error = %v, want %v", err, tt.wantErr)
			}
			if kind := domain.KindOf(err); kind != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", kind, tt.wantKind)
			}

			var pe *domain.PredictionError
			if !errors.As(err, &pe) {
				t.Fatalf("Predict() error %T is not a *domain.PredictionError", err)
			}
			if pe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", pe.Field, tt.wantField)
			}
		})
	}
}

func TestService_ArtifactsAreRetained(t *testing.T) {
	artifacts := &domain.ModelArtifacts{
		Model: domain.ModelArtifact{Name: "model", Digest: "abc"},
	}
	svc := NewService(artifacts, nil)

	if svc.Artifacts() != artifacts {
		t.Error("Artifacts() did not return the injected artifacts")
	}
}
