package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/config"
)

func writeArtifacts(t *testing.T, dir string, contents map[string]string) *config.ArtifactConfig {
	t.Helper()

	cfg := &config.ArtifactConfig{
		Dir:                  dir,
		ModelFile:            "task_time_predictor_model.pkl",
		LabelEncodersFile:    "label_encoders.pkl",
		TimeLabelEncoderFile: "time_label_encoder.pkl",
	}

	for file, content := range contents {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", file, err)
		}
	}

	return cfg
}

func TestLoadSuccess(t *testing.T) {
	dir := t.TempDir()
	cfg := writeArtifacts(t, dir, map[string]string{
		"task_time_predictor_model.pkl": "model-bytes",
		"label_encoders.pkl":            "encoder-bytes",
		"time_label_encoder.pkl":        "time-encoder-bytes",
	})

	artifacts, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	sum := sha256.Sum256([]byte("model-bytes"))
	if got, want := artifacts.Model.Digest, hex.EncodeToString(sum[:]); got != want {
		t.Errorf("Model.Digest = %q, want %q", got, want)
	}
	if artifacts.Model.Size != int64(len("model-bytes")) {
		t.Errorf("Model.Size = %d, want %d", artifacts.Model.Size, len("model-bytes"))
	}
	if string(artifacts.LabelEncoders.Data) != "encoder-bytes" {
		t.Errorf("LabelEncoders.Data = %q, want %q", artifacts.LabelEncoders.Data, "encoder-bytes")
	}
	if artifacts.TimeLabelEncoder.Name != TimeLabelEncoderName {
		t.Errorf("TimeLabelEncoder.Name = %q, want %q", artifacts.TimeLabelEncoder.Name, TimeLabelEncoderName)
	}

	digests := artifacts.Digests()
	if len(digests) != 3 {
		t.Errorf("Digests() has %d entries, want 3", len(digests))
	}
}

func TestLoadFailure(t *testing.T) {
	tests := []struct {
		name     string
		contents map[string]string
		wantErrs []error
	}{
		{
			name:     "all artifacts missing",
			contents: map[string]string{},
			wantErrs: []error{ErrArtifactMissing},
		},
		{
			name: "one artifact missing",
			contents: map[string]string{
				"task_time_predictor_model.pkl": "model-bytes",
				"label_encoders.pkl":            "encoder-bytes",
			},
			wantErrs: []error{ErrArtifactMissing},
		},
		{
			name: "empty and missing artifacts are both reported",
			contents: map[string]string{
				"task_time_predictor_model.pkl": "",
				"label_encoders.pkl":            "encoder-bytes",
			},
			wantErrs: []error{ErrArtifactEmpty, ErrArtifactMissing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeArtifacts(t, t.TempDir(), tt.contents)

			artifacts, err := Load(context.Background(), cfg)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if artifacts != nil {
				t.Errorf("Load() artifacts = %+v, want nil", artifacts)
			}
			for _, want := range tt.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("Load() error = %v, want it to wrap %v", err, want)
				}
			}
		})
	}
}
