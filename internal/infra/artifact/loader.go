package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/config"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

const (
	ModelName            = "model"
	LabelEncodersName    = "label_encoders"
	TimeLabelEncoderName = "time_label_encoder"
)

// Load reads all three artifacts. Every failure is reported, not only the
// first one, and any failure leaves no partially loaded set behind.
func Load(ctx context.Context, cfg *config.ArtifactConfig) (*domain.ModelArtifacts, error) {
	model, modelErr := loadArtifact(ctx, ModelName, cfg.ModelPath())
	encoders, encodersErr := loadArtifact(ctx, LabelEncodersName, cfg.LabelEncodersPath())
	timeEncoder, timeEncoderErr := loadArtifact(ctx, TimeLabelEncoderName, cfg.TimeLabelEncoderPath())

	if err := errors.Join(modelErr, encodersErr, timeEncoderErr); err != nil {
		return nil, fmt.Errorf("failed to load model artifacts from %s: %w", cfg.Dir, err)
	}

	return &domain.ModelArtifacts{
		Model:            model,
		LabelEncoders:    encoders,
		TimeLabelEncoder: timeEncoder,
		LoadedAt:         time.Now(),
	}, nil
}

func loadArtifact(ctx context.Context, name, path string) (domain.ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ModelArtifact{}, fmt.Errorf("%s (%s): %w", name, path, ErrArtifactMissing)
		}
		return domain.ModelArtifact{}, fmt.Errorf("%s (%s): %w: %w", name, path, ErrArtifactUnreadable, err)
	}

	if len(data) == 0 {
		return domain.ModelArtifact{}, fmt.Errorf("%s (%s): %w", name, path, ErrArtifactEmpty)
	}

	sum := sha256.Sum256(data)
	artifact := domain.ModelArtifact{
		Name:   name,
		Path:   path,
		Size:   int64(len(data)),
		Digest: hex.EncodeToString(sum[:]),
		Data:   data,
	}

	slog.InfoContext(ctx, "model artifact loaded",
		slog.String("artifact", name),
		slog.String("path", path),
		slog.Int64("size_bytes", artifact.Size),
		slog.String("sha256", artifact.Digest),
	)

	return artifact, nil
}
