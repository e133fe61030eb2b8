package config

import (
	"os"
	"path/filepath"
)

const (
	artifactDirEnv          = "MODEL_ARTIFACT_DIR"
	modelFileEnv            = "MODEL_ARTIFACT_FILE"
	labelEncodersFileEnv    = "LABEL_ENCODERS_FILE"
	timeLabelEncoderFileEnv = "TIME_LABEL_ENCODER_FILE"

	defaultArtifactDir          = "."
	defaultModelFile            = "task_time_predictor_model.pkl"
	defaultLabelEncodersFile    = "label_encoders.pkl"
	defaultTimeLabelEncoderFile = "time_label_encoder.pkl"
)

// ArtifactConfig locates the serialized training outputs loaded at startup.
type ArtifactConfig struct {
	Dir                  string
	ModelFile            string
	LabelEncodersFile    string
	TimeLabelEncoderFile string
}

func LoadArtifactConfig() *ArtifactConfig {
	return &ArtifactConfig{
		Dir:                  getEnvOrDefault(artifactDirEnv, defaultArtifactDir),
		ModelFile:            getEnvOrDefault(modelFileEnv, defaultModelFile),
		LabelEncodersFile:    getEnvOrDefault(labelEncodersFileEnv, defaultLabelEncodersFile),
		TimeLabelEncoderFile: getEnvOrDefault(timeLabelEncoderFileEnv, defaultTimeLabelEncoderFile),
	}
}

func (c *ArtifactConfig) ModelPath() string {
	return filepath.Join(c.Dir, c.ModelFile)
}

func (c *ArtifactConfig) LabelEncodersPath() string {
	return filepath.Join(c.Dir, c.LabelEncodersFile)
}

func (c *ArtifactConfig) TimeLabelEncoderPath() string {
	return filepath.Join(c.Dir, c.TimeLabelEncoderFile)
}

func (c *ArtifactConfig) Validate() error {
	if c == nil || c.Dir == "" {
		return ErrArtifactDirMissing
	}
	if c.ModelFile == "" || c.LabelEncodersFile == "" || c.TimeLabelEncoderFile == "" {
		return ErrArtifactFileMissing
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
