package config

import "errors"

var (
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a valid non-negative integer")
	ErrArtifactDirMissing  = errors.New("MODEL_ARTIFACT_DIR must not be empty")
	ErrArtifactFileMissing = errors.New("artifact file names must not be empty")
	ErrPortMissing         = errors.New("PORT must not be empty")
)
