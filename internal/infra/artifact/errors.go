package artifact

import "errors"

var (
	ErrArtifactMissing    = errors.New("model artifact not found")
	ErrArtifactEmpty      = errors.New("model artifact is empty")
	ErrArtifactUnreadable = errors.New("model artifact could not be read")
)
