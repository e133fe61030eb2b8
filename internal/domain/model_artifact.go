package domain

import "time"

// ModelArtifact is a serialized training output held as opaque bytes.
// Its format belongs to the training pipeline.
type ModelArtifact struct {
	Name   string
	Path   string
	Size   int64
	Digest string
	Data   []byte
}

// ModelArtifacts is the read-only set loaded at startup.
type ModelArtifacts struct {
	Model            ModelArtifact
	LabelEncoders    ModelArtifact
	TimeLabelEncoder ModelArtifact
	LoadedAt         time.Time
}

func (a *ModelArtifacts) All() []ModelArtifact {
	if a == nil {
		return nil
	}
	return []ModelArtifact{a.Model, a.LabelEncoders, a.TimeLabelEncoder}
}

// Digests maps artifact name to its SHA-256 digest.
func (a *ModelArtifacts) Digests() map[string]string {
	all := a.All()
	digests := make(map[string]string, len(all))
	for _, artifact := range all {
		digests[artifact.Name] = artifact.Digest
	}
	return digests
}
