package health

import (
	"context"

	"github.com/kailas-cloud/dsaranker/internal/usecase/embedding"
)

// CorpusCounter reports how many documents are loaded.
type CorpusCounter interface {
	Len() int
}

// StorePinger checks persistent embedding store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// PrecomputeStatus reports the state of the embedding precompute pass.
type PrecomputeStatus interface {
	Status() embedding.Status
}
