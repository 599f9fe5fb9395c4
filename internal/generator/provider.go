package generator

import (
	"context"

	"github.com/Bahjat/page-composer/backend/internal/model"
)

// RemoteSynthesizer defines the contract for the external synthesis service.
type RemoteSynthesizer interface {
	Synthesize(ctx context.Context, req model.SynthesisRequest) (*model.SynthesisResponse, error)
}

// LinkAuditor reports unreachable links of a configuration as warnings.
type LinkAuditor interface {
	Audit(ctx context.Context, cfg *model.PageConfig) []string
}
