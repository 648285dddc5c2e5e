package corrector

import (
	"context"
)

// runBatch submits one batch to the provider under a per-batch timeout,
// single-threaded per spec.md §4.3 (no concurrent submissions, no
// parallelism across batches).
func runBatch(ctx context.Context, p Provider, items []BatchItem, cfg Config) ([]ProviderCorrection, error) {
	batchCtx, cancel := context.WithTimeout(ctx, cfg.BatchTimeout)
	defer cancel()

	return p.CorrectBatch(batchCtx, items, cfg.Temperature)
}
