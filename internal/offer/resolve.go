package offer

import (
	"context"

	"stayprice/pkg/logger"
)

// productStrategy is one discovery attempt. Every strategy has the same
// contract: return candidates or an empty list. A failing strategy never
// aborts the chain.
type productStrategy struct {
	name  string
	fetch func(ctx context.Context) ([]ProductRef, error)
}

// resolveProducts discovers the bookable products for a search, trying the
// strategies in order and stopping at the first non-empty result. An
// explicit override from the caller skips discovery entirely and is used
// verbatim, names left empty.
//
// The resolver never hard-fails; an empty result after exhausting every
// strategy means "no products", which the caller maps to a not-found
// response.
func (s *Service) resolveProducts(ctx context.Context, sessionID, searchID string, override []string) []ProductRef {
	if refs := refsFromIDs(override); len(refs) > 0 {
		return refs
	}

	strategies := []productStrategy{
		{
			name: "static-config",
			fetch: func(ctx context.Context) ([]ProductRef, error) {
				return refsFromIDs(s.opts.StaticProductIDs), nil
			},
		},
		{
			name: "services",
			fetch: func(ctx context.Context) ([]ProductRef, error) {
				return s.client.ListServices(ctx, sessionID, searchID)
			},
		},
		{
			name: "packages",
			fetch: func(ctx context.Context) ([]ProductRef, error) {
				return s.client.ListPackages(ctx, sessionID, searchID)
			},
		},
		{
			name: "accommodation",
			fetch: func(ctx context.Context) ([]ProductRef, error) {
				return s.client.AccommodationProducts(ctx, sessionID)
			},
		},
		{
			name: "fallback-config",
			fetch: func(ctx context.Context) ([]ProductRef, error) {
				return refsFromIDs(s.opts.FallbackProductIDs), nil
			},
		},
	}

	for _, strategy := range strategies {
		refs, err := strategy.fetch(ctx)
		if err != nil {
			s.logger.Warn("product discovery strategy failed",
				logger.Field{Key: "strategy", Value: strategy.name},
				logger.Err(err),
			)
			continue
		}

		refs = cleanRefs(refs)
		if len(refs) > 0 {
			s.logger.Debug("products resolved",
				logger.Field{Key: "strategy", Value: strategy.name},
				logger.Field{Key: "count", Value: len(refs)},
			)
			return refs
		}
	}

	return nil
}

func refsFromIDs(ids []string) []ProductRef {
	refs := make([]ProductRef, 0, len(ids))
	for _, id := range ids {
		if !isSentinelID(id) {
			refs = append(refs, ProductRef{ProductID: id})
		}
	}
	return refs
}

// cleanRefs drops placeholder rows; the backend's all-zero id must never
// reach the price stage.
func cleanRefs(refs []ProductRef) []ProductRef {
	cleaned := make([]ProductRef, 0, len(refs))
	for _, ref := range refs {
		if !isSentinelID(ref.ProductID) {
			cleaned = append(cleaned, ref)
		}
	}
	return cleaned
}
