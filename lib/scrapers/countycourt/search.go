package countycourt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
)

// ErrSearchUnavailable is the only error a search surfaces to callers:
// every strategy failed at the transport level. The county's systems are
// unreliable and per-strategy diagnostics aren't actionable upstream.
var ErrSearchUnavailable = errors.New("Unable to search county records at this time.")

type strategy struct {
	name string
	run  func(ctx context.Context, query string, kind SearchKind) ([]CaseRecord, error)
}

// SearchCases runs the fallback chain, strictly sequentially, in fixed
// priority order: form submission, then the portal's records endpoint,
// then the legacy query-string endpoints. The first strategy producing a
// record wins. All-empty is a successful empty result, not an error.
func (c *Client) SearchCases(ctx context.Context, query string, kind SearchKind) ([]CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "SearchCases")
	defer span.End()

	// bookkeeping permit for the logical search; each round trip inside
	// a strategy takes its own
	if err := c.limiter.Admit(ctx); err != nil {
		return nil, err
	}

	strategies := []strategy{
		{name: "form", run: c.searchByForm},
		{name: "secondary", run: c.searchSecondary},
		{name: "generic", run: c.searchGeneric},
	}

	var errList []error
	for _, s := range strategies {
		records, err := s.run(ctx, query, kind)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			slog.WarnContext(ctx, "search strategy failed",
				"strategy", s.name,
				"query", query,
				"err", err,
			)
			errList = append(errList, err)
			continue
		}
		if len(records) > 0 {
			slog.DebugContext(ctx, "search strategy succeeded",
				"strategy", s.name,
				"records", len(records),
			)
			return records, nil
		}
	}

	if len(errList) == len(strategies) {
		span.SetStatus(codes.Error, "all search strategies failed")
		return nil, fmt.Errorf("%w: %w", ErrSearchUnavailable, errors.Join(errList...))
	}
	return []CaseRecord{}, nil
}
