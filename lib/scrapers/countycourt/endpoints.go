package countycourt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
)

const secondarySearchPath = "/PublicCaseAccess/Search"

// alternative query-string endpoints various generations of the county
// site have answered on
var genericSearchPaths = []string{
	"/search?q=%s",
	"/CaseSearch?SearchCriteria=%s",
	"/publicindex?name=%s",
}

func randomForwardedAddr() string {
	octets := make([]any, 3)
	for i := range octets {
		n, err := random.IntRange(1, 254)
		if err != nil {
			n = 66
		}
		octets[i] = n
	}
	return fmt.Sprintf("66.%d.%d.%d", octets...)
}

// searchSecondary hits the records endpoint that normally sits behind the
// clerk portal. Forwarded-IP headers make the request look like it came
// through the portal's proxy.
func (c *Client) searchSecondary(ctx context.Context, query string, kind SearchKind) ([]CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "searchSecondary")
	defer span.End()

	addr := randomForwardedAddr()
	headers := c.pageHeaders(secondarySearchPath)
	headers["x-forwarded-for"] = addr
	headers["x-real-ip"] = addr

	body, err := c.fetch(ctx, http.MethodPost, secondarySearchPath, headers, map[string]string{
		queryFieldName(query, kind): query,
	})
	if err != nil {
		span.SetStatus(codes.Error, "secondary endpoint failed")
		return nil, err
	}
	return ParseSearchResults(body, query), nil
}

// searchGeneric walks the alternative endpoints in order and stops at the
// first one that yields a record. The strategy only fails when every
// endpoint failed at the transport level.
func (c *Client) searchGeneric(ctx context.Context, query string, _ SearchKind) ([]CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "searchGeneric")
	defer span.End()

	var errList []error
	for _, path := range genericSearchPaths {
		endpoint := fmt.Sprintf(path, url.QueryEscape(query))
		body, err := c.fetch(ctx, http.MethodGet, endpoint, nil, nil)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			slog.DebugContext(ctx, "generic endpoint failed", "endpoint", endpoint, "err", err)
			errList = append(errList, err)
			continue
		}
		if records := ParseSearchResults(body, query); len(records) > 0 {
			return records, nil
		}
	}

	if len(errList) == len(genericSearchPaths) {
		span.SetStatus(codes.Error, "all generic endpoints failed")
		return nil, errors.Join(errList...)
	}
	return nil, nil
}
