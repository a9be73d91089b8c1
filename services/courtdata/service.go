package courtdata

import (
	"context"
	"log/slog"
	"time"

	"courtwatch-backend/lib/ratelimit"
	"courtwatch-backend/lib/scrapers/countycourt"
)

type Config struct {
	BaseUrl          string `json:"base_url"`
	RateLimit        int    `json:"rate_limit"`
	RateWindowMillis int    `json:"rate_window_millis"`
	EmulateBrowser   bool   `json:"emulate_browser"`
}

// Service is the surface the rest of the application talks to. It owns
// the county client and its rate limiter; callers never touch either
// directly.
type Service struct {
	client *countycourt.Client

	// OnCaseUpdated fires after every successful re-fetch in
	// UpdateTrackedCases. It is the seam the notification subsystem
	// attaches to; nil means no change detection.
	OnCaseUpdated func(ctx context.Context, record countycourt.CaseRecord)
}

func NewService(config Config) (*Service, error) {
	limiter := ratelimit.New(
		config.RateLimit,
		time.Duration(config.RateWindowMillis)*time.Millisecond,
	)
	client, err := countycourt.NewClient(countycourt.ClientOptions{
		BaseUrl:        config.BaseUrl,
		Limiter:        limiter,
		EmulateBrowser: config.EmulateBrowser,
	})
	if err != nil {
		return nil, err
	}
	return &Service{client: client}, nil
}

func (s *Service) SearchCases(ctx context.Context, query string, kind countycourt.SearchKind) ([]countycourt.CaseRecord, error) {
	return s.client.SearchCases(ctx, query, kind)
}

func (s *Service) GetCaseDetails(ctx context.Context, caseNumber string) (countycourt.CaseRecord, error) {
	return s.client.GetCaseDetails(ctx, caseNumber)
}

// UpdateTrackedCases re-fetches every tracked case, serially and in input
// order. A case that fails to fetch is logged and skipped; the loop never
// fails as a whole, partial results are expected. Cancelling ctx ends the
// loop early and returns whatever was fetched up to that point.
func (s *Service) UpdateTrackedCases(ctx context.Context, caseNumbers []string) []countycourt.CaseRecord {
	var records []countycourt.CaseRecord
	for _, number := range caseNumbers {
		record, err := s.client.GetCaseDetails(ctx, number)
		if err != nil {
			// a cancelled context would fail every remaining case the
			// same way; stop instead of logging each one
			if ctx.Err() != nil {
				break
			}
			slog.WarnContext(ctx, "failed to update tracked case",
				"case_number", number,
				"err", err,
			)
			continue
		}
		records = append(records, record)

		if s.OnCaseUpdated != nil {
			s.OnCaseUpdated(ctx, record)
		}
	}
	return records
}

func (s *Service) RateLimitStatus() ratelimit.Status {
	return s.client.RateLimit().Status()
}
