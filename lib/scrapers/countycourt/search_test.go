package countycourt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"courtwatch-backend/lib/ratelimit"
	"courtwatch-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// fakeCourt stands in for the county's site: per-path handlers plus hit
// counters so tests can assert which strategies ran.
type fakeCourt struct {
	mu       sync.Mutex
	hits     map[string]int
	handlers map[string]http.HandlerFunc
	server   *httptest.Server
}

func newFakeCourt(t *testing.T) *fakeCourt {
	telemetry.SetupForTesting(t, "lib/scrapers/countycourt")

	f := &fakeCourt{
		hits:     map[string]int{},
		handlers: map[string]http.HandlerFunc{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		handler := f.handlers[r.URL.Path]
		f.mu.Unlock()

		if handler == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCourt) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

func (f *fakeCourt) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeCourt) client(t *testing.T) *Client {
	client, err := NewClient(ClientOptions{
		BaseUrl: f.server.URL,
		Limiter: ratelimit.New(100, time.Second*10),
	})
	require.NoError(t, err)
	return client
}

const formPage = `<html><body>
	<form action="/online-services/case-index-search" method="post">
		<input type="hidden" name="token" value="abc123"/>
		<input type="text" name="PartyName"/>
	</form>
</body></html>`

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestSearchFormStrategyEndToEnd(t *testing.T) {
	court := newFakeCourt(t)

	var submitted struct {
		token, party string
	}
	court.handle(searchFormPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(formPage))
			return
		}
		require.NoError(t, r.ParseForm())
		submitted.token = r.PostFormValue("token")
		submitted.party = r.PostFormValue(fieldPartyName)
		w.Write([]byte(`<div>FL-2024-005678 ... Case Status: Active</div>`))
	})

	records, err := court.client(t).SearchCases(context.Background(), "Doe", KindName)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "FL-2024-005678", records[0].CaseNumber)
	require.Equal(t, "Active", records[0].Status)

	// anti-forgery token harvested from the form must round-trip
	require.Equal(t, "abc123", submitted.token)
	require.Equal(t, "Doe", submitted.party)

	// first strategy produced a record, the others must never run
	require.Equal(t, 0, court.hitCount(secondarySearchPath))
	require.Equal(t, 0, court.hitCount("/search"))
	require.Equal(t, 0, court.hitCount("/CaseSearch"))
	require.Equal(t, 0, court.hitCount("/publicindex"))
}

func TestSearchFallsBackToSecondary(t *testing.T) {
	court := newFakeCourt(t)

	court.handle(searchFormPath, respond(`<html><body>No matching entries.</body></html>`))
	court.handle(secondarySearchPath, func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("X-Forwarded-For"))
		require.NotEmpty(t, r.Header.Get("X-Real-Ip"))
		w.Write([]byte(`<div>22FL001581C</div>`))
	})

	records, err := court.client(t).SearchCases(context.Background(), "Doe", KindName)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "22FL001581C", records[0].CaseNumber)

	require.Equal(t, 1, court.hitCount(secondarySearchPath))
	require.Equal(t, 0, court.hitCount("/search"))
}

func TestSearchFallsBackToGeneric(t *testing.T) {
	court := newFakeCourt(t)

	empty := respond(`<html><body>No matching entries.</body></html>`)
	court.handle(searchFormPath, empty)
	court.handle(secondarySearchPath, empty)
	court.handle("/search", empty)
	court.handle("/CaseSearch", respond(`<div>23CV000012</div>`))

	records, err := court.client(t).SearchCases(context.Background(), "Doe", KindName)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "23CV000012", records[0].CaseNumber)

	require.Equal(t, 1, court.hitCount("/search"))
	require.Equal(t, 1, court.hitCount("/CaseSearch"))
	// earlier endpoint matched, the last one is never tried
	require.Equal(t, 0, court.hitCount("/publicindex"))
}

func TestSearchAllStrategiesEmpty(t *testing.T) {
	court := newFakeCourt(t)

	empty := respond(`<html><body>No matching entries.</body></html>`)
	for _, path := range []string{searchFormPath, secondarySearchPath, "/search", "/CaseSearch", "/publicindex"} {
		court.handle(path, empty)
	}

	records, err := court.client(t).SearchCases(context.Background(), "Doe", KindName)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSearchExhaustion(t *testing.T) {
	court := newFakeCourt(t)
	// no handlers registered: every path answers 500

	records, err := court.client(t).SearchCases(context.Background(), "Doe", KindName)
	require.ErrorIs(t, err, ErrSearchUnavailable)
	require.Empty(t, records)

	// each strategy was attempted exactly once
	require.Equal(t, 1, court.hitCount(searchFormPath))
	require.Equal(t, 1, court.hitCount(secondarySearchPath))
	require.Equal(t, 1, court.hitCount("/search"))
	require.Equal(t, 1, court.hitCount("/CaseSearch"))
	require.Equal(t, 1, court.hitCount("/publicindex"))
}

func TestSearchCancelledContext(t *testing.T) {
	court := newFakeCourt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := court.client(t).SearchCases(ctx, "Doe", KindName)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrSearchUnavailable)
}

func TestGetCaseDetails(t *testing.T) {
	court := newFakeCourt(t)
	court.handle(caseDetailPath, respond(`<div>
		22FL001581C
		Case Status: Closed
		Judge: Maria Lopez
		<table><tr><td>03/01/2024</td><td>Petition Filed</td></tr></table>
	</div>`))

	record, err := court.client(t).GetCaseDetails(context.Background(), "22FL001581C")
	require.NoError(t, err)
	require.Equal(t, "22FL001581C", record.CaseNumber)
	require.Equal(t, "Closed", record.Status)
	require.Equal(t, "Maria Lopez", record.Judge)
	require.Len(t, record.RegisterOfActions, 1)
	require.Equal(t, "Petition Filed", record.RegisterOfActions[0].Action)
}

func TestGetCaseDetailsTransportError(t *testing.T) {
	court := newFakeCourt(t)
	court.handle(caseDetailPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := court.client(t).GetCaseDetails(context.Background(), "22FL001581C")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusNotFound, transportErr.StatusCode)
}
