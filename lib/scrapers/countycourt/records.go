package countycourt

// DefaultCourtName is the jurisdiction-wide venue used when a result page
// doesn't name a department.
const DefaultCourtName = "Stanislaus County Superior Court"

// Confidence markers for extracted records. Keyword-fallback records are
// low confidence: the page looked case-adjacent but carried no parseable
// case number.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

type VirtualInfo struct {
	ZoomID   string
	Passcode string
}

type CalendarEvent struct {
	Date        string
	Time        string
	EventType   string
	Department  string
	Judge       string
	Description string
	Virtual     *VirtualInfo
}

type DocketAction struct {
	Date        string
	Action      string
	Description string
	FiledBy     string
}

// CaseRecord is the normalized shape every strategy and parser produces.
// Records are built fresh per call, nothing here is cached.
type CaseRecord struct {
	CaseNumber string
	Title      string
	CaseType   string
	Status     string
	// ISO dates (YYYY-MM-DD). LastActivity is always the extraction
	// time: the search result page has no reliable last-activity field.
	DateFiled    string
	LastActivity string
	Department   string
	Judge        string
	// always contains the original query as a party of interest,
	// extractor hits are appended after it
	Parties           []string
	UpcomingEvents    []CalendarEvent
	RegisterOfActions []DocketAction
	Confidence        string
}
