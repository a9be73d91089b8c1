package countycourt

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"courtwatch-backend/lib/htmlutil"
	"courtwatch-backend/lib/textutil"

	"go.opentelemetry.io/otel/codes"
)

const caseDetailPath = "/PublicCaseAccess/CaseDetail"

// GetCaseDetails fetches and parses a single case's detail page. Detail
// extraction is a best-effort subset of search extraction: the same field
// tables run over the page, plus a docket pass.
func (c *Client) GetCaseDetails(ctx context.Context, caseNumber string) (CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "GetCaseDetails")
	defer span.End()

	endpoint := caseDetailPath + "?CaseNumber=" + url.QueryEscape(caseNumber)
	body, err := c.fetch(ctx, http.MethodGet, endpoint, c.pageHeaders(caseDetailPath), nil)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch case detail")
		return CaseRecord{}, err
	}

	window := carveWindow(body, caseNumber)
	record := extractCase(window, caseNumber, caseNumber, time.Now())
	record.RegisterOfActions = parseDocket(body)
	return record, nil
}

// one docket row: a date followed by the action text on the same line
var docketRow = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s*(?:<[^>]*>\s*)*([A-Za-z][^<>\r\n]{2,100})`)

var filedByRow = regexp.MustCompile(`(?i)filed\s+by` + tagGap + `([A-Za-z][A-Za-z.,'\- ]{2,60})`)

// parseDocket reads register-of-actions rows off a detail page. Partial
// on purpose: rows the county renders in an unrecognized layout are
// skipped, never an error.
func parseDocket(body string) []DocketAction {
	var actions []DocketAction
	for _, groups := range docketRow.FindAllStringSubmatch(body, -1) {
		date, ok := textutil.NormalizeDate(groups[1])
		if !ok {
			continue
		}
		action := DocketAction{
			Date:    date,
			Action:  htmlutil.CleanText(groups[2]),
			FiledBy: "Unknown",
		}
		if by := filedByRow.FindStringSubmatch(groups[0]); len(by) > 1 {
			action.FiledBy = htmlutil.CleanText(by[1])
		}
		actions = append(actions, action)
	}
	return actions
}
