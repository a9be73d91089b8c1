package countycourt

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

const searchFormPath = "/online-services/case-index-search"

// input names the county's search form uses
const (
	fieldCaseNumber = "CaseNumber"
	fieldPartyName  = "PartyName"
	fieldAttorney   = "AttorneyName"
)

func queryFieldName(query string, kind SearchKind) string {
	switch DetectSearchType(query, kind) {
	case KindCaseNumber:
		return fieldCaseNumber
	case KindAttorney:
		return fieldAttorney
	default:
		return fieldPartyName
	}
}

// searchByForm fetches the search form, replays its hidden fields, and
// submits the query through whichever input fits the query shape.
// Two permits: one for the form fetch, one for the submission.
func (c *Client) searchByForm(ctx context.Context, query string, kind SearchKind) ([]CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "searchByForm")
	defer span.End()

	page, err := c.fetch(ctx, http.MethodGet, searchFormPath, nil, nil)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch search form")
		return nil, err
	}

	action, method, formData := harvestForm(page)
	formData[queryFieldName(query, kind)] = query

	if action == "" {
		action = searchFormPath
	}

	results, err := c.fetch(ctx, method, action, c.pageHeaders(searchFormPath), formData)
	if err != nil {
		span.SetStatus(codes.Error, "failed to submit search form")
		return nil, err
	}
	return ParseSearchResults(results, query), nil
}

// harvestForm pulls the form's action, method and every hidden input off
// the search page. Hidden fields carry the county's anti-forgery tokens
// and must round-trip unchanged.
func harvestForm(page string) (action, method string, formData map[string]string) {
	formData = map[string]string{}
	method = http.MethodPost

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", method, formData
	}

	form := doc.Find("form").First()
	if form.Length() == 0 {
		return "", method, formData
	}

	action = form.AttrOr("action", "")
	if m := strings.ToUpper(form.AttrOr("method", "")); m != "" {
		method = m
	}

	form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" {
			return
		}
		formData[name] = input.AttrOr("value", "")
	})
	return action, method, formData
}
