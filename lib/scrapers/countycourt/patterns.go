package countycourt

import (
	"regexp"
)

type SearchKind string

const (
	KindName       SearchKind = "name"
	KindCaseNumber SearchKind = "caseNumber"
	KindAttorney   SearchKind = "attorney"
	KindAll        SearchKind = "all"
)

// Case number shapes accepted by this jurisdiction. The first is the
// county's native format (e.g. 22FL001581C), the second an older
// letters-first variant, the third the prefix/year/sequence format
// (e.g. FL-2024-123456).
var caseNumberShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}[A-Z]{2}\d{6}[A-Z]?$`),
	regexp.MustCompile(`^[A-Z]{2}\d{1,2}\d{6}[A-Z]?$`),
	regexp.MustCompile(`^[A-Z]{2}-\d{4}-\d{4,8}$`),
}

// identifier discovery patterns, applied over the whole document in
// order; the native format first so it wins the first-seen ordering
var caseNumberScan = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2}[A-Z]{2}\d{6}[A-Z]?\b`),
	regexp.MustCompile(`\b[A-Z]{2}-\d{4}-\d{3,10}\b`),
}

// DetectSearchType classifies a query before routing it to a form field.
// A query shaped like a case number is always a case-number search no
// matter what kind the caller asked for.
func DetectSearchType(query string, kind SearchKind) SearchKind {
	for _, shape := range caseNumberShapes {
		if shape.MatchString(query) {
			return KindCaseNumber
		}
	}
	if kind == KindAttorney {
		return KindAttorney
	}
	return KindName
}

// Each field is extracted by an ordered pattern list: label-anchored
// patterns first (high confidence), bare heuristics after. The first
// pattern whose first capture group matches wins; no match falls back to
// the field's documented default.

// optional markup between a label and its value
const tagGap = `\s*:\s*(?:<[^>]*>\s*)*`

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)case\s*(?:title|name)` + tagGap + `([^<>\r\n]{3,120})`),
	regexp.MustCompile(`([A-Z][\w.,'&\- ]{2,60}\s+vs?\.?\s+[A-Z][\w.,'&\- ]{2,60})`),
}

var caseTypePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)case\s*type` + tagGap + `([A-Za-z][A-Za-z /\-]{2,40})`),
	regexp.MustCompile(`(?i)\b(Family Law|Civil|Criminal|Probate|Small Claims|Traffic|Juvenile|Unlawful Detainer)\b`),
}

var statusPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)case\s*status` + tagGap + `([A-Za-z][A-Za-z ]{2,30})`),
	regexp.MustCompile(`(?i)\bstatus` + tagGap + `([A-Za-z][A-Za-z ]{2,30})`),
	regexp.MustCompile(`(?i)\b(Active|Closed|Pending|Disposed|Dismissed)\b`),
}

var dateFiledPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:date\s*filed|filed?\s*(?:date|on)?)` + tagGap + `([A-Za-z0-9 ,/\-]{6,20})`),
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
}

var departmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)dep(?:artmen)?t\.?` + tagGap + `([A-Za-z0-9][A-Za-z0-9 ]{0,30})`),
	regexp.MustCompile(`(?i)\b(?:dept\.?|department)\s*#?\s*(\d{1,3}[A-Z]?)\b`),
}

var judgePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:judge|judicial\s+officer|commissioner)` + tagGap + `([A-Za-z][A-Za-z.,'\- ]{2,60})`),
	regexp.MustCompile(`(?i)\bHon\.\s+([A-Z][A-Za-z.,'\- ]{2,60})`),
}

// party patterns are cumulative: every match across every pattern is
// collected, not just the first
var partyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:petitioner|respondent|plaintiff|defendant)` + tagGap + `([A-Za-z][A-Za-z.,'\- ]{2,60})`),
	regexp.MustCompile(`(?i)in\s+re\s*:?\s+([A-Za-z][A-Za-z.,'\- ]{2,60})`),
}

// pages with none of these words are treated as true zero-result pages
var caseKeywords = regexp.MustCompile(`(?i)\b(case|court|hearing|judge)\b`)
