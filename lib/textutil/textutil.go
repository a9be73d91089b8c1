package textutil

import (
	"regexp"
	"strings"
	"time"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// layouts county pages have been observed to use for filed dates
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate parses a date in any of the known court-page layouts and
// returns it as YYYY-MM-DD. The second return is false when nothing parsed.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.Trim(raw, " \t\n")
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
