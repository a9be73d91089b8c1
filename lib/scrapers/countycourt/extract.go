package countycourt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"courtwatch-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// how far on either side of a case number field extractors may look;
// keeps one case from bleeding into its neighbor on a multi-result page
const contextWindow = 1000

// ParseSearchResults turns a raw search-result page into case records.
// It never fails: fields that can't be read get their documented
// defaults, and a page with no case numbers but case-adjacent language
// still yields one low-confidence placeholder record.
func ParseSearchResults(html string, originalQuery string) []CaseRecord {
	now := time.Now()

	caseNumbers := discoverCaseNumbers(html)
	if len(caseNumbers) == 0 {
		if caseKeywords.MatchString(html) {
			return []CaseRecord{placeholderRecord(originalQuery, now)}
		}
		return nil
	}

	records := make([]CaseRecord, 0, len(caseNumbers))
	for _, number := range caseNumbers {
		window := carveWindow(html, number)
		records = append(records, extractCase(window, number, originalQuery, now))
	}
	return records
}

// discoverCaseNumbers returns every case number on the page,
// de-duplicated, in the order each first appears in the document
// regardless of which format matched it.
func discoverCaseNumbers(html string) []string {
	type hit struct {
		offset int
		number string
	}
	var hits []hit
	for _, pattern := range caseNumberScan {
		for _, loc := range pattern.FindAllStringIndex(html, -1) {
			hits = append(hits, hit{offset: loc[0], number: html[loc[0]:loc[1]]})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })

	var ordered []string
	seen := map[string]bool{}
	for _, h := range hits {
		if seen[h.number] {
			continue
		}
		seen[h.number] = true
		ordered = append(ordered, h.number)
	}
	return ordered
}

func carveWindow(html, caseNumber string) string {
	idx := strings.Index(html, caseNumber)
	if idx < 0 {
		return html
	}
	start := max(0, idx-contextWindow)
	end := min(len(html), idx+len(caseNumber)+contextWindow)
	return html[start:end]
}

func extractCase(window, caseNumber, originalQuery string, now time.Time) CaseRecord {
	today := now.Format("2006-01-02")

	return CaseRecord{
		CaseNumber: caseNumber,
		Title: firstMatch(window, titlePatterns,
			fmt.Sprintf("Case involving %s", originalQuery)),
		CaseType:     firstMatch(window, caseTypePatterns, "Unknown"),
		Status:       firstMatch(window, statusPatterns, "Active"),
		DateFiled:    extractFiledDate(window, today),
		LastActivity: today,
		Department:   firstMatch(window, departmentPatterns, DefaultCourtName),
		Judge:        firstMatch(window, judgePatterns, "Unknown"),
		Parties:      extractParties(window, originalQuery),
		Confidence:   ConfidenceHigh,
	}
}

func placeholderRecord(originalQuery string, now time.Time) CaseRecord {
	today := now.Format("2006-01-02")
	return CaseRecord{
		CaseNumber:   fmt.Sprintf("SEARCH-%d", now.Unix()),
		Title:        fmt.Sprintf("Search results for %s", originalQuery),
		CaseType:     "Unknown",
		Status:       "Search Results Found",
		DateFiled:    today,
		LastActivity: today,
		Department:   DefaultCourtName,
		Judge:        "Unknown",
		Parties:      []string{originalQuery},
		Confidence:   ConfidenceLow,
	}
}

func firstMatch(window string, patterns []*regexp.Regexp, fallback string) string {
	for _, pattern := range patterns {
		groups := pattern.FindStringSubmatch(window)
		if len(groups) < 2 {
			continue
		}
		value := strings.Trim(groups[1], " \t\n")
		if value != "" {
			return value
		}
	}
	return fallback
}

func extractFiledDate(window, fallback string) string {
	for _, pattern := range dateFiledPatterns {
		groups := pattern.FindStringSubmatch(window)
		if len(groups) < 2 {
			continue
		}
		if iso, ok := textutil.NormalizeDate(groups[1]); ok {
			return iso
		}
	}
	return fallback
}

func extractParties(window, originalQuery string) []string {
	parties := []string{originalQuery}
	for _, pattern := range partyPatterns {
		for _, groups := range pattern.FindAllStringSubmatch(window, -1) {
			name := strings.Trim(groups[1], " \t\n")
			if name == "" || isKnownParty(parties, name) {
				continue
			}
			parties = append(parties, name)
		}
	}
	return parties
}

// isKnownParty treats near-identical spellings ("John Smith" vs
// "JOHN  SMITH") as the same party
func isKnownParty(parties []string, candidate string) bool {
	normalized := textutil.NormalizeName(candidate)
	for _, p := range parties {
		existing := textutil.NormalizeName(p)
		if existing == normalized {
			return true
		}
		if matchr.JaroWinkler(existing, normalized, false) > 0.95 {
			return true
		}
	}
	return false
}
