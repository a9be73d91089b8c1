package countycourt

import (
	"regexp"
	"strings"

	"courtwatch-backend/lib/htmlutil"
	"courtwatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var zoomIdPattern = regexp.MustCompile(`(?i)zoom\s*(?:meeting)?\s*id` + tagGap + `([\d][\d ]{7,14})`)
var passcodePattern = regexp.MustCompile(`(?i)passcode` + tagGap + `(\w{4,12})`)
var timeOfDayPattern = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:a\.?m\.?|p\.?m\.?)?`)

// ParseCalendar reads a calendar-listing page into events. Best effort by
// design: the county renders calendars as plain tables with no stable
// markup, so rows that don't look like hearings are skipped.
func ParseCalendar(page string) []CalendarEvent {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var events []CalendarEvent
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, htmlutil.CleanText(htmlutil.GetText(cell.Get(0))))
		})
		if len(cells) < 3 {
			return
		}

		date, ok := textutil.NormalizeDate(cells[0])
		if !ok {
			return
		}

		event := CalendarEvent{
			Date:      date,
			EventType: cells[2],
		}
		if timeOfDayPattern.MatchString(cells[1]) {
			event.Time = cells[1]
		}
		if len(cells) > 3 {
			event.Department = cells[3]
		}
		if len(cells) > 4 {
			event.Judge = cells[4]
		}
		if len(cells) > 5 {
			event.Description = cells[5]
		}

		rowHtml, _ := row.Html()
		if zoom := zoomIdPattern.FindStringSubmatch(rowHtml); len(zoom) > 1 {
			event.Virtual = &VirtualInfo{
				ZoomID: strings.ReplaceAll(zoom[1], " ", ""),
			}
			if pass := passcodePattern.FindStringSubmatch(rowHtml); len(pass) > 1 {
				event.Virtual.Passcode = pass[1]
			}
		}

		events = append(events, event)
	})
	return events
}
