package parser

import (
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

// Parse extracts the course sessions from the programme HTML document.
//
// The document is a tabbed weekly view: one div.tab_content per weekday,
// linked to its Greek day label through aria-labelledby, with the sessions in
// table.courses_timetable rows. Unknown day labels and malformed time ranges
// fail the whole parse; a silently dropped row would corrupt the schedule.
func Parse(r io.Reader) ([]timetable.Session, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var sessions []timetable.Session
	var parseErr error

	doc.Find("div.tab_content").EachWithBreak(func(i int, tab *goquery.Selection) bool {
		labelID, _ := tab.Attr("aria-labelledby")
		label := cleanText(doc.Find("a#" + labelID).Text())

		day, err := timetable.ParseGreekDay(label)
		if err != nil {
			parseErr = err
			return false
		}

		tab.Find("table.courses_timetable tr.sbody").EachWithBreak(func(j int, row *goquery.Selection) bool {
			cells := row.Find("td")
			if cells.Length() < 5 {
				// Spacer and header rows carry fewer cells; they are not sessions.
				return true
			}

			start, end, err := timetable.ParseClockRange(cleanText(cells.Eq(0).Text()))
			if err != nil {
				parseErr = err
				return false
			}

			titleCell := cells.Eq(1)
			title := cleanText(titleCell.Text())
			url := ""
			if link := titleCell.Find("a").First(); link.Length() > 0 {
				title = cleanText(link.Text())
				url, _ = link.Attr("href")
			}

			var instructors []string
			cells.Eq(4).Find("li a").Each(func(k int, a *goquery.Selection) {
				if name := cleanText(a.Text()); name != "" {
					instructors = append(instructors, name)
				}
			})
			if len(instructors) == 0 {
				if name := cleanText(cells.Eq(4).Text()); name != "" {
					instructors = []string{name}
				}
			}

			sessions = append(sessions, timetable.Session{
				Title:       title,
				Day:         day,
				Start:       start,
				End:         end,
				Kind:        cleanText(cells.Eq(2).Text()),
				Room:        cleanText(cells.Eq(3).Text()),
				Instructors: instructors,
				URL:         url,
			})
			return true
		})

		return parseErr == nil
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return sessions, nil
}

// ParseFile reads and parses the programme document at the given path.
func ParseFile(path string) ([]timetable.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// cleanText trims a text node and collapses internal whitespace runs, which
// nested markup tends to leave behind.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
