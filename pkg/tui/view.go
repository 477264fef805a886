package tui

import (
	"fmt"
	"strings"

	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

// RenderWeek formats the schedule as a styled terminal listing, one block per
// weekday in calendar order.
func RenderWeek(set timetable.Set) string {
	grouped := set.ByDay()
	var b strings.Builder

	for _, day := range timetable.Weekdays {
		b.WriteString(dayStyle.Render(day.String()))
		b.WriteString("\n")

		sessions := grouped[day]
		if len(sessions) == 0 {
			b.WriteString(mutedStyle.Render("  no courses"))
			b.WriteString("\n\n")
			continue
		}

		for _, s := range sessions {
			line := fmt.Sprintf("  %s  %s",
				timeStyle.Render(fmt.Sprintf("%s–%s", s.Start, s.End)),
				s.Title)
			var details []string
			if s.Kind != "" {
				details = append(details, s.Kind)
			}
			if s.Room != "" {
				details = append(details, s.Room)
			}
			if len(details) > 0 {
				line += " " + mutedStyle.Render("("+strings.Join(details, ", ")+")")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(accentStyle.Render(fmt.Sprintf("%d distinct course(s), %d session(s)",
		set.DistinctCount(), len(set.Sessions))))
	b.WriteString("\n")

	return b.String()
}
