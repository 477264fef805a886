package exporter

import (
	"encoding/json"

	"github.com/MANRAF04/uni-schedule/pkg/timetable"
)

// Export is the JSON projection of the remaining schedule. The session
// records use the same schema as the snapshot file, so an export can be
// loaded back as a snapshot unchanged.
type Export struct {
	DistinctCount int                 `json:"distinct_count"`
	Remaining     []timetable.Session `json:"remaining"`
}

// JSON serializes the set as a flat export document.
func JSON(set timetable.Set) ([]byte, error) {
	doc := Export{
		DistinctCount: set.DistinctCount(),
		Remaining:     set.Sessions,
	}
	if doc.Remaining == nil {
		doc.Remaining = []timetable.Session{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
