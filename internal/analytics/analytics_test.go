package analytics

import (
	"time"

	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

var testNow = time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) string {
	return testNow.AddDate(0, 0, -n).Format(rework.DateLayout)
}

// scenarioEvents is the three-event fixture: two recent IGBT soldering
// defects and one CVS wiring error outside the default 30-day window.
func scenarioEvents() []rework.Event {
	return []rework.Event{
		{ID: "1", Station: "IGBT", DefectType: "Soldering Defect", Severity: "High", Quantity: 2, Date: daysAgo(0), Shift: "A (First)"},
		{ID: "2", Station: "IGBT", DefectType: "Soldering Defect", Severity: "High", Quantity: 1, Date: daysAgo(1), Shift: "A (First)"},
		{ID: "3", Station: "CVS", DefectType: "Wiring Error", Severity: "Low", Quantity: 1, Date: daysAgo(40), Shift: "General"},
	}
}

func ev(defect, station, severity, shift, batch string, qty int, ago int) rework.Event {
	return rework.Event{
		Date:          daysAgo(ago),
		Station:       station,
		DefectType:    defect,
		Severity:      severity,
		Shift:         shift,
		MaterialBatch: batch,
		Quantity:      qty,
	}
}
