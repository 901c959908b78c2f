package analytics

import "github.com/bryanwahyu/rcis/internal/domain/rework"

// HeatMap is a station x severity matrix of summed quantities.
type HeatMap struct {
	Stations   []string `json:"stations"`
	Severities []string `json:"severities"`
	// Cells[i][j] belongs to Stations[i], Severities[j].
	Cells [][]int `json:"cells"`
}

// RiskHeatMap starts every (station, severity) cell at zero and adds each
// event's quantity to its cell. Events whose station or severity is not in
// the catalogs are skipped.
func RiskHeatMap(events []rework.Event, stations, severities []string) HeatMap {
	si := indexOf(stations)
	vi := indexOf(severities)
	cells := make([][]int, len(stations))
	for i := range cells {
		cells[i] = make([]int, len(severities))
	}
	for _, e := range events {
		r, ok := si[e.Station]
		if !ok {
			continue
		}
		c, ok := vi[e.Severity]
		if !ok {
			continue
		}
		cells[r][c] += e.Qty()
	}
	return HeatMap{
		Stations:   append([]string(nil), stations...),
		Severities: append([]string(nil), severities...),
		Cells:      cells,
	}
}

// Cell returns the value for a station/severity pair, 0 when either is
// outside the map.
func (h HeatMap) Cell(station, severity string) int {
	for i, s := range h.Stations {
		if s != station {
			continue
		}
		for j, v := range h.Severities {
			if v == severity {
				return h.Cells[i][j]
			}
		}
	}
	return 0
}

func (h HeatMap) Total() int {
	sum := 0
	for _, row := range h.Cells {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// StationTotals sums each row.
func (h HeatMap) StationTotals() []Entry {
	out := make([]Entry, len(h.Stations))
	for i, s := range h.Stations {
		sum := 0
		for _, v := range h.Cells[i] {
			sum += v
		}
		out[i] = Entry{Key: s, Count: sum}
	}
	return out
}

// SeverityTotals sums each column.
func (h HeatMap) SeverityTotals() []Entry {
	out := make([]Entry, len(h.Severities))
	for j, s := range h.Severities {
		sum := 0
		for i := range h.Stations {
			sum += h.Cells[i][j]
		}
		out[j] = Entry{Key: s, Count: sum}
	}
	return out
}

func (h HeatMap) MaxCell() int {
	m := 0
	for _, row := range h.Cells {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Risk levels, lowest to highest.
const (
	RiskNone     = "None"
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskElevated = "Elevated"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// RiskLevel grades value against max in five steps (15/35/55/75%).
func RiskLevel(value, max int) string {
	if value == 0 {
		return RiskNone
	}
	ratio := 0.0
	if max > 0 {
		ratio = float64(value) / float64(max)
	}
	switch {
	case ratio <= 0.15:
		return RiskLow
	case ratio <= 0.35:
		return RiskModerate
	case ratio <= 0.55:
		return RiskElevated
	case ratio <= 0.75:
		return RiskHigh
	}
	return RiskCritical
}

// StationRisk is a row summary for the heat map table.
type StationRisk struct {
	Station string `json:"station"`
	Total   int    `json:"total"`
	Risk    string `json:"risk"`
}

// StationRisks grades each station total against the largest possible row
// (max cell times the number of severities).
func (h HeatMap) StationRisks() []StationRisk {
	ceiling := h.MaxCell() * len(h.Severities)
	totals := h.StationTotals()
	out := make([]StationRisk, len(totals))
	for i, t := range totals {
		out[i] = StationRisk{Station: t.Key, Total: t.Count, Risk: RiskLevel(t.Count, ceiling)}
	}
	return out
}

func indexOf(list []string) map[string]int {
	m := make(map[string]int, len(list))
	for i, v := range list {
		if _, dup := m[v]; !dup {
			m[v] = i
		}
	}
	return m
}
