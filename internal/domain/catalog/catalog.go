package catalog

import "slices"

// Stations on the shop floor.
var Stations = []string{"CVS", "Loom", "IGBT", "Sub Assembly", "Testing"}

// DefectTypes is the fixed defect catalog; operators may still log free text.
var DefectTypes = []string{
	"Routing Defect",
	"Crimp Issue",
	"Soldering Defect",
	"Wiring Error",
	"Component Mismatch",
	"Missing Component",
	"Insulation Failure",
	"Connector Damage",
	"Torque Defect",
	"Label Error",
	"Visual Defect",
	"Mechanical Damage",
	"Contamination",
	"Assembly Error",
	"Testing Failure",
	"Dimension Error",
}

// Severity enum
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

var Severities = []string{SeverityLow, SeverityMedium, SeverityHigh}

var Shifts = []string{"A (First)", "B (Second)", "General"}

var OperatorGroups = []string{"Group A", "Group B", "Group C", "Group D"}

// Action status enum
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

var ActionStatuses = []string{StatusOpen, StatusInProgress, StatusClosed}

var MaterialBatches = []string{
	"BATCH-2026-001",
	"BATCH-2026-002",
	"BATCH-2026-003",
	"BATCH-2026-004",
	"BATCH-2026-005",
	"BATCH-2026-006",
}

// Roles only switch what the presentation layer shows; nothing here enforces them.
const (
	RoleAdmin  = "Admin"
	RoleViewer = "Viewer"
)

var Roles = []string{RoleAdmin, RoleViewer}

// Contains reports whether v is one of the catalog values (exact match).
func Contains(list []string, v string) bool {
	return slices.Contains(list, v)
}

// Snapshot is the JSON shape served to clients building forms.
type Snapshot struct {
	Stations        []string `json:"stations"`
	DefectTypes     []string `json:"defectTypes"`
	Severities      []string `json:"severities"`
	Shifts          []string `json:"shifts"`
	OperatorGroups  []string `json:"operatorGroups"`
	ActionStatuses  []string `json:"actionStatuses"`
	MaterialBatches []string `json:"materialBatches"`
	Roles           []string `json:"roles"`
}

func Current() Snapshot {
	return Snapshot{
		Stations:        Stations,
		DefectTypes:     DefectTypes,
		Severities:      Severities,
		Shifts:          Shifts,
		OperatorGroups:  OperatorGroups,
		ActionStatuses:  ActionStatuses,
		MaterialBatches: MaterialBatches,
		Roles:           Roles,
	}
}
