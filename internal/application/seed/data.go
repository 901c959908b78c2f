package seed

// Root causes offered per defect type; types not listed fall back to
// "Under investigation".
var rootCauses = map[string][]string{
	"Routing Defect": {
		"Operator followed outdated routing card version",
		"Missing route step in traveler document",
		"Incorrect station sequence on work order",
		"Routing change not communicated to shift",
		"Wrong sub-assembly routed to testing",
	},
	"Crimp Issue": {
		"Crimp die worn beyond tolerance limit",
		"Incorrect crimp height setting after changeover",
		"Terminal not fully seated before crimping",
		"Wrong terminal size selected for wire gauge",
		"Crimp tool calibration expired",
	},
	"Soldering Defect": {
		"Soldering iron temperature too high causing pad lift",
		"Cold solder joint due to insufficient heat",
		"Flux residue contamination on PCB",
		"Incorrect solder wire diameter used",
		"Operator hand tremor during fine-pitch soldering",
	},
	"Wiring Error": {
		"Wire connected to wrong terminal position",
		"Wire color code misread under plant lighting",
		"Crossed wires at connector block J4",
		"Missing wire in harness bundle",
		"Wrong wire gauge used for power circuit",
	},
	"Component Mismatch": {
		"Similar-looking components mixed in feeder bin",
		"Incorrect BOM revision loaded in system",
		"Wrong resistor value placed (10K vs 10R)",
		"Component reel mislabeled by supplier",
		"Substitution component not approved by engineering",
	},
	"Insulation Failure": {
		"Insulation stripped too far back exposing conductor",
		"Nicked insulation during cable routing",
		"Heat shrink not fully shrunk, exposing splice",
		"Wrong insulation class used for high-temp zone",
		"Mechanical abrasion on sharp chassis edge",
	},
	"Connector Damage": {
		"Dropped connector on floor during assembly",
		"Excessive insertion force bent contact pins",
		"Connector housing crack from over-tightened screw",
		"Contamination in connector cavity from debris",
		"Wrong orientation forced during blind-mate insertion",
	},
	"Torque Defect": {
		"Torque wrench not calibrated, reading 20% low",
		"Operator skipped torque verification step",
		"Under-torqued fastener on bus bar connection",
		"Over-torqued screw cracked PCB mount point",
		"Wrong torque spec applied from old revision drawing",
	},
	"Label Error": {
		"Duplicate serial number printed on label",
		"Wrong product variant code on identification label",
		"Label printer ribbon faded, barcode unreadable",
		"QR code pointing to incorrect document revision",
		"Missing CE marking label on finished unit",
	},
	"Visual Defect": {
		"Scratch on front panel during handling",
		"Paint chip on enclosure corner",
		"Foreign particle trapped under conformal coating",
		"Misaligned front panel decal",
		"Fingerprint smudge visible under display glass",
	},
}

var remarks = []string{
	"Caught during in-process inspection",
	"Found at final QC checkpoint",
	"Reported by downstream station operator",
	"Discovered during functional testing",
	"Noticed during visual audit rounds",
	"Flagged by shift supervisor review",
	"Detected by automated vision system",
	"Found during customer witness inspection",
	"Identified after rework from previous station",
	"", "", "",
}

type actionSeed struct {
	defect, description, owner string
	targetOffset               int // days from today
	status, review             string
}

var actionSeeds = []actionSeed{
	{"Routing Defect", "Retrain all second shift operators on updated routing procedure v3.2", "R. Kumar", -5, "Closed", "Routing defects reduced by 40% after retraining. Second shift compliance at 95%."},
	{"Crimp Issue", "Replace all worn crimp dies and implement mandatory die inspection at batch changeovers", "S. Patel", 3, "In Progress", "Die replacement 60% complete. New inspection checklist drafted."},
	{"Soldering Defect", "Calibrate all soldering stations at IGBT and verify temperature profiles weekly", "M. Singh", -2, "Open", ""},
	{"Wiring Error", "Update wiring schematics with color-coded diagrams and add poka-yoke connectors", "A. Sharma", 10, "Open", ""},
	{"Component Mismatch", "Install barcode verification scanner at Sub Assembly feeder station", "V. Reddy", -8, "Closed", "Zero mismatch defects since scanner installation. ROI achieved in 2 weeks."},
	{"Insulation Failure", "Add edge protectors on all sharp chassis edges in routing path", "D. Nair", -1, "In Progress", "Protectors installed on 3 of 5 identified edges."},
	{"Connector Damage", "Provide ESD-safe connector handling trays and training on insertion force limits", "P. Verma", 7, "Open", ""},
	{"Torque Defect", "Implement digital torque wrench with automatic data logging and alerts", "K. Mishra", 14, "Open", ""},
	{"Label Error", "Upgrade label printer firmware and add automatic serial number validation", "R. Kumar", -10, "Closed", "Duplicate serial labels eliminated. Printer uptime improved to 99.5%."},
	{"Routing Defect", "Implement digital traveler system to replace paper routing cards", "S. Patel", 30, "In Progress", "Pilot phase on CVS station. Paper routing errors down by 70% on pilot line."},
}

type knowledgeSeed struct {
	problem, rootCause, action, before, after, station, defect string
	closedAgo                                                  int
}

var knowledgeSeeds = []knowledgeSeed{
	{
		"Recurring routing defects on second shift at CVS station",
		"Second shift operators were using routing card v2.8 while first shift had already switched to v3.2. The updated version added a new QC hold point that second shift was bypassing.",
		"Conducted targeted retraining for all second shift operators. Implemented digital routing card system that auto-updates. Added shift handover checklist item for routing revision verification.",
		"12 routing defects/week", "3 routing defects/week", "CVS", "Routing Defect", 15,
	},
	{
		"Crimp height failures spiking after BATCH-2026-003 introduction",
		"BATCH-2026-003 terminal supplier changed raw material thickness by 0.05mm without notification. Existing crimp dies were set for previous tolerance band, causing out-of-spec crimp heights.",
		"Implemented mandatory die inspection and first-article verification at every batch change. Filed supplier corrective action (SCAR). Added incoming material thickness check.",
		"8 crimp failures/week", "1 crimp failure/week", "Loom", "Crimp Issue", 30,
	},
	{
		"Cold solder joints on IGBT power module connections",
		"Soldering station #3 had a faulty thermocouple reading 15°C higher than actual tip temperature. Operators believed they were at 370°C but actual temp was only 355°C, insufficient for lead-free solder.",
		"Replaced thermocouple on station #3. Implemented weekly calibration checks with contact thermometer. Added visual solder quality reference cards at each station.",
		"6 solder defects/week", "0.5 solder defects/week", "IGBT", "Soldering Defect", 45,
	},
	{
		"Component mismatch at Sub Assembly, wrong resistor values",
		"Similar-looking 10KΩ and 10Ω resistors stored in adjacent bins without visual differentiation. The bin labels were small text only with no color coding.",
		"Installed barcode scanner verification at feeder station. Color-coded all component bins. Added pick-to-light system for high-risk similar components.",
		"3 mismatches/week", "0 mismatches in 6 weeks", "Sub Assembly", "Component Mismatch", 20,
	},
	{
		"Label errors: duplicate serial numbers on finished units",
		"Label printer buffer was retaining previous print job data when network connection dropped momentarily. Upon reconnection it reprinted the last label instead of advancing to the next serial number.",
		"Updated printer firmware to v4.2 which clears buffer on reconnection. Added serial number uniqueness check in QC scan system. Installed UPS on printer network switch.",
		"2 duplicate labels/month", "0 duplicates in 3 months", "Testing", "Label Error", 10,
	},
	{
		"Insulation nicks on cables routed through chassis bay 3",
		"Sheet metal edge at chassis bay 3 entry point had a sharp burr from stamping. Cable bundles rubbing against this edge during vibration testing caused insulation damage.",
		"Installed rubber grommets and edge protectors at all chassis cable entry and exit points. Added cable routing inspection step before vibration test.",
		"4 insulation failures/month", "0 failures in 2 months", "CVS", "Insulation Failure", 7,
	},
}
