package ceremony

import "sort"

// Cell is one (folder, circuit) entry in the report grid.
type Cell int

const (
	CellNA   Cell = iota // the pair was never attempted for this folder
	CellPass
	CellFail
)

func (c Cell) String() string {
	switch c {
	case CellPass:
		return "PASS"
	case CellFail:
		return "FAIL"
	default:
		return "N/A"
	}
}

// Report is the grouped view over a run's outcomes: one row per folder, one
// column per circuit, plus scalar totals and the failed outcomes in full.
type Report struct {
	Folders  []string // row order: first occurrence in the outcome list
	Circuits []string // column order: lexical
	Cells    map[string]map[string]Cell

	Total    int
	Passed   int
	Failed   int
	Failures []Outcome
}

// BuildReport groups outcomes by folder and circuit. It is a pure function:
// no I/O, and the same outcome list always yields the same report. Folder
// rows follow first-occurrence order, so callers wanting chain order must
// hand in outcomes in chain order.
func BuildReport(outcomes []Outcome) *Report {
	r := &Report{Cells: make(map[string]map[string]Cell)}

	circuitSet := make(map[string]bool)
	for _, o := range outcomes {
		if _, seen := r.Cells[o.Folder]; !seen {
			r.Folders = append(r.Folders, o.Folder)
			r.Cells[o.Folder] = make(map[string]Cell)
		}
		if !circuitSet[o.Circuit] {
			circuitSet[o.Circuit] = true
			r.Circuits = append(r.Circuits, o.Circuit)
		}

		cell := CellFail
		if o.OK {
			cell = CellPass
		}
		r.Cells[o.Folder][o.Circuit] = cell

		r.Total++
		if o.OK {
			r.Passed++
		} else {
			r.Failed++
			r.Failures = append(r.Failures, o)
		}
	}

	sort.Strings(r.Circuits)
	return r
}

// CellFor returns the grid cell for a (folder, circuit) position. Positions
// never attempted report CellNA.
func (r *Report) CellFor(folder, circuit string) Cell {
	return r.Cells[folder][circuit]
}
