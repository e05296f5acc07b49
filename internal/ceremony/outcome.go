package ceremony

// Outcome records the result of one verification attempt for a
// (folder, circuit) pair. Err is empty iff OK is true.
type Outcome struct {
	Folder  string
	Circuit string
	OK      bool
	Err     string
}

// SkippedFolder records a contribution folder that was excluded from
// verification entirely, e.g. because it contained no artifact files.
type SkippedFolder struct {
	Folder string
	Reason string
}

// RunResult is everything a chain run produced: one outcome per attempted
// (folder, circuit) pair, plus the folders that were skipped wholesale.
type RunResult struct {
	Outcomes []Outcome
	Skipped  []SkippedFolder
}
