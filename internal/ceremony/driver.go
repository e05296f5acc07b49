package ceremony

import (
	"fmt"
	"io"
	"os"
	"time"

	"zkceremony/internal/format"
)

// Fixed outcome messages. The missing-baseline message is part of the
// reporting contract; tooling downstream keys on it.
const (
	missingBaselineMsg = "missing baseline artifact"
	unknownErrorMsg    = "unknown error"
)

// Verifier checks that one contribution artifact was correctly derived from
// its baseline counterpart. Implementations are expected to be expensive
// (minutes, gigabytes of working memory), so the driver never runs two
// verifications at once.
type Verifier interface {
	Verify(baselinePath, paramsPath, currentPath string) error
}

// Driver walks the ordered contribution chain and verifies every folder
// after the first against the baseline, one artifact at a time.
type Driver struct {
	Root     string   // ceremony root containing the contribution folders
	Params   string   // path to the shared powers-of-tau file
	Verifier Verifier

	// Progress receives operator-facing progress lines during the run.
	// Defaults to os.Stderr. The external verifier's own output goes to
	// whatever streams its adapter was built with.
	Progress io.Writer
}

// Run verifies folders[1:] against folders[0] in order. Fewer than two
// folders means there is nothing to verify and yields an empty result, not
// an error. Failures of any kind inside the loop are recorded and never
// abort the remaining folders: one bad contribution must not block
// verification of the others.
func (d *Driver) Run(folders []Folder) *RunResult {
	res := &RunResult{}
	if len(folders) < 2 {
		return res
	}

	baseline := folders[0]
	for _, f := range folders[1:] {
		pairs, unmatched, err := MatchArtifacts(d.Root, f.Name, baseline.Name)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedFolder{Folder: f.Name, Reason: err.Error()})
			d.progress("skipping %s: %v\n", f.Name, err)
			continue
		}

		for _, p := range pairs {
			d.progress("verifying %s/%s against %s ...\n", f.Name, p.Circuit, baseline.Name)
			start := time.Now()
			err := d.Verifier.Verify(p.BaselinePath, d.Params, p.CurrentPath)
			if err != nil {
				msg := err.Error()
				if msg == "" {
					msg = unknownErrorMsg
				}
				res.Outcomes = append(res.Outcomes, Outcome{Folder: f.Name, Circuit: p.Circuit, Err: msg})
				d.progress("  FAIL %s/%s (%s): %s\n", f.Name, p.Circuit, format.FmtDuration(time.Since(start)), msg)
				continue
			}
			res.Outcomes = append(res.Outcomes, Outcome{Folder: f.Name, Circuit: p.Circuit, OK: true})
			d.progress("  ok %s/%s (%s)\n", f.Name, p.Circuit, format.FmtDuration(time.Since(start)))
		}

		for _, u := range unmatched {
			res.Outcomes = append(res.Outcomes, Outcome{Folder: u.Folder, Circuit: u.Circuit, Err: missingBaselineMsg})
			d.progress("  FAIL %s/%s: %s\n", u.Folder, u.Circuit, missingBaselineMsg)
		}
	}
	return res
}

func (d *Driver) progress(msg string, args ...any) {
	w := d.Progress
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, msg, args...)
}
