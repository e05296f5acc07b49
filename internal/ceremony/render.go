package ceremony

import (
	"fmt"
	"strings"

	"zkceremony/internal/format"
)

// RenderRun produces the human-readable verification summary: the
// folder-by-circuit grid, totals, failure detail, and any skipped folders.
func RenderRun(res *RunResult, mode format.Mode) string {
	report := BuildReport(res.Outcomes)

	var b strings.Builder
	b.WriteString("=== Contribution Chain Verification ===\n\n")

	if report.Total > 0 {
		tb := format.NewTable(mode)
		header := append([]string{"contribution"}, report.Circuits...)
		tb.Header(header...)
		for _, folder := range report.Folders {
			row := make([]any, 0, len(report.Circuits)+1)
			row = append(row, folder)
			for _, circuit := range report.Circuits {
				row = append(row, report.CellFor(folder, circuit).String())
			}
			tb.Row(row...)
		}
		b.WriteString(tb.String())
		b.WriteString("\n\n")
	}

	result := "PASS"
	if report.Failed > 0 {
		result = "FAIL"
	}
	if report.Total == 0 && len(res.Skipped) == 0 {
		b.WriteString("Nothing to verify: the ceremony has no contributions beyond the baseline.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("RESULT: %s (%d verified, %d passed, %d failed)\n",
		result, report.Total, report.Passed, report.Failed))

	if len(report.Failures) > 0 {
		b.WriteString("\n--- Failures ---\n")
		for _, o := range report.Failures {
			b.WriteString(fmt.Sprintf("%s/%s: %s\n", o.Folder, o.Circuit, format.Truncate(o.Err, 120)))
		}
	}

	if len(res.Skipped) > 0 {
		b.WriteString("\n--- Skipped folders ---\n")
		for _, s := range res.Skipped {
			b.WriteString(fmt.Sprintf("%s: %s\n", s.Folder, s.Reason))
		}
	}

	return b.String()
}
