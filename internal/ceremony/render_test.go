package ceremony

import (
	"io"
	"strings"
	"testing"

	"zkceremony/internal/format"
	"zkceremony/internal/verifier"
)

func TestRenderRun_AllPass(t *testing.T) {
	root := chainTree(t, map[string][]string{
		"0000_initial": {"circuitA", "circuitB"},
		"0001_alice":   {"circuitA", "circuitB"},
	})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	d := &Driver{Root: root, Progress: io.Discard,
		Verifier: verifier.Func(func(_, _, _ string) error { return nil })}
	res := d.Run(folders)

	report := BuildReport(res.Outcomes)
	if report.Total != 2 || report.Passed != 2 || report.Failed != 0 {
		t.Fatalf("totals = %d/%d/%d, want 2/2/0", report.Total, report.Passed, report.Failed)
	}

	out := RenderRun(res, format.ASCII)
	if !strings.Contains(out, "0001_alice") {
		t.Errorf("missing contribution row:\n%s", out)
	}
	if strings.Count(out, "PASS") < 2 {
		t.Errorf("want two PASS cells:\n%s", out)
	}
	if !strings.Contains(out, "RESULT: PASS (2 verified, 2 passed, 0 failed)") {
		t.Errorf("missing result line:\n%s", out)
	}
}

func TestRenderRun_MissingCircuitRendersNA(t *testing.T) {
	root := chainTree(t, map[string][]string{
		"0000_initial": {"circuitA", "circuitB"},
		"0001_alice":   {"circuitA", "circuitB"},
		"0002_bob":     {"circuitA"},
	})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	d := &Driver{Root: root, Progress: io.Discard,
		Verifier: verifier.Func(func(_, _, _ string) error { return nil })}
	res := d.Run(folders)

	out := RenderRun(res, format.ASCII)
	if !strings.Contains(out, "N/A") {
		t.Errorf("0002_bob's circuitB cell must be N/A, not FAIL:\n%s", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("no verification failed, FAIL must not appear:\n%s", out)
	}
}

func TestRenderRun_NothingToVerify(t *testing.T) {
	res := &RunResult{}
	out := RenderRun(res, format.ASCII)
	if !strings.Contains(out, "Nothing to verify") {
		t.Errorf("missing nothing-to-verify notice:\n%s", out)
	}
}

func TestRenderRun_FailureDetailAndSkips(t *testing.T) {
	res := &RunResult{
		Outcomes: []Outcome{
			{Folder: "0001_alice", Circuit: "circuitA", OK: true},
			{Folder: "0002_bob", Circuit: "circuitA", Err: "invalid contribution"},
		},
		Skipped: []SkippedFolder{{Folder: "0003_carol", Reason: "no artifact files found"}},
	}
	out := RenderRun(res, format.Markdown)

	if !strings.Contains(out, "0002_bob/circuitA: invalid contribution") {
		t.Errorf("missing failure detail:\n%s", out)
	}
	if !strings.Contains(out, "0003_carol: no artifact files found") {
		t.Errorf("missing skipped folder:\n%s", out)
	}
	if !strings.Contains(out, "RESULT: FAIL") {
		t.Errorf("missing FAIL result:\n%s", out)
	}
}
