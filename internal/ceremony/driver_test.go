package ceremony

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"zkceremony/internal/verifier"
)

// chainTree builds root/<folder>/<artifact>.zkey for each entry.
func chainTree(t *testing.T, folders map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for folder, circuits := range folders {
		mkdirs(t, root, folder)
		for _, c := range circuits {
			writeFile(t, filepath.Join(root, folder, c+ArtifactExt))
		}
	}
	return root
}

func TestDriver_NothingToVerify(t *testing.T) {
	root := chainTree(t, map[string][]string{"0000_initial": {"circuitA"}})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	d := &Driver{Root: root, Verifier: verifier.Func(func(_, _, _ string) error {
		t.Fatal("verifier must not be called for a baseline-only ceremony")
		return nil
	}), Progress: io.Discard}

	res := d.Run(folders)
	if len(res.Outcomes) != 0 || len(res.Skipped) != 0 {
		t.Errorf("got %+v, want empty result", res)
	}
}

func TestDriver_PartialFailureNeverBlocksLaterFolders(t *testing.T) {
	root := chainTree(t, map[string][]string{
		"0000_initial": {"circuitA"},
		"0001_alice":   {"circuitA"},
		"0002_bob":     {"circuitA"},
	})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	d := &Driver{Root: root, Params: "pot.ptau", Progress: io.Discard,
		Verifier: verifier.Func(func(_, _, current string) error {
			if strings.Contains(current, "0001_alice") {
				return errors.New("invalid contribution")
			}
			return nil
		}),
	}

	res := d.Run(folders)
	if len(res.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2: %+v", len(res.Outcomes), res.Outcomes)
	}
	if res.Outcomes[0].OK || res.Outcomes[0].Err != "invalid contribution" {
		t.Errorf("folder 0001_alice: %+v", res.Outcomes[0])
	}
	if !res.Outcomes[1].OK || res.Outcomes[1].Folder != "0002_bob" {
		t.Errorf("folder 0002_bob must be verified despite the earlier failure: %+v", res.Outcomes[1])
	}
}

func TestDriver_UnmatchedArtifactOutcome(t *testing.T) {
	root := chainTree(t, map[string][]string{
		"0000_initial": {"circuitA"},
		"0001_alice":   {"circuitA", "circuitC"},
	})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	d := &Driver{Root: root, Progress: io.Discard,
		Verifier: verifier.Func(func(_, _, _ string) error { return nil })}
	res := d.Run(folders)

	if len(res.Outcomes) != 2 {
		t.Fatalf("got %d outcomes: %+v", len(res.Outcomes), res.Outcomes)
	}
	var unmatched *Outcome
	for i := range res.Outcomes {
		if res.Outcomes[i].Circuit == "circuitC" {
			unmatched = &res.Outcomes[i]
		}
	}
	if unmatched == nil {
		t.Fatal("no outcome for circuitC")
	}
	if unmatched.OK || unmatched.Err != "missing baseline artifact" {
		t.Errorf("got %+v, want the fixed missing-baseline failure", unmatched)
	}
}

func TestDriver_EmptyFolderSkipsButChainContinues(t *testing.T) {
	root := chainTree(t, map[string][]string{
		"0000_initial": {"circuitA"},
		"0001_alice":   {},
		"0002_bob":     {"circuitA"},
	})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	d := &Driver{Root: root, Progress: io.Discard,
		Verifier: verifier.Func(func(_, _, _ string) error { return nil })}
	res := d.Run(folders)

	if len(res.Skipped) != 1 || res.Skipped[0].Folder != "0001_alice" {
		t.Fatalf("skipped = %+v, want 0001_alice only", res.Skipped)
	}
	if len(res.Outcomes) != 1 || res.Outcomes[0].Folder != "0002_bob" || !res.Outcomes[0].OK {
		t.Errorf("outcomes = %+v, want one pass for 0002_bob", res.Outcomes)
	}
}

func TestDriver_VerifierReceivesPathsInOrder(t *testing.T) {
	root := chainTree(t, map[string][]string{
		"0000_initial": {"circuitA"},
		"0001_alice":   {"circuitA"},
	})
	folders, err := ListContributionFolders(root)
	if err != nil {
		t.Fatal(err)
	}

	var gotBaseline, gotParams, gotCurrent string
	d := &Driver{Root: root, Params: "pot18_final.ptau", Progress: io.Discard,
		Verifier: verifier.Func(func(baseline, params, current string) error {
			gotBaseline, gotParams, gotCurrent = baseline, params, current
			return nil
		}),
	}
	d.Run(folders)

	if gotBaseline != filepath.Join(root, "0000_initial", "circuitA.zkey") {
		t.Errorf("baseline = %q", gotBaseline)
	}
	if gotParams != "pot18_final.ptau" {
		t.Errorf("params = %q", gotParams)
	}
	if gotCurrent != filepath.Join(root, "0001_alice", "circuitA.zkey") {
		t.Errorf("current = %q", gotCurrent)
	}
}
