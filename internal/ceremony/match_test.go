package ceremony

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchArtifacts_Asymmetry(t *testing.T) {
	// Baseline has {A, B}, current has {A, C}: A is attempted, C is an
	// unmatched failure, and B (baseline-only) produces nothing because
	// the current folder drives the iteration.
	root := t.TempDir()
	mkdirs(t, root, "0000_initial", "0001_alice")
	writeFile(t, filepath.Join(root, "0000_initial", "circuitA.zkey"))
	writeFile(t, filepath.Join(root, "0000_initial", "circuitB.zkey"))
	writeFile(t, filepath.Join(root, "0001_alice", "circuitA.zkey"))
	writeFile(t, filepath.Join(root, "0001_alice", "circuitC.zkey"))

	pairs, unmatched, err := MatchArtifacts(root, "0001_alice", "0000_initial")
	if err != nil {
		t.Fatal(err)
	}

	wantPairs := []Pair{{
		Circuit:      "circuitA",
		CurrentPath:  filepath.Join(root, "0001_alice", "circuitA.zkey"),
		BaselinePath: filepath.Join(root, "0000_initial", "circuitA.zkey"),
	}}
	if diff := cmp.Diff(wantPairs, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}

	wantUnmatched := []Unmatched{{Circuit: "circuitC", Folder: "0001_alice"}}
	if diff := cmp.Diff(wantUnmatched, unmatched); diff != "" {
		t.Errorf("unmatched mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchArtifacts_EmptyCurrentShortCircuits(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "0000_initial", "0001_alice")
	writeFile(t, filepath.Join(root, "0000_initial", "circuitA.zkey"))

	_, _, err := MatchArtifacts(root, "0001_alice", "0000_initial")
	if !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("got %v, want ErrNoArtifacts", err)
	}
}

func TestMatchArtifacts_EmptyBaselineShortCircuits(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "0000_initial", "0001_alice")
	writeFile(t, filepath.Join(root, "0001_alice", "circuitA.zkey"))

	_, _, err := MatchArtifacts(root, "0001_alice", "0000_initial")
	if !errors.Is(err, ErrNoArtifacts) {
		t.Fatalf("got %v, want ErrNoArtifacts", err)
	}
}
