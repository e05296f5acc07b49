package ceremony

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildReport_TotalsInvariant(t *testing.T) {
	lists := [][]Outcome{
		nil,
		{{Folder: "0001_alice", Circuit: "circuitA", OK: true}},
		{
			{Folder: "0001_alice", Circuit: "circuitA", OK: true},
			{Folder: "0001_alice", Circuit: "circuitB", Err: "bad"},
			{Folder: "0002_bob", Circuit: "circuitA", Err: "bad"},
		},
	}
	for _, outcomes := range lists {
		r := BuildReport(outcomes)
		if r.Total != r.Passed+r.Failed {
			t.Errorf("total %d != passed %d + failed %d", r.Total, r.Passed, r.Failed)
		}
		if r.Total != len(outcomes) {
			t.Errorf("total %d != len(outcomes) %d", r.Total, len(outcomes))
		}
		if len(r.Failures) != r.Failed {
			t.Errorf("failures %d != failed %d", len(r.Failures), r.Failed)
		}
	}
}

func TestBuildReport_Pure(t *testing.T) {
	outcomes := []Outcome{
		{Folder: "0002_bob", Circuit: "circuitB", Err: "bad"},
		{Folder: "0001_alice", Circuit: "circuitA", OK: true},
	}
	first := BuildReport(outcomes)
	second := BuildReport(outcomes)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same input produced different reports (-first +second):\n%s", diff)
	}
}

func TestBuildReport_RowAndColumnOrder(t *testing.T) {
	outcomes := []Outcome{
		{Folder: "0002_bob", Circuit: "circuitB", OK: true},
		{Folder: "0001_alice", Circuit: "circuitA", OK: true},
		{Folder: "0002_bob", Circuit: "circuitA", OK: true},
	}
	r := BuildReport(outcomes)

	// Rows keep first-occurrence order, columns are lexical.
	if diff := cmp.Diff([]string{"0002_bob", "0001_alice"}, r.Folders); diff != "" {
		t.Errorf("folder rows (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"circuitA", "circuitB"}, r.Circuits); diff != "" {
		t.Errorf("circuit columns (-want +got):\n%s", diff)
	}
}

func TestBuildReport_NotApplicableCell(t *testing.T) {
	// 0002_bob never attempted circuitB, so its cell is N/A, not FAIL.
	outcomes := []Outcome{
		{Folder: "0001_alice", Circuit: "circuitA", OK: true},
		{Folder: "0001_alice", Circuit: "circuitB", OK: true},
		{Folder: "0002_bob", Circuit: "circuitA", OK: true},
	}
	r := BuildReport(outcomes)

	if got := r.CellFor("0002_bob", "circuitB"); got != CellNA {
		t.Errorf("cell = %v, want N/A", got)
	}
	if got := r.CellFor("0002_bob", "circuitA"); got != CellPass {
		t.Errorf("cell = %v, want PASS", got)
	}
}

func TestCellString(t *testing.T) {
	cases := map[Cell]string{CellNA: "N/A", CellPass: "PASS", CellFail: "FAIL"}
	for cell, want := range cases {
		if got := cell.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", cell, got, want)
		}
	}
}
