package ceremony

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrNoArtifacts is returned when a folder on either side of a match has no
// artifact files at all. The whole folder is then skipped, which is a
// different failure mode from a single artifact missing its counterpart.
var ErrNoArtifacts = errors.New("no artifact files found")

// Pair aligns one circuit's artifact in a contribution folder with the
// same-named artifact in the baseline folder.
type Pair struct {
	Circuit      string
	CurrentPath  string
	BaselinePath string
}

// Unmatched marks an artifact in a contribution folder that has no
// same-named counterpart in the baseline.
type Unmatched struct {
	Circuit string
	Folder  string
}

// MatchArtifacts pairs every artifact in the current folder with the
// baseline artifact of the same file name. The match policy is exact
// file-name equality, so both folders must name each circuit's artifact
// identically. Artifacts without a counterpart are reported as Unmatched;
// baseline artifacts absent from the current folder produce nothing, since
// the current folder drives the iteration.
func MatchArtifacts(root, current, baseline string) ([]Pair, []Unmatched, error) {
	curNames, err := ListArtifacts(filepath.Join(root, current))
	if err != nil {
		return nil, nil, err
	}
	if len(curNames) == 0 {
		return nil, nil, fmt.Errorf("folder %s: %w", current, ErrNoArtifacts)
	}

	baseNames, err := ListArtifacts(filepath.Join(root, baseline))
	if err != nil {
		return nil, nil, err
	}
	if len(baseNames) == 0 {
		return nil, nil, fmt.Errorf("baseline folder %s: %w", baseline, ErrNoArtifacts)
	}

	inBaseline := make(map[string]bool, len(baseNames))
	for _, name := range baseNames {
		inBaseline[name] = true
	}

	sort.Strings(curNames)

	var pairs []Pair
	var unmatched []Unmatched
	for _, name := range curNames {
		circuit := name[:len(name)-len(ArtifactExt)]
		if !inBaseline[name] {
			unmatched = append(unmatched, Unmatched{Circuit: circuit, Folder: current})
			continue
		}
		pairs = append(pairs, Pair{
			Circuit:      circuit,
			CurrentPath:  filepath.Join(root, current, name),
			BaselinePath: filepath.Join(root, baseline, name),
		})
	}
	return pairs, unmatched, nil
}
