package ceremony

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// File extensions recognized in a ceremony tree.
const (
	ArtifactExt = ".zkey" // per-circuit parameter file, one per contribution
	CircuitExt  = ".r1cs" // circuit description, baseline folder only
	ParamsExt   = ".ptau" // shared powers-of-tau file
)

// folderPattern is the contribution folder naming convention: a fixed-width
// zero-padded ordinal, an underscore, and a free-form label. The fixed width
// makes lexical order equal to numeric order.
var folderPattern = regexp.MustCompile(`^\d{4}_.+$`)

// Folder is one contribution directory under the ceremony root. Ordinal is
// parsed from the name's four-digit prefix; the lexically-first folder
// (ordinal zero by convention) is the baseline.
type Folder struct {
	Name    string
	Ordinal int
}

// MalformedFolderNameError reports a directory that starts with a digit but
// does not follow the NNNN_label convention. Such names would sort
// unpredictably against well-formed ones, so they are an error rather than
// being silently skipped.
type MalformedFolderNameError struct {
	Name string
}

func (e *MalformedFolderNameError) Error() string {
	return fmt.Sprintf("malformed contribution folder name %q (want NNNN_label, e.g. 0001_alice)", e.Name)
}

// ListContributionFolders returns the contribution folders directly under
// root, sorted by ordinal then name. Directories unrelated to the ceremony
// (not starting with a digit) are ignored; an empty result is not an error.
func ListContributionFolders(root string) ([]Folder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list contribution folders: %w", err)
	}

	var folders []Folder
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if folderPattern.MatchString(name) {
			ord, _ := strconv.Atoi(name[:4])
			folders = append(folders, Folder{Name: name, Ordinal: ord})
			continue
		}
		if name[0] >= '0' && name[0] <= '9' {
			return nil, &MalformedFolderNameError{Name: name}
		}
	}

	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Ordinal != folders[j].Ordinal {
			return folders[i].Ordinal < folders[j].Ordinal
		}
		return folders[i].Name < folders[j].Name
	})
	return folders, nil
}

// ListArtifacts returns the artifact file names in dir. The order is the
// directory listing's; callers that need determinism must sort.
func ListArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ArtifactExt) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// FindParamsFile locates the shared powers-of-tau file directly under root.
// Exactly one is expected; zero or several is a setup error.
func FindParamsFile(root string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*"+ParamsExt))
	if err != nil {
		return "", fmt.Errorf("find params file: %w", err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s file found in %s", ParamsExt, root)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("found %d %s files in %s, want exactly one", len(matches), ParamsExt, root)
	}
}
