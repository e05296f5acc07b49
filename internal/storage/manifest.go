package storage

import "sort"

// Manifest is the bucket index: every ceremony file the remote holds, with
// its digest. It lives at <bucket>/manifest.json and is the single source
// of truth for what a fully-synced local tree contains.
type Manifest struct {
	// Params is the shared powers-of-tau file, stored at the bucket root.
	Params *File `json:"params,omitempty"`

	// Folders are the contribution folders, each with its files.
	Folders []Folder `json:"folders"`
}

// Folder is one remote contribution folder.
type Folder struct {
	Name  string `json:"name"`
	Files []File `json:"files"`
}

// File is one remote object. SHA256 is the lowercase hex digest used to
// cross-check local copies before skipping a download.
type File struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

// SortedFolders returns the manifest's folders sorted by name. The
// lexically-first folder is the ceremony baseline.
func (m *Manifest) SortedFolders() []Folder {
	folders := append([]Folder{}, m.Folders...)
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders
}
