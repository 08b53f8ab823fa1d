package domain

import "time"

// ArchivedManifest is a manifest read from inside a zip archive.
type ArchivedManifest struct {
	Entry    string // path of the manifest inside the archive
	Manifest ModManifest
}

// ZipArchiveCandidate is a downloaded archive that contains at least one mod.
type ZipArchiveCandidate struct {
	Path      string
	ModTime   time.Time
	Manifests []ArchivedManifest
}
