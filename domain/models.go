package domain

import "regexp"

// hashPattern matches a full commit hash as stored in HEAD or a loose ref file.
var hashPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// RepositoryLocation identifies a discovered version-control metadata directory.
type RepositoryLocation struct {
	GitDir  string // Absolute path of the ".git" directory
	WorkDir string // Directory the discovery walk started from
}

// HeadReference is the raw trimmed content of a HEAD file at a point in time.
// It is either symbolic ("ref: refs/heads/main") or a bare commit hash.
type HeadReference string

// IsHash reports whether the reference is a full 40-character commit hash,
// i.e. a detached HEAD that needs secondary resolution.
func (h HeadReference) IsHash() bool {
	return hashPattern.MatchString(string(h))
}

// RunConfig describes a launchable run target of a workspace.
type RunConfig struct {
	Name    string   // Target name as configured
	Path    string   // Path to the executable
	Args    []string // Arguments passed verbatim
	WorkDir string   // Working directory; empty means the caller's
}
