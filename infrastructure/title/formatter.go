package title

import "github.com/rios0rios0/branchwatch/config"

// Formatter splices a branch name into a base title at a configurable
// position with a configurable separator.
type Formatter struct {
	placement string
	separator string
}

// NewFormatter creates a formatter. Placement is one of
// config.PlacementPrefix or config.PlacementSuffix.
func NewFormatter(placement, separator string) Formatter {
	return Formatter{placement: placement, separator: separator}
}

// Splice combines the base title and the branch name. An empty branch
// leaves the base untouched; an empty base yields the branch alone.
func (f Formatter) Splice(base, branch string) string {
	if branch == "" {
		return base
	}
	if base == "" {
		return branch
	}
	if f.placement == config.PlacementPrefix {
		return branch + f.separator + base
	}
	return base + f.separator + branch
}
