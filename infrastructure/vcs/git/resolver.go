package git

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/branchwatch/domain"
)

const (
	headFileName   = "HEAD"
	packedRefsName = "packed-refs"

	// HEAD may be mid-rewrite by a concurrent git client; reads are
	// retried a few times before giving up.
	readAttempts   = 5
	readRetryDelay = 10 * time.Millisecond

	// A packed-refs entry is at least a 40-char hash, a space and a
	// two-char ref path.
	minPackedLineLen = 43

	hashPrefixLen = 10
)

// symbolicRefPattern extracts the branch name from a symbolic HEAD
// reference such as "ref: refs/heads/main".
var symbolicRefPattern = regexp.MustCompile(`refs/(?:heads/|remotes/)?(.+)$`)

// FindRepositoryRoot walks upward from startDir (inclusive) through its
// parents until it finds a directory containing .git/HEAD. It returns the
// path of the .git directory, or false when the walk reaches the
// filesystem root without a match. An empty startDir is rejected without
// touching the filesystem.
func FindRepositoryRoot(startDir string) (string, bool) {
	if startDir == "" {
		return "", false
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		gitDir := filepath.Join(dir, ".git")
		if _, statErr := os.Stat(filepath.Join(gitDir, headFileName)); statErr == nil {
			return gitDir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolveDisplayName derives the human-readable branch name for the
// repository whose .git directory is gitDir. A symbolic HEAD yields the
// branch name directly; a detached HEAD is resolved through packed-refs,
// then the loose refs tree, and finally falls back to a truncated hash.
// An unreadable HEAD yields the empty string.
func ResolveDisplayName(gitDir string) string {
	head, ok := readHead(gitDir)
	if !ok || head == "" {
		return ""
	}

	if m := symbolicRefPattern.FindStringSubmatch(string(head)); m != nil {
		return m[1]
	}

	if head.IsHash() {
		hash := strings.ToLower(string(head))
		if name, found := lookupPackedRefs(gitDir, hash); found {
			return name
		}
		if name, found := scanLooseRefs(gitDir, hash); found {
			return name
		}
	}

	return truncatedHash(string(head))
}

// readHead reads and trims the HEAD file, retrying transient failures.
func readHead(gitDir string) (domain.HeadReference, bool) {
	path := filepath.Join(gitDir, headFileName)

	var lastErr error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(readRetryDelay)
		}

		data, err := os.ReadFile(path)
		if err == nil {
			return domain.HeadReference(strings.TrimSpace(string(data))), true
		}
		lastErr = err
	}

	logger.Debugf("Failed to read %s after %d attempts: %v", path, readAttempts, lastErr)
	return "", false
}

// refPriority orders packed-refs candidates pointing at the same hash:
// local heads win over remotes, remotes over tags, tags over anything else.
func refPriority(refPath string) int {
	switch {
	case strings.HasPrefix(refPath, "refs/heads/"):
		return 0
	case strings.HasPrefix(refPath, "refs/remotes/"):
		return 1
	case strings.HasPrefix(refPath, "refs/tags/"):
		return 2
	default:
		return 3
	}
}

// lookupPackedRefs scans the packed-refs file for entries pointing at hash.
// Malformed lines are skipped. Among multiple matches the best candidate
// wins by priority, then by shortest path, keeping the first encountered on
// a full tie.
func lookupPackedRefs(gitDir, hash string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(gitDir, packedRefsName))
	if err != nil {
		return "", false
	}

	best := ""
	bestPriority := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == '^' || line[0] == '#' || len(line) < minPackedLineLen {
			continue
		}

		sep := strings.IndexByte(line, ' ')
		if sep < 0 {
			continue
		}

		lineHash, refPath := strings.ToLower(line[:sep]), line[sep+1:]
		if lineHash != hash {
			continue
		}

		prio := refPriority(refPath)
		if best == "" || prio < bestPriority ||
			(prio == bestPriority && len(refPath) < len(best)) {
			best = refPath
			bestPriority = prio
		}
	}

	if best == "" {
		return "", false
	}
	return renderPackedRef(best), true
}

// renderPackedRef strips the refs/ namespace from a packed ref path.
// A local head renders bare; everything else renders parenthesized.
func renderPackedRef(refPath string) string {
	name := strings.TrimPrefix(refPath, "refs/")
	if rest, isHead := strings.CutPrefix(name, "heads/"); isHead {
		return rest
	}
	name = strings.TrimPrefix(name, "remotes/")
	return "(" + name + ")"
}

// scanLooseRefs walks the loose refs tree for a file whose content is the
// target hash. The first match in enumeration order wins.
func scanLooseRefs(gitDir, hash string) (string, bool) {
	refsDir := filepath.Join(gitDir, "refs")

	found := ""
	_ = filepath.WalkDir(refsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		if strings.ToLower(strings.TrimSpace(string(data))) != hash {
			return nil
		}

		rel, relErr := filepath.Rel(refsDir, path)
		if relErr != nil {
			return nil
		}
		found = filepath.ToSlash(rel)
		return fs.SkipAll
	})

	if found == "" {
		return "", false
	}

	name := strings.TrimPrefix(found, "heads/")
	name = strings.TrimPrefix(name, "remotes/")
	return "(" + name + ")", true
}

// truncatedHash renders unresolvable HEAD content as a shortened marker.
func truncatedHash(content string) string {
	n := hashPrefixLen
	if len(content) < n {
		n = len(content)
	}
	return "(" + content[:n] + "...)"
}

// Resolver is the Git implementation of domain.Resolver.
type Resolver struct{}

// NewResolver creates the Git resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Name returns the resolver identifier.
func (r *Resolver) Name() string {
	return "git"
}

// Probe reports whether dir or one of its parents is a Git repository.
func (r *Resolver) Probe(dir string) bool {
	_, ok := FindRepositoryRoot(dir)
	return ok
}

// NewWatcher builds a live watcher for the repository containing dir.
func (r *Resolver) NewWatcher(dir string) (domain.Watcher, error) {
	return NewWatcher(dir)
}
