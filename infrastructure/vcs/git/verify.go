package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// CrossCheck resolves the branch display name twice: once with the
// file-based resolver and once through go-git's view of HEAD. Used by the
// doctor command to sanity-check resolution against an independent
// implementation.
func CrossCheck(dir string) (resolved, reference string, err error) {
	gitDir, ok := FindRepositoryRoot(dir)
	if !ok {
		return "", "", fmt.Errorf("no git repository found from %q", dir)
	}
	resolved = ResolveDisplayName(gitDir)

	repo, openErr := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if openErr != nil {
		return resolved, "", fmt.Errorf("go-git failed to open repository: %w", openErr)
	}

	head, headErr := repo.Head()
	if headErr != nil {
		return resolved, "", fmt.Errorf("go-git failed to resolve HEAD: %w", headErr)
	}

	if head.Name().IsBranch() {
		reference = head.Name().Short()
	} else {
		reference = head.Hash().String()
	}
	return resolved, reference, nil
}
