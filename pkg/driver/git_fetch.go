package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FetchGitDependency resolves dep's pinned revision against a single working
// clone kept under cacheDir/<name>, reusing it across calls instead of
// probing a version-named directory tree. The clone is created or fetched
// first, so the revision can be resolved; lock is consulted after that: if
// it already has an entry for dep.Name whose Resolved commit matches what
// the revision resolves to right now, the existing checkout is handed back
// without a new checkout. Otherwise the worktree is checked out at the new
// commit, and a fresh LockedDependency is
// returned for the caller to Put once it has computed a Digest via
// DigestSnapshot.
func FetchGitDependency(cacheDir string, lock *Lockfile, dep DependencySpec) (*LockedDependency, string, error) {
	url := strings.TrimSpace(dep.Git)
	if url == "" {
		return nil, "", fmt.Errorf("dependency %q: git URL required", dep.Name)
	}
	name := sanitizeSegment(dep.Name)
	checkoutDir := filepath.Join(cacheDir, name)

	revision, err := gitRevisionFromSpec(dep)
	if err != nil {
		return nil, "", err
	}

	repo, err := openOrCloneRepo(checkoutDir, url)
	if err != nil {
		return nil, "", fmt.Errorf("dependency %q: %w", dep.Name, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return nil, "", fmt.Errorf("dependency %q: resolve %s: %w", dep.Name, revision, err)
	}
	commit := hash.String()

	if entry, ok := lock.Find(name); ok && entry.Resolved == commit {
		return entry, checkoutDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return nil, "", fmt.Errorf("dependency %q: checkout %s: %w", dep.Name, commit, err)
	}

	return &LockedDependency{
		Name:     name,
		Source:   fmt.Sprintf("git+%s", url),
		Resolved: commit,
	}, checkoutDir, nil
}

// openOrCloneRepo returns the repository checked out at dir, cloning it from
// url if dir holds no repository yet, or fetching the remote's refs if it
// already does. A stale local clone never forces a reclone: fetch failures
// other than "already up to date" are returned as an error, with no
// repository.
func openOrCloneRepo(dir, url string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err == nil {
		if remote, rerr := repo.Remote("origin"); rerr == nil {
			ferr := remote.Fetch(&git.FetchOptions{Force: true})
			if ferr != nil && ferr != git.NoErrAlreadyUpToDate {
				return nil, fmt.Errorf("fetch %s: %w", url, ferr)
			}
		}
		return repo, nil
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, err
	}
	repo, err = git.PlainClone(dir, false, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", url, err)
	}
	return repo, nil
}

// gitRevisionFromSpec picks the single ref a dependency spec is allowed to
// name: an exact rev, a tag, or a branch, in that priority order.
func gitRevisionFromSpec(dep DependencySpec) (plumbing.Revision, error) {
	switch {
	case strings.TrimSpace(dep.Rev) != "":
		return plumbing.Revision(strings.TrimSpace(dep.Rev)), nil
	case strings.TrimSpace(dep.Tag) != "":
		return plumbing.Revision("refs/tags/" + strings.TrimSpace(dep.Tag)), nil
	case strings.TrimSpace(dep.Branch) != "":
		return plumbing.Revision("refs/heads/" + strings.TrimSpace(dep.Branch)), nil
	default:
		return "", fmt.Errorf("git dependencies require rev, tag, or branch")
	}
}
