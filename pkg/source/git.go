package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"pyrs/translator-go/pkg/logger"
)

// GitFetcher reads files from a checkout of URL at Rev. The checkout is
// cloned on first use and reused for later fetches. Rev may be a commit, tag
// or branch; empty means the remote HEAD.
type GitFetcher struct {
	URL      string
	Rev      string
	CacheDir string

	mu      sync.Mutex
	dir     string
	commit  string
	tempDir string
}

// NewGitFetcher returns a fetcher that clones into cacheDir. An empty
// cacheDir uses a temporary directory removed by Close.
func NewGitFetcher(url, rev, cacheDir string) *GitFetcher {
	return &GitFetcher{
		URL:      strings.TrimSpace(url),
		Rev:      strings.TrimSpace(rev),
		CacheDir: cacheDir,
	}
}

func (g *GitFetcher) Fetch(ctx context.Context, path string) (*File, error) {
	if g == nil {
		return nil, errors.New("source: git fetcher unavailable")
	}
	rel := filepath.Clean(filepath.FromSlash(path))
	if path == "" || !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("source: %q is not a path inside the repository", path)
	}
	dir, commit, err := g.checkout(ctx)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s@%s:%s", g.URL, shortHash(commit), filepath.ToSlash(rel))
	logger.LogFetch("git", name)
	return readFile(name, filepath.Join(dir, rel))
}

// Commit returns the resolved commit hash, cloning if needed.
func (g *GitFetcher) Commit(ctx context.Context) (string, error) {
	_, commit, err := g.checkout(ctx)
	return commit, err
}

// Close removes the temporary checkout, if one was created.
func (g *GitFetcher) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(g.tempDir)
	g.tempDir = ""
	g.dir = ""
	g.commit = ""
	return err
}

func (g *GitFetcher) checkout(ctx context.Context) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dir != "" {
		return g.dir, g.commit, nil
	}
	if g.URL == "" {
		return "", "", errors.New("source: git URL required")
	}
	base := g.CacheDir
	if base == "" {
		tmp, err := os.MkdirTemp("", "pyrs-git-*")
		if err != nil {
			return "", "", err
		}
		g.tempDir = tmp
		base = tmp
	}
	base = filepath.Join(base, sanitizePathSegment(g.URL))
	dir, commit, err := ensureGitCheckout(ctx, base, g.URL, g.Rev)
	if err != nil {
		return "", "", err
	}
	g.dir = dir
	g.commit = commit
	return dir, commit, nil
}

// ensureGitCheckout clones url into a scratch directory under baseDir,
// checks out rev and renames the result to a directory named after the
// pinned version. An existing checkout for an explicit rev is reused.
func ensureGitCheckout(ctx context.Context, baseDir, url, rev string) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	if rev != "" {
		if dir, commit, ok := cachedCheckout(baseDir, rev); ok {
			return dir, commit, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("source: git clone %s: %w", url, err)
	}
	hash, err := resolveRevision(repo, rev)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("source: git checkout %s: %w", rev, err)
	}
	commit := hash.String()
	if err := os.WriteFile(filepath.Join(tmpDir, ".git", "pyrs-commit"), []byte(commit+"\n"), 0o644); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}

	version := pinnedVersion(rev, commit)
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
	} else if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if rev != "" {
		marker := filepath.Join(baseDir, sanitizePathSegment(rev)+".rev")
		if err := os.WriteFile(marker, []byte(filepath.Base(targetDir)+"\n"), 0o644); err != nil {
			return "", "", err
		}
	}
	return targetDir, commit, nil
}

// cachedCheckout finds the checkout an earlier run made for rev. Branch and
// tag checkouts are stored as rev@commit, so a marker file named after rev
// records the directory.
func cachedCheckout(baseDir, rev string) (string, string, bool) {
	name := sanitizePathSegment(rev)
	if data, err := os.ReadFile(filepath.Join(baseDir, name+".rev")); err == nil {
		name = strings.TrimSpace(string(data))
	}
	if name == "" || !filepath.IsLocal(name) {
		return "", "", false
	}
	dir := filepath.Join(baseDir, name)
	commit, err := os.ReadFile(filepath.Join(dir, ".git", "pyrs-commit"))
	if err != nil {
		return "", "", false
	}
	return dir, strings.TrimSpace(string(commit)), true
}

// resolveRevision accepts anything go-git resolves locally plus branch
// names that only exist as remote-tracking refs after a clone.
func resolveRevision(repo *git.Repository, rev string) (*plumbing.Hash, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		return hash, nil
	}
	if remote, remoteErr := repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + rev)); remoteErr == nil {
		return remote, nil
	}
	return nil, fmt.Errorf("source: resolve revision %s: %w", rev, err)
}

func pinnedVersion(descriptor, commit string) string {
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func shortHash(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
