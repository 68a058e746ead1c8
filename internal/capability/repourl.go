// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"
	git "github.com/go-git/go-git/v5"
)

var (
	// readmeTargetRe matches a documentation-hosting URL in an rst
	// :target: directive line.
	readmeTargetRe = regexp.MustCompile(`^\s+:target:\s+(http\S+(docs\.circuitpython|readthedocs)\S+)\s*`)
	// angleURLRe matches any angle-bracket-delimited URL.
	angleURLRe = regexp.MustCompile(`<(http[^>]+)>`)
)

// repositoryURL resolves the origin URL for a frozen library directory,
// caching per directory for the run. Two workers may resolve the same
// directory concurrently; the resolution is idempotent, so the lost update
// is harmless.
func (e *Extractor) repositoryURL(dir string) string {
	e.mu.Lock()
	url, ok := e.repoURLs[dir]
	e.mu.Unlock()
	if ok {
		return url
	}

	url = resolveRepositoryURL(dir)

	e.mu.Lock()
	e.repoURLs[dir] = url
	e.mu.Unlock()
	return url
}

// resolveRepositoryURL scans the directory's README (or its parent's) for
// a documentation or repository URL, falling back to the directory's git
// origin remote. Returns "" when nothing resolves.
func resolveRepositoryURL(dir string) string {
	for _, readme := range []string{
		filepath.Join(dir, "README.rst"),
		filepath.Join(filepath.Dir(dir), "README.rst"),
	} {
		if url, ok := scanReadme(readme); ok {
			return url
		}
	}
	return originRemoteURL(dir)
}

// scanReadme looks for the first URL match in a README, directive lines
// first, then any angle-bracket URL. The second return is false when the
// file is absent or holds no match.
func scanReadme(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if m := readmeTargetRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
		if m := angleURLRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// originRemoteURL asks the enclosing git repository for its origin remote.
func originRemoteURL(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		log.Debug("no repository for frozen directory", "dir", dir, "err", err)
		return ""
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
