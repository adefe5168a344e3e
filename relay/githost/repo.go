package githost

import (
	"path"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/google/go-github/v72/github"
)

// ErrInvalidRepoURL is returned for repository references that are not owner/name pairs.
var ErrInvalidRepoURL = errors.New("invalid repository url")

// RepoRef identifies a repository on the code host.
type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

var repoURLPrefixes = []string{
	"https://github.com/",
	"http://github.com/",
	"https://www.github.com/",
	"github.com/",
}

// ParseRepoURL turns https://github.com/{owner}/{repo} into a RepoRef. A trailing slash or
// .git suffix is accepted, so is a bare owner/repo.
func ParseRepoURL(raw string) (RepoRef, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")
	for _, prefix := range repoURLPrefixes {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, errors.Wrapf(ErrInvalidRepoURL, "%q", raw)
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}, nil
}

// SourceExtensions is the allow-list of file extensions offered for test generation.
var SourceExtensions = map[string]bool{
	".js":   true,
	".jsx":  true,
	".ts":   true,
	".tsx":  true,
	".vue":  true,
	".py":   true,
	".java": true,
	".cpp":  true,
	".c":    true,
	".cs":   true,
	".php":  true,
	".go":   true,
	".rb":   true,
}

// FilterSourceFiles keeps blob entries whose extension is in SourceExtensions, in tree order.
func FilterSourceFiles(entries []*github.TreeEntry) []*github.TreeEntry {
	files := make([]*github.TreeEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.GetType() != "blob" {
			continue
		}
		if !SourceExtensions[path.Ext(entry.GetPath())] {
			continue
		}
		files = append(files, entry)
	}
	return files
}
