// Package repourl extracts repository coordinates from user-submitted
// GitHub URLs. Parsing is deliberately forgiving: any string containing a
// github.com/<owner>/<repo> segment is accepted, everything else yields a
// non-match rather than an error.
package repourl

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// UnknownHandle is returned by InferHandle when the URL does not follow the
// classroom fork naming convention. Callers must never persist it.
const UnknownHandle = "unknown"

var (
	repoPattern   = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)
	handlePattern = regexp.MustCompile(`level-\d+-(.*?)(?:-\d+)?(?:\.git)?$`)
)

// Ref identifies a repository on the provider.
type Ref struct {
	Owner string
	Name  string
}

// Parse extracts the owner and repository name from a free-form URL,
// stripping a trailing ".git". The second return value reports whether the
// URL matched at all.
func Parse(rawURL string) (*Ref, bool) {
	m := repoPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, false
	}
	name := strings.TrimSuffix(m[2], ".git")
	if name == "" {
		return nil, false
	}
	return &Ref{Owner: m[1], Name: name}, true
}

// InferHandle guesses the contributor handle from a classroom fork URL of
// the form ".../level-<n>-<handle>" with an optional numeric suffix. The
// result is slug-normalized; UnknownHandle is returned when no convention
// match is found.
func InferHandle(rawURL string) string {
	m := handlePattern.FindStringSubmatch(rawURL)
	if m == nil || m[1] == "" {
		return UnknownHandle
	}
	return slug.Make(m[1])
}
