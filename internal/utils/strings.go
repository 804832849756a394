package utils

import (
	"net/url"
	"path"
	"strings"
)

// readPathSegments are the path segments a share link puts before the slug.
// Current servers build https://host/secret/<slug>, older ones https://host/r/<slug>.
var readPathSegments = map[string]bool{"secret": true, "r": true}

// SlugFromLink returns the slug referenced by a share link such as
// https://host/secret/<slug>, or the input unchanged when it is already a bare
// slug. A link carrying a slug query parameter is also accepted.
func SlugFromLink(link string) string {
	link = strings.TrimSpace(link)
	if !strings.Contains(link, "/") {
		return link
	}

	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if slug := u.Query().Get("slug"); slug != "" {
		return slug
	}

	p := strings.TrimSuffix(u.Path, "/")
	if !readPathSegments[path.Base(path.Dir(p))] {
		return ""
	}
	return path.Base(p)
}

// NormalizeNewlines rewrites every line break as a single LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
