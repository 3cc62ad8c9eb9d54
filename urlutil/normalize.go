package urlutil

import (
	"net/url"
	"path"
	"strings"
)

// allowedExtensions are the only non-empty path extensions Normalize accepts.
var allowedExtensions = map[string]bool{
	".htm":  true,
	".html": true,
}

// Normalize canonicalizes rawHref against base (whose host is baseHost) per
// the same-site admission policy: it trims whitespace, strips query and
// fragment unconditionally, rejects non-http(s) schemes and non-page file
// extensions, and requires an absolute candidate's host to be contained by
// baseHost. It reports ok=false whenever the href is inadmissible.
func Normalize(base *url.URL, baseHost Host, rawHref string) (result *url.URL, ok bool) {
	href := strings.TrimSpace(rawHref)

	candidate, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	candidate.RawQuery = ""
	candidate.Fragment = ""
	candidate.RawFragment = ""

	if candidate.Scheme != "" && candidate.Scheme != "http" && candidate.Scheme != "https" {
		return nil, false
	}

	if ext := path.Ext(candidate.Path); ext != "" && !allowedExtensions[strings.ToLower(ext)] {
		return nil, false
	}

	var resolved *url.URL
	if candidate.Host != "" {
		candidateHost := NewHost(candidate.Hostname())
		if !baseHost.Contains(candidateHost) {
			return nil, false
		}
		if candidate.Scheme == "" {
			candidate.Scheme = base.Scheme
		}
		resolved = candidate
	} else {
		resolved = base.ResolveReference(candidate)
	}

	resolved.RawQuery = ""
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Path == "/" {
		resolved.Path = ""
	}

	return resolved, true
}
