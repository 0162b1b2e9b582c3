package crawler

import (
	"net/url"
	"strings"

	"github.com/kstoykov/webkin/internal/hostrel"
)

// linkKind is the classified outcome of resolving one raw href.
type linkKind int

const (
	// linkSkip drops the href: wrong scheme, unrelated host, or garbage.
	linkSkip linkKind = iota
	// linkPage is a same-host page to fetch if it has not been crawled.
	linkPage
	// linkTarget is a related host to promote to a new crawl target.
	linkTarget
)

// resolvedLink carries the classified href. fetchURL and key are set for
// linkPage, host for linkTarget.
type resolvedLink struct {
	kind     linkKind
	fetchURL string
	key      string
	host     hostrel.Host
}

// resolveLink classifies raw against the host currently being crawled.
// Resolution is optimistic: malformed or unsupported links resolve to
// linkSkip rather than an error, since arbitrary web content must never
// abort a crawl.
func resolveLink(raw string, base hostrel.Host) resolvedLink {
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return resolveAbsolute(u, base)
	}

	// Not an absolute URL; it may be a root-relative path.
	path := strings.TrimRight(raw, "/")
	if !strings.HasPrefix(path, "/") {
		return resolvedLink{kind: linkSkip}
	}
	fetchURL := "https://" + base.String() + path
	return resolvedLink{kind: linkPage, fetchURL: fetchURL, key: normalizeURL(fetchURL)}
}

func resolveAbsolute(u *url.URL, base hostrel.Host) resolvedLink {
	if u.Scheme != "http" && u.Scheme != "https" {
		return resolvedLink{kind: linkSkip}
	}
	hostname := u.Hostname()
	if hostname == "" {
		return resolvedLink{kind: linkSkip}
	}
	linkHost, err := hostrel.Parse(hostname)
	if err != nil {
		return resolvedLink{kind: linkSkip}
	}

	switch hostrel.Classify(linkHost, base) {
	case hostrel.Same:
		fetchURL := u.String()
		return resolvedLink{kind: linkPage, fetchURL: fetchURL, key: normalizeURL(fetchURL)}
	case hostrel.Related:
		return resolvedLink{kind: linkTarget, host: linkHost}
	default:
		return resolvedLink{kind: linkSkip}
	}
}

// normalizeURL reduces an absolute URL to the key a page is deduplicated
// under: scheme stripped, trailing slashes stripped, authority and path
// kept. https://x.com/a and http://x.com/a/ produce the identical key,
// and the function is idempotent.
func normalizeURL(raw string) string {
	s := strings.TrimRight(raw, "/")
	if _, rest, ok := strings.Cut(s, "://"); ok {
		return rest
	}
	return s
}
