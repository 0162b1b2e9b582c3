package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kstoykov/webkin/internal/hostrel"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "https", in: "https://x.com/a", want: "x.com/a"},
		{name: "http trailing slash", in: "http://x.com/a/", want: "x.com/a"},
		{name: "bare host", in: "https://x.com", want: "x.com"},
		{name: "bare host trailing slash", in: "https://x.com/", want: "x.com"},
		{name: "query kept", in: "https://x.com/a?b=1", want: "x.com/a?b=1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeURL(tc.in)
			assert.Equal(t, tc.want, got)
			// Normalization is idempotent.
			assert.Equal(t, got, normalizeURL(got))
		})
	}
}

func TestNormalizeURLCollapsesSchemeAndSlash(t *testing.T) {
	assert.Equal(t, normalizeURL("https://x.com/a"), normalizeURL("http://x.com/a/"))
}

func TestResolveLink(t *testing.T) {
	base, err := hostrel.Parse("example.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		raw      string
		kind     linkKind
		fetchURL string
		key      string
		host     string
	}{
		{
			name: "same host absolute",
			raw:  "https://example.com/about",
			kind: linkPage, fetchURL: "https://example.com/about", key: "example.com/about",
		},
		{
			name: "same host http scheme",
			raw:  "http://example.com/about/",
			kind: linkPage, fetchURL: "http://example.com/about/", key: "example.com/about",
		},
		{
			name: "related host",
			raw:  "https://sibling.example.com/",
			kind: linkTarget, host: "sibling.example.com",
		},
		{name: "unrelated host", raw: "https://unrelated.org", kind: linkSkip},
		{name: "unsupported scheme", raw: "ftp://example.com/file", kind: linkSkip},
		{name: "mailto", raw: "mailto:someone@example.com", kind: linkSkip},
		{name: "javascript", raw: "javascript:void(0)", kind: linkSkip},
		{
			name: "root relative",
			raw:  "/contact/",
			kind: linkPage, fetchURL: "https://example.com/contact", key: "example.com/contact",
		},
		{name: "bare fragmentless relative", raw: "about.html", kind: linkSkip},
		{name: "empty", raw: "", kind: linkSkip},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveLink(tc.raw, base)
			assert.Equal(t, tc.kind, got.kind)
			if tc.fetchURL != "" {
				assert.Equal(t, tc.fetchURL, got.fetchURL)
			}
			if tc.key != "" {
				assert.Equal(t, tc.key, got.key)
			}
			if tc.host != "" {
				assert.Equal(t, tc.host, got.host.String())
			}
		})
	}
}

func TestResolveLinkRelativeAndAbsoluteShareKey(t *testing.T) {
	base, err := hostrel.Parse("example.com")
	require.NoError(t, err)

	rel := resolveLink("/about", base)
	abs := resolveLink("https://example.com/about/", base)
	require.Equal(t, linkPage, rel.kind)
	require.Equal(t, linkPage, abs.kind)
	assert.Equal(t, rel.key, abs.key)
}

func TestResolveLinkIPv6Base(t *testing.T) {
	base, err := hostrel.Parse("[2001:db8::1]")
	require.NoError(t, err)

	got := resolveLink("/index", base)
	require.Equal(t, linkPage, got.kind)
	assert.Equal(t, "https://[2001:db8::1]/index", got.fetchURL)
	assert.Equal(t, "[2001:db8::1]/index", got.key)

	same := resolveLink("https://[2001:db8::1]/index", base)
	require.Equal(t, linkPage, same.kind)
	assert.Equal(t, got.key, same.key)
}
