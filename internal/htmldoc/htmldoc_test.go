package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "anchors in order",
			doc: `<html><body>
				<a href="/a">a</a>
				<a href="https://example.com/b">b</a>
				<a href="mailto:x@example.com">mail</a>
			</body></html>`,
			want: []string{"/a", "https://example.com/b", "mailto:x@example.com"},
		},
		{
			name: "duplicates collapse",
			doc:  `<a href="/a">one</a><a href="/a">two</a><a href="/b">three</a>`,
			want: []string{"/a", "/b"},
		},
		{
			name: "anchor without href skipped",
			doc:  `<a name="top">anchor</a><a href="/x">x</a>`,
			want: []string{"/x"},
		},
		{
			name: "no anchors",
			doc:  `<p>plain text</p>`,
			want: nil,
		},
		{
			name: "empty document",
			doc:  "",
			want: nil,
		},
		{
			name: "literal values kept raw",
			doc:  `<a href="/a?b=1&amp;c=2#frag">q</a>`,
			want: []string{"/a?b=1&c=2#frag"},
		},
		{
			name: "malformed markup best effort",
			doc:  `<div><a href="/ok">ok</a><a href="/also`,
			want: []string{"/ok"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Links(tc.doc))
		})
	}
}
