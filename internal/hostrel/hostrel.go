// Package hostrel models crawl hosts and classifies the relationship
// between two of them. A host is a domain name, an IPv4 address, or an
// IPv6 address; two hosts are Related when they look like siblings under
// the same registrable domain.
package hostrel

import (
	"errors"
	"net/netip"
	"strings"
)

// Kind discriminates the structural form of a host value.
type Kind int

// Host kinds, mirroring the forms a URL authority can carry.
const (
	KindDomain Kind = iota
	KindIPv4
	KindIPv6
)

// Relation classifies how two hosts relate to each other.
type Relation int

// Relation values.
const (
	Unrelated Relation = iota
	Related
	Same
)

// String returns a short label for logging.
func (r Relation) String() string {
	switch r {
	case Same:
		return "same"
	case Related:
		return "related"
	default:
		return "unrelated"
	}
}

// ErrEmptyHost is returned by Parse for an empty input.
var ErrEmptyHost = errors.New("hostrel: empty host")

// Host is a parsed host value. The zero value is not a valid host; build
// one with Parse. Host is comparable and usable as a map key.
type Host struct {
	kind Kind
	name string     // domain form, kept exactly as provided
	addr netip.Addr // IP forms
}

// Parse interprets s as a host value. IPv6 addresses are accepted with or
// without the URL bracket notation. Anything that is not an IP address is
// treated as a domain name, kept case-sensitively as provided.
func Parse(s string) (Host, error) {
	trimmed := s
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	if trimmed == "" {
		return Host{}, ErrEmptyHost
	}
	if addr, err := netip.ParseAddr(trimmed); err == nil {
		if addr.Is4() {
			return Host{kind: KindIPv4, addr: addr}, nil
		}
		return Host{kind: KindIPv6, addr: addr}, nil
	}
	return Host{kind: KindDomain, name: s}, nil
}

// Kind reports the structural form of the host.
func (h Host) Kind() Kind {
	return h.kind
}

// String renders the host the way it appears in a URL authority: domain
// names verbatim, IPv4 dotted quad, IPv6 in brackets.
func (h Host) String() string {
	switch h.kind {
	case KindIPv4:
		return h.addr.String()
	case KindIPv6:
		return "[" + h.addr.String() + "]"
	default:
		return h.name
	}
}

// Classify compares two hosts and reports whether they are the Same host,
// Related hosts, or Unrelated.
//
// Domain names are Related when their last two dot-separated labels match
// (a registrable-domain heuristic). This deliberately misclassifies
// multi-part public suffixes such as .co.uk as Related; a public suffix
// list lookup is out of scope. Mixed kinds are always Unrelated: no DNS
// resolution is attempted to connect a domain with its addresses.
func Classify(a, b Host) Relation {
	if a.kind != b.kind {
		return Unrelated
	}
	switch a.kind {
	case KindDomain:
		if a.name == b.name {
			return Same
		}
		if lastLabels(a.name, 2) == lastLabels(b.name, 2) {
			return Related
		}
		return Unrelated
	default:
		if a.addr == b.addr {
			return Same
		}
		return Unrelated
	}
}

// lastLabels returns the trailing n dot-separated labels of domain.
func lastLabels(domain string, n int) string {
	labels := strings.Split(domain, ".")
	if len(labels) > n {
		labels = labels[len(labels)-n:]
	}
	return strings.Join(labels, ".")
}
