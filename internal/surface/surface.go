// Package surface classifies an inbound Host header into one of the
// platform's front-ends. Resolve is pure and total: any string, however
// malformed, maps to a defined surface without error.
package surface

import (
	"net"
	"strings"
)

// Surface identifies one of the distinct front-ends sharing this backend.
type Surface string

const (
	// SurfacePublic is a church's public website, reached via the church's
	// subdomain or a custom domain. It is also the fallback for any host
	// that matches nothing else.
	SurfacePublic Surface = "public"
	// SurfaceAdmin is the church admin dashboard.
	SurfaceAdmin Surface = "admin"
	// SurfacePlatform is the vendor's internal operator tooling.
	SurfacePlatform Surface = "platform"
	// SurfaceMarketing is the vendor's own marketing site.
	SurfaceMarketing Surface = "marketing"
)

// vendorDomain is the apex of the vendor's own site. Only the exact apex and
// its www host classify as marketing; a church's custom www domain stays on
// the public surface.
const vendorDomain = "faithinteractive.com"

// Resolve maps a raw Host header to a surface. localhost and *.localhost
// classify by subdomain exactly like production hosts, so local development
// hits the same code paths.
func Resolve(host string) Surface {
	h := normalize(host)
	if h == "" {
		return SurfacePublic
	}

	if h == vendorDomain || h == "www."+vendorDomain {
		return SurfaceMarketing
	}

	label, _, _ := strings.Cut(h, ".")
	switch label {
	case "admin":
		return SurfaceAdmin
	case "platform", "internal":
		return SurfacePlatform
	case "marketing", "www":
		if isLocal(h) {
			return SurfaceMarketing
		}
	}
	return SurfacePublic
}

// normalize lowercases the host, strips an optional port and IPv6 brackets,
// and drops a trailing dot (FQDN form).
func normalize(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if bare, _, err := net.SplitHostPort(h); err == nil {
		h = bare
	}
	h = strings.Trim(h, "[]")
	return strings.TrimSuffix(h, ".")
}

// isLocal reports whether the host is a development-local name.
func isLocal(h string) bool {
	return h == "localhost" || strings.HasSuffix(h, ".localhost")
}
