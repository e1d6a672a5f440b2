// Package demo detects demo deployments and holds the demo account and
// display tables shown to visitors of those deployments.
package demo

import (
	"net"
	"net/http"
	"strings"
)

// FlagEnabled is the only flag value that turns demo mode on.
const FlagEnabled = "true"

// hostingSignatures are host name fragments of public static-hosting
// platforms. Checked in order.
var hostingSignatures = [...]string{
	"github.io",
	"vercel.app",
	"netlify.app",
	"pages.dev",
}

// HostingSignatures returns the static-hosting host fragments in the order
// they are checked.
func HostingSignatures() []string {
	out := make([]string, len(hostingSignatures))
	copy(out, hostingSignatures[:])
	return out
}

// IsDemoMode reports whether a deployment served from host, built with the
// given demo flag, runs in demo mode. Matching is case-sensitive.
func IsDemoMode(host, flag string) bool {
	for _, sig := range hostingSignatures {
		if strings.Contains(host, sig) {
			return true
		}
	}
	return flag == FlagEnabled
}

// Detector binds the build-time demo flag so callers only supply the host.
type Detector struct {
	flag       string
	trustProxy bool
}

// NewDetector creates a Detector for the given build-time flag value.
// Forwarded headers are ignored until WithTrustedProxy enables them.
func NewDetector(flag string) *Detector {
	return &Detector{flag: flag}
}

// WithTrustedProxy sets whether X-Forwarded-* headers come from a trusted
// reverse proxy. Only enable this when clients cannot reach the server
// directly.
func (d *Detector) WithTrustedProxy(trust bool) *Detector {
	d.trustProxy = trust
	return d
}

// Flag returns the raw flag value the detector was built with.
func (d *Detector) Flag() string {
	return d.flag
}

// TrustsProxy reports whether forwarded headers are honored.
func (d *Detector) TrustsProxy() bool {
	return d.trustProxy
}

// Detect reports whether host is a demo deployment.
func (d *Detector) Detect(host string) bool {
	return IsDemoMode(host, d.flag)
}

// DetectAmbient is used where no host name is available (CLI, background
// jobs). The host is treated as empty, so only the flag decides.
func (d *Detector) DetectAmbient() bool {
	return d.Detect("")
}

// DetectRequest reports whether the host the request was addressed to is a
// demo deployment.
func (d *Detector) DetectRequest(r *http.Request) bool {
	return d.Detect(RequestHost(r, d.trustProxy))
}

// RequestAuthority returns the host[:port] a request was addressed to.
// X-Forwarded-Host is only used when trustProxy is set; clients can send
// it with any value.
func RequestAuthority(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
			// Proxies may append, first entry is the original.
			return strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	return r.Host
}

// RequestHost returns the host name a request was addressed to, without
// port.
func RequestHost(r *http.Request, trustProxy bool) string {
	host := RequestAuthority(r, trustProxy)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// RequestScheme returns "https" or "http" for the request.
// X-Forwarded-Proto is only used when trustProxy is set.
func RequestScheme(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
