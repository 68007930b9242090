package linstor

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

const defaultScheme = "linstor"

// Endpoint is a controller address resolved from a connection URI.
type Endpoint struct {
	// URI is the connection URI as given by the caller.
	URI    string
	Host   string
	Port   int
	Secure bool

	// PortSet reports whether the URI carried an explicit port.
	PortSet bool
}

// ParseEndpoint resolves scheme, host and port of a controller URI. A URI
// without scheme is treated as linstor://.
func ParseEndpoint(uri string) (Endpoint, error) {
	raw := strings.TrimSpace(uri)
	if raw == "" {
		return Endpoint{}, argumentErrorf("empty controller uri")
	}
	if !strings.Contains(raw, "://") {
		raw = defaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, argumentErrorf("invalid controller uri %q: %v", uri, err)
	}

	ep := Endpoint{URI: uri, Host: u.Hostname()}
	switch strings.ToLower(u.Scheme) {
	case "linstor", "http":
	case "linstor+ssl", "https":
		ep.Secure = true
	default:
		return Endpoint{}, argumentErrorf("unsupported controller uri scheme %q", u.Scheme)
	}
	if ep.Host == "" {
		return Endpoint{}, argumentErrorf("controller uri %q has no host", uri)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return Endpoint{}, argumentErrorf("invalid port in controller uri %q", uri)
		}
		ep.Port = port
		ep.PortSet = true
	} else if ep.Secure {
		ep.Port = RESTHTTPSPort
	} else {
		ep.Port = RESTPort
	}
	return ep, nil
}

// Address returns host:port for dialing.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// HTTPScheme returns "https" for a TLS endpoint and "http" otherwise.
func (e Endpoint) HTTPScheme() string {
	if e.Secure {
		return "https"
	}
	return "http"
}

// URL returns the plain HTTP URL of path on this endpoint.
func (e Endpoint) URL(path string) string {
	return e.HTTPScheme() + "://" + e.Address() + path
}

// ControllerURIList expands a comma separated host list such as
// "10.0.0.1,10.0.0.2" into controller URIs. Entries that already carry a
// scheme are kept as they are.
func ControllerURIList(hosts string) []string {
	var uris []string
	for _, h := range strings.Split(hosts, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.Contains(h, "://") {
			h = defaultScheme + "://" + h
		}
		uris = append(uris, h)
	}
	return uris
}
