package linstor

import (
	"fmt"
	"strings"

	"github.com/juju/version/v2"
)

// REST API versions that introduced optional features.
const (
	apiVersionVolumeModify = "1.0.6"
	apiVersionNodeIsActive = "1.0.7"
	apiVersionGroups       = "1.0.8"
)

// parseAPIVersion parses a REST API version such as "1.0.4". A version
// without patch level gets ".0" appended.
func parseAPIVersion(s string) (version.Number, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ".") == 1 {
		s += ".0"
	}
	return version.Parse(s)
}

// checkServerVersion verifies that a controller speaking server can be used by
// this client: same major version and not older than APIVersionMin.
func checkServerVersion(server string) error {
	fail := &VersionError{
		ServerVersion: server,
		Required:      APIVersionMin,
		Msg: fmt.Sprintf("client doesn't support controller rest api version: %s; minimal version needed: %s",
			server, APIVersionMin),
	}

	got, err := parseAPIVersion(server)
	if err != nil {
		return fail
	}
	minimum, err := parseAPIVersion(APIVersionMin)
	if err != nil {
		return err
	}
	if got.Major != minimum.Major || got.Compare(minimum) < 0 {
		return fail
	}
	return nil
}

// requireVersion fails with a VersionError when the connected controller is
// older than required. Without a known controller version nothing is checked.
func (c *Client) requireVersion(op, required string) error {
	if c.ctrlVersion == nil {
		return nil
	}
	ok, err := c.versionAtLeast(required)
	if err != nil {
		return err
	}
	if !ok {
		return &VersionError{
			ServerVersion: c.ctrlVersion.RESTAPIVersion,
			Required:      required,
			Msg: fmt.Sprintf("%s not supported by server, REST-API-VERSION: %s; needed %s",
				op, c.ctrlVersion.RESTAPIVersion, required),
		}
	}
	return nil
}

// versionAtLeast reports whether the connected controller speaks at least
// required. It reports false when no controller version is known.
func (c *Client) versionAtLeast(required string) (bool, error) {
	if c.ctrlVersion == nil {
		return false, nil
	}
	got, err := parseAPIVersion(c.ctrlVersion.RESTAPIVersion)
	if err != nil {
		return false, &VersionError{
			ServerVersion: c.ctrlVersion.RESTAPIVersion,
			Required:      required,
			Msg:           fmt.Sprintf("invalid controller rest api version %q", c.ctrlVersion.RESTAPIVersion),
		}
	}
	want, err := parseAPIVersion(required)
	if err != nil {
		return false, err
	}
	return got.Compare(want) >= 0, nil
}
