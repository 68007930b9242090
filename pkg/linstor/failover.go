package linstor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Multi connects a Client to the first reachable controller out of an
// ordered list. All calls go through the embedded Client once connected.
type Multi struct {
	*Client

	endpoints   []Endpoint
	connectErrs []error
}

// NewMulti validates every URI up front and returns a disconnected client
// targeting the first one.
func NewMulti(uris []string, opts ...Option) (*Multi, error) {
	if len(uris) == 0 {
		return nil, argumentErrorf("no controller uris given")
	}
	endpoints := make([]Endpoint, 0, len(uris))
	for _, uri := range uris {
		ep, err := ParseEndpoint(uri)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}
	m := &Multi{
		Client:    newClient(endpoints[0], opts...),
		endpoints: endpoints,
	}
	m.Client.reconnect = m.Connect
	return m, nil
}

// Connect tries each controller in order and stops at the first success.
// Network and timeout failures move on to the next controller; any other
// error is returned immediately. When every controller fails the returned
// NetworkError carries one cause per controller.
func (m *Multi) Connect(ctx context.Context) error {
	m.connectErrs = nil
	for _, ep := range m.endpoints {
		m.Client.endpoint = ep
		err := m.Client.Connect(ctx)
		if err == nil {
			return nil
		}
		if !isConnectFailure(err) {
			return err
		}
		m.log.WithFields(logrus.Fields{"controller": ep.URI}).WithError(err).Warn("controller unreachable")
		m.connectErrs = append(m.connectErrs, err)
	}
	return newNetworkError("", "unable to connect to any of the given controller hosts", m.connectErrs...)
}

// ConnectErrors returns the failures recorded by the last Connect, including
// those of controllers tried before a successful one.
func (m *Multi) ConnectErrors() []error {
	return append([]error(nil), m.connectErrs...)
}

// Endpoints returns the configured controller URIs in order.
func (m *Multi) Endpoints() []string {
	uris := make([]string, len(m.endpoints))
	for i, ep := range m.endpoints {
		uris[i] = ep.URI
	}
	return uris
}

func isConnectFailure(err error) bool {
	var netErr *NetworkError
	var timeoutErr *TimeoutError
	return errors.As(err, &netErr) || errors.As(err, &timeoutErr)
}
