package linstor

import (
	"bufio"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds dialing and waiting for a response.
	DefaultTimeout = 5 * time.Minute

	httpsProbeTimeout = 3 * time.Second
	versionPath       = "/v1/controller/version"
)

// Client talks to a single controller over one HTTP/1.1 connection.
//
// A Client is not safe for concurrent use. Callers sharing one Client must
// serialize their calls, or use one Client per goroutine.
type Client struct {
	endpoint Endpoint

	timeout       time.Duration
	keepAlive     bool
	username      string
	password      string
	allowInsecure bool
	dryRun        io.Writer
	headers       map[string]string
	log           logrus.FieldLogger

	// target is the endpoint the transport dials, after TLS discovery.
	target    Endpoint
	active    bool
	conn      net.Conn
	reader    *bufio.Reader
	connected bool

	ctrlVersion *ControllerVersion

	// reconnect replaces Connect when a lost connection is re-established.
	reconnect func(context.Context) error
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the dial and response timeout. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithKeepAlive enables one transparent reconnect and retry per call when
// reading the response fails.
func WithKeepAlive(enabled bool) Option {
	return func(c *Client) { c.keepAlive = enabled }
}

// WithCredentials enables HTTP Basic authentication.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithAllowInsecure permits credentials over a plaintext connection.
func WithAllowInsecure(allow bool) Option {
	return func(c *Client) { c.allowInsecure = allow }
}

// WithDryRun makes the client print an equivalent curl command line to w for
// every call instead of talking to the controller.
func WithDryRun(w io.Writer) Option {
	return func(c *Client) { c.dryRun = w }
}

// WithHeaders adds extra headers to every request. Protocol headers set by
// the client take precedence.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = make(map[string]string, len(headers))
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New returns a disconnected client for the controller at uri.
func New(uri string, opts ...Option) (*Client, error) {
	ep, err := ParseEndpoint(uri)
	if err != nil {
		return nil, err
	}
	return newClient(ep, opts...), nil
}

func newClient(ep Endpoint, opts ...Option) *Client {
	c := &Client{
		endpoint: ep,
		timeout:  DefaultTimeout,
		log:      defaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Connect opens the transport and verifies the controller REST API version.
// Any open connection is closed first. On failure the client is left
// disconnected.
func (c *Client) Connect(ctx context.Context) error {
	c.Disconnect()
	if c.dryRun != nil {
		c.connected = true
		return nil
	}

	target := c.endpoint
	if !target.Secure {
		if port := c.probeHTTPS(ctx); port != 0 {
			c.log.WithFields(logrus.Fields{
				"controller": c.endpoint.URI,
				"port":       port,
			}).Info("controller redirects to https")
			target.Secure = true
			target.Port = port
		}
	}
	if !target.Secure && c.username != "" && !c.allowInsecure {
		return newNetworkError(c.endpoint.URI,
			"password authentication with HTTP not allowed, until explicitly enabled")
	}

	c.target = target
	c.active = true
	if err := c.open(ctx); err != nil {
		c.Disconnect()
		return err
	}

	results, err := c.do(ctx, APIVersion, http.MethodGet, versionPath, nil, false)
	if err != nil {
		c.Disconnect()
		return err
	}
	ver, err := expectOne[*ControllerVersion](results)
	if err != nil {
		c.Disconnect()
		return err
	}
	if err := checkServerVersion(ver.RESTAPIVersion); err != nil {
		c.Disconnect()
		return err
	}

	c.ctrlVersion = ver
	c.connected = true
	c.log.WithFields(logrus.Fields{
		"controller":       c.endpoint.URI,
		"secure":           target.Secure,
		"rest_api_version": ver.RESTAPIVersion,
	}).Debug("connected")
	return nil
}

// Disconnect closes the transport and marks the client disconnected. It is
// safe to call on a disconnected client.
func (c *Client) Disconnect() {
	c.closeTransport()
	c.active = false
	c.connected = false
	c.ctrlVersion = nil
}

// Close disconnects the client. It always returns nil.
func (c *Client) Close() error {
	c.Disconnect()
	return nil
}

func (c *Client) Connected() bool {
	return c.connected
}

// IsSecure reports whether the active transport uses TLS.
func (c *Client) IsSecure() bool {
	return c.active && c.target.Secure
}

// ControllerHost returns the controller URI this client is configured for.
func (c *Client) ControllerHost() string {
	return c.endpoint.URI
}

// ControllerVersion returns the version reported by the controller at
// connect time, or nil when not connected or in dry-run mode.
func (c *Client) ControllerVersion() *ControllerVersion {
	return c.ctrlVersion
}

// probeHTTPS asks the plain port for the controller version. A redirect
// carrying a port means the controller wants https on that port. Any failure
// is treated as "no https".
func (c *Client) probeHTTPS(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, httpsProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.URL(versionPath), nil)
	if err != nil {
		return 0
	}
	probe := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := probe.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound {
		return 0
	}
	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(loc.Port())
	if err != nil {
		return 0
	}
	return port
}

// open dials the current target.
func (c *Client) open(ctx context.Context) error {
	dialer := &net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.target.Address())
	if err != nil {
		return newNetworkError(c.endpoint.URI, "unable to connect to "+c.endpoint.URI, err)
	}

	if c.target.Secure {
		tlsConn := tls.Client(conn, &tls.Config{
			ServerName:         c.target.Host,
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS12,
		})
		hctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := tlsConn.HandshakeContext(hctx)
		cancel()
		if err != nil {
			_ = conn.Close()
			return newNetworkError(c.endpoint.URI, "unable to connect to "+c.endpoint.URI, err)
		}
		conn = tlsConn
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

func (c *Client) closeTransport() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.reader = nil
}

// setDeadline applies the configured timeout, shortened by the context
// deadline when that is earlier.
func (c *Client) setDeadline(ctx context.Context) error {
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return c.conn.SetDeadline(deadline)
}
