package linstor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/beornf/linstor-api-go/internal/httpheaders"
)

// UserAgent identifies this client to the controller.
var UserAgent = fmt.Sprintf("GoLinstor/%s (API%s)", Version, APIVersionMin)

// execute sends one call to the controller and classifies the response. In
// dry-run mode it only prints the equivalent curl command.
func (c *Client) execute(ctx context.Context, call APICall, method, path string, body any) ([]Result, error) {
	if c.dryRun != nil {
		return []Result{}, c.writeCurl(method, path, body)
	}
	return c.do(ctx, call, method, path, body, c.keepAlive)
}

// do performs the request. When retry is set, a failure to read the response
// reconnects and repeats the call once with retry cleared.
func (c *Client) do(ctx context.Context, call APICall, method, path string, body any, retry bool) ([]Result, error) {
	if !c.active {
		return nil, newNetworkError(c.endpoint.URI, "unable to connect to "+c.endpoint.URI, ErrNotConnected)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	if c.conn == nil {
		// The controller closed the previous connection after a response.
		if err := c.open(ctx); err != nil {
			return nil, err
		}
	}
	if err := c.setDeadline(ctx); err != nil {
		c.closeTransport()
		return nil, newNetworkError(c.endpoint.URI, "unable to connect to "+c.endpoint.URI, err)
	}

	log := c.log.WithFields(logrus.Fields{
		"api_call": string(call),
		"method":   method,
		"path":     path,
		"retry":    retry,
	})

	w := bufio.NewWriter(c.conn)
	err = req.Write(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		c.closeTransport()
		return nil, newNetworkError(c.endpoint.URI, "unable to connect to "+c.endpoint.URI, err)
	}

	resp, raw, err := c.readResponse(req)
	if err != nil {
		c.closeTransport()
		if isTimeout(err) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Wrapf(ctxErr, "%s %s", method, path)
			}
			return nil, &TimeoutError{Timeout: c.timeout}
		}
		if retry && lostConnection(err) {
			return c.retry(ctx, log, err, call, method, path, body)
		}
		return nil, newNetworkError(c.endpoint.URI, "error reading response from "+c.endpoint.URI, err)
	}
	if resp.Close {
		c.closeTransport()
	}

	log.WithField("status", resp.StatusCode).Debug("controller call")

	data, err := decodeBody(resp.Header, raw)
	if err != nil {
		return nil, &MalformedResponseError{Path: path, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < http.StatusBadRequest {
		return classify(call, path, resp.StatusCode, data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &APICallError{Msg: fmt.Sprintf(
			"REST api call method '%s' to resource '%s' returned status %d with no data",
			method, path, resp.StatusCode)}
	}
	return classifyFailure(path, resp.StatusCode, data)
}

func (c *Client) retry(ctx context.Context, log logrus.FieldLogger, cause error, call APICall, method, path string, body any) ([]Result, error) {
	log.WithError(cause).Info("connection lost, reconnecting")
	connect := c.Connect
	if c.reconnect != nil {
		connect = c.reconnect
	}
	if err := connect(ctx); err != nil {
		return nil, err
	}
	return c.do(ctx, call, method, path, body, false)
}

func (c *Client) readResponse(req *http.Request) (*http.Response, []byte, error) {
	resp, err := http.ReadResponse(c.reader, req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, raw, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.target.URL(path), body)
	if err != nil {
		return nil, argumentErrorf("invalid request %s %s: %v", method, path, err)
	}

	headers := httpheaders.Merge(nil, c.headers, true)
	headers = httpheaders.Merge(headers, c.protocolHeaders(payload != nil), true)
	httpheaders.Apply(req.Header, headers)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

func (c *Client) protocolHeaders(hasBody bool) map[string]string {
	h := map[string]string{
		"User-Agent":      UserAgent,
		"Connection":      "keep-alive",
		"Accept-Encoding": "gzip",
	}
	if hasBody {
		h["Content-Type"] = "application/json"
	}
	return h
}

func (c *Client) writeCurl(method, path string, body any) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}
	parts := []string{"curl", "-X", method}
	if payload != nil {
		parts = append(parts, `-H "Content-Type: application/json"`, "-d '"+string(payload)+"'")
	}
	parts = append(parts, c.endpoint.URL(path))
	_, err = fmt.Fprintln(c.dryRun, strings.Join(parts, " "))
	return err
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, argumentErrorf("unable to encode request body: %v", err)
	}
	return payload, nil
}

// lostConnection reports a read failure caused by the socket rather than
// by the bytes the controller sent.
func lostConnection(err error) bool {
	if isConnClosed(err) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
