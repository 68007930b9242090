package linstor

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// PropsModify is the property change set accepted by every modify call.
type PropsModify struct {
	OverrideProps map[string]string `json:"override_props,omitempty"`
	DeleteProps   []string          `json:"delete_props,omitempty"`
}

// apiPath joins escaped path segments below /v1.
func apiPath(segments ...string) string {
	var b strings.Builder
	b.WriteString("/v1")
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// filterQuery adds one key=value pair per value.
func filterQuery(q url.Values, key string, values []string) {
	for _, v := range values {
		q.Add(key, v)
	}
}

// fetchOne runs a list call and returns its single structured result.
func fetchOne[T Result](ctx context.Context, c *Client, call APICall, path string) (T, error) {
	results, err := c.execute(ctx, call, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return expectOne[T](results)
}

// successReply builds a local status reply for calls answered without
// asking the controller.
func successReply(msg string) []Result {
	return []Result{&APICallResponse{RetCode: MaskSuccess, Message: msg}}
}

func filterProps(props map[string]string, namespace string) map[string]string {
	out := make(map[string]string)
	for k, v := range props {
		if strings.HasPrefix(k, namespace) {
			out[k] = v
		}
	}
	return out
}
