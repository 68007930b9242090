package linstor

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrorReportFilter selects error reports. IDs take precedence over Nodes;
// zero times do not restrict the range.
type ErrorReportFilter struct {
	Nodes       []string
	IDs         []string
	Since       time.Time
	To          time.Time
	WithContent bool
}

func (f ErrorReportFilter) query() url.Values {
	q := url.Values{}
	q.Set("withContent", strconv.FormatBool(f.WithContent))
	if !f.Since.IsZero() {
		q.Set("since", strconv.FormatInt(f.Since.UnixMilli(), 10))
	}
	if !f.To.IsZero() {
		q.Set("to", strconv.FormatInt(f.To.UnixMilli(), 10))
	}
	return q
}

// ErrorReportList returns error reports as *ErrorReport results. Reports
// requested by id contribute their first result each; per node listings are
// concatenated.
func (c *Client) ErrorReportList(ctx context.Context, filter ErrorReportFilter) ([]Result, error) {
	q := filter.query()

	if len(filter.IDs) > 0 {
		var results []Result
		for _, id := range filter.IDs {
			res, err := c.execute(ctx, APIReqErrorReports, http.MethodGet, withQuery(apiPath("error-reports", id), q), nil)
			if err != nil {
				return nil, err
			}
			if len(res) > 0 {
				results = append(results, res[0])
			}
		}
		return results, nil
	}

	if len(filter.Nodes) == 0 {
		return c.execute(ctx, APIReqErrorReports, http.MethodGet, withQuery(apiPath("error-reports"), q), nil)
	}

	var results []Result
	for _, node := range filter.Nodes {
		q.Set("node", node)
		res, err := c.execute(ctx, APIReqErrorReports, http.MethodGet, withQuery(apiPath("error-reports"), q), nil)
		if err != nil {
			return nil, err
		}
		results = append(results, res...)
	}
	return results, nil
}
