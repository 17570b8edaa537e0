package apclient

import (
	"context"
	"net/http"
	"net/url"
)

// LogClient fetches the log of a run or build. Logs are plain text and are
// not wrapped in the JSON data envelope.
type LogClient struct {
	c  *Client
	id string
}

// Log returns a client for the log of the run or build with the given ID.
func (c *Client) Log(buildOrRunID string) *LogClient {
	return &LogClient{c: c, id: buildOrRunID}
}

// Get returns the full log as a string. A missing log yields ("", nil).
func (lc *LogClient) Get(ctx context.Context) (string, error) {
	if err := requireNonEmpty("build or run id", lc.id); err != nil {
		return "", err
	}
	spec := requestSpec{
		method: http.MethodGet,
		path:   "/v2/logs/" + url.PathEscape(lc.id),
		rawOut: true,
	}
	data, err := lc.c.do(ctx, spec, nil)
	if err != nil {
		if errIsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}
