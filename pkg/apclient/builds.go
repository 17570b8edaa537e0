package apclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Build represents an actor build.
type Build struct {
	ID          string     `json:"id"`
	ActorID     string     `json:"actId"`
	Status      RunStatus  `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	BuildNumber string     `json:"buildNumber,omitempty"`
}

// BuildClient targets a single build by ID.
type BuildClient struct {
	c  *Client
	id string
}

// Build returns a client for the build with the given ID.
func (c *Client) Build(id string) *BuildClient {
	return &BuildClient{c: c, id: id}
}

func (bc *BuildClient) path() string {
	return "/v2/actor-builds/" + url.PathEscape(bc.id)
}

// Get fetches the build. A missing build yields (nil, nil).
func (bc *BuildClient) Get(ctx context.Context) (*Build, error) {
	if err := requireNonEmpty("build id", bc.id); err != nil {
		return nil, err
	}
	var build Build
	if _, err := bc.c.do(ctx, requestSpec{method: http.MethodGet, path: bc.path()}, &build); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &build, nil
}

// Abort asks the platform to abort the build.
func (bc *BuildClient) Abort(ctx context.Context) (*Build, error) {
	if err := requireNonEmpty("build id", bc.id); err != nil {
		return nil, err
	}
	var build Build
	if _, err := bc.c.do(ctx, requestSpec{method: http.MethodPost, path: bc.path() + "/abort"}, &build); err != nil {
		return nil, err
	}
	return &build, nil
}

// WaitForFinish long-polls the build until it reaches a terminal status or
// timeout elapses. A timeout of zero waits indefinitely.
func (bc *BuildClient) WaitForFinish(ctx context.Context, timeout time.Duration) (*Build, error) {
	if err := requireNonEmpty("build id", bc.id); err != nil {
		return nil, err
	}

	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		waitSecs := maxWaitForFinishSecs
		if !deadline.IsZero() {
			remaining := int(time.Until(deadline).Seconds())
			if remaining < waitSecs {
				waitSecs = remaining
			}
			if waitSecs < 0 {
				waitSecs = 0
			}
		}

		params := url.Values{}
		params.Set("waitForFinish", strconv.Itoa(waitSecs))

		var build Build
		if _, err := bc.c.do(ctx, requestSpec{method: http.MethodGet, path: bc.path(), params: params}, &build); err != nil {
			return nil, err
		}
		if build.Status.IsTerminal() {
			return &build, nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return &build, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}
