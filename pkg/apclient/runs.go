package apclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RunStatus is the lifecycle status of an actor run or build.
type RunStatus string

const (
	StatusReady    RunStatus = "READY"
	StatusRunning  RunStatus = "RUNNING"
	StatusAborting RunStatus = "ABORTING"

	StatusSucceeded RunStatus = "SUCCEEDED"
	StatusFailed    RunStatus = "FAILED"
	StatusAborted   RunStatus = "ABORTED"
	StatusTimedOut  RunStatus = "TIMED-OUT"
)

// IsTerminal reports whether the status can no longer change.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut:
		return true
	}
	return false
}

// Run represents an actor run.
type Run struct {
	ID                     string     `json:"id"`
	ActorID                string     `json:"actId"`
	Status                 RunStatus  `json:"status"`
	StartedAt              *time.Time `json:"startedAt,omitempty"`
	FinishedAt             *time.Time `json:"finishedAt,omitempty"`
	BuildID                string     `json:"buildId,omitempty"`
	ExitCode               *int       `json:"exitCode,omitempty"`
	DefaultKeyValueStoreID string     `json:"defaultKeyValueStoreId,omitempty"`
	DefaultDatasetID       string     `json:"defaultDatasetId,omitempty"`
}

// RunClient targets a single run by ID.
type RunClient struct {
	c  *Client
	id string
}

// Run returns a client for the run with the given ID.
func (c *Client) Run(id string) *RunClient {
	return &RunClient{c: c, id: id}
}

func (rc *RunClient) path() string {
	return "/v2/actor-runs/" + url.PathEscape(rc.id)
}

// Get fetches the run. A missing run yields (nil, nil).
func (rc *RunClient) Get(ctx context.Context) (*Run, error) {
	if err := requireNonEmpty("run id", rc.id); err != nil {
		return nil, err
	}
	var run Run
	if _, err := rc.c.do(ctx, requestSpec{method: http.MethodGet, path: rc.path()}, &run); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// Abort asks the platform to abort the run and returns its updated state.
func (rc *RunClient) Abort(ctx context.Context) (*Run, error) {
	if err := requireNonEmpty("run id", rc.id); err != nil {
		return nil, err
	}
	var run Run
	if _, err := rc.c.do(ctx, requestSpec{method: http.MethodPost, path: rc.path() + "/abort"}, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Resurrect restarts a finished run.
func (rc *RunClient) Resurrect(ctx context.Context) (*Run, error) {
	if err := requireNonEmpty("run id", rc.id); err != nil {
		return nil, err
	}
	var run Run
	if _, err := rc.c.do(ctx, requestSpec{method: http.MethodPost, path: rc.path() + "/resurrect"}, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// maxWaitForFinishSecs is the longest single long-poll the API allows on
// the waitForFinish query parameter.
const maxWaitForFinishSecs = 300

// WaitForFinish long-polls the run until it reaches a terminal status or
// timeout elapses. A timeout of zero waits indefinitely (bounded only by
// ctx). The last observed run state is returned even when the run did not
// finish in time, mirroring the behavior of the platform API.
func (rc *RunClient) WaitForFinish(ctx context.Context, timeout time.Duration) (*Run, error) {
	if err := requireNonEmpty("run id", rc.id); err != nil {
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

		var run Run
		if _, err := rc.c.do(ctx, requestSpec{method: http.MethodGet, path: rc.path(), params: params}, &run); err != nil {
			return nil, err
		}
		if run.Status.IsTerminal() {
			return &run, nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return &run, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}
