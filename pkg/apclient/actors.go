package apclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Actor represents an actor (a runnable cloud program) on the platform.
type Actor struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Username    string     `json:"username,omitempty"`
	Description string     `json:"description,omitempty"`
	IsPublic    bool       `json:"isPublic,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	ModifiedAt  *time.Time `json:"modifiedAt,omitempty"`
}

// ActorCollectionClient operates on the actor collection.
type ActorCollectionClient struct {
	c *Client
}

// Actors returns a client for the actor collection.
func (c *Client) Actors() *ActorCollectionClient {
	return &ActorCollectionClient{c: c}
}

// ActorListParams extends the common pagination parameters with the
// my-actors filter.
type ActorListParams struct {
	ListParams
	My bool
}

// List returns one page of actors the token can access.
func (ac *ActorCollectionClient) List(ctx context.Context, params ActorListParams) (*ListPage[Actor], error) {
	values := params.values()
	if params.My {
		values.Set("my", "true")
	}
	var page ListPage[Actor]
	if _, err := ac.c.do(ctx, requestSpec{method: http.MethodGet, path: "/v2/acts", params: values}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create creates a new actor from the given definition.
func (ac *ActorCollectionClient) Create(ctx context.Context, actor Actor) (*Actor, error) {
	if err := requireNonEmpty("actor name", actor.Name); err != nil {
		return nil, err
	}
	var out Actor
	if _, err := ac.c.do(ctx, requestSpec{method: http.MethodPost, path: "/v2/acts", jsonIn: actor}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActorClient targets a single actor by ID or username~actor-name slug.
type ActorClient struct {
	c  *Client
	id string
}

// Actor returns a client for the actor with the given ID.
func (c *Client) Actor(id string) *ActorClient {
	return &ActorClient{c: c, id: id}
}

func (ac *ActorClient) path() string {
	return "/v2/acts/" + url.PathEscape(ac.id)
}

// Get fetches the actor. A missing actor yields (nil, nil).
func (ac *ActorClient) Get(ctx context.Context) (*Actor, error) {
	if err := requireNonEmpty("actor id", ac.id); err != nil {
		return nil, err
	}
	var actor Actor
	if _, err := ac.c.do(ctx, requestSpec{method: http.MethodGet, path: ac.path()}, &actor); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &actor, nil
}

// Update patches mutable fields of the actor.
func (ac *ActorClient) Update(ctx context.Context, actor Actor) (*Actor, error) {
	if err := requireNonEmpty("actor id", ac.id); err != nil {
		return nil, err
	}
	var out Actor
	if _, err := ac.c.do(ctx, requestSpec{method: http.MethodPut, path: ac.path(), jsonIn: actor}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the actor.
func (ac *ActorClient) Delete(ctx context.Context) error {
	if err := requireNonEmpty("actor id", ac.id); err != nil {
		return err
	}
	_, err := ac.c.do(ctx, requestSpec{method: http.MethodDelete, path: ac.path()}, nil)
	return err
}

// StartParams configures a new actor run. Zero values fall back to the
// actor's defaults on the platform side.
type StartParams struct {
	// Input is the run input, marshaled as the JSON request body.
	Input any
	// Build selects a build tag or number (e.g. "latest").
	Build string
	// MemoryMbytes caps run memory.
	MemoryMbytes int
	// TimeoutSecs caps run duration.
	TimeoutSecs int
}

func (p StartParams) values() url.Values {
	v := url.Values{}
	if p.Build != "" {
		v.Set("build", p.Build)
	}
	if p.MemoryMbytes > 0 {
		v.Set("memory", strconv.Itoa(p.MemoryMbytes))
	}
	if p.TimeoutSecs > 0 {
		v.Set("timeout", strconv.Itoa(p.TimeoutSecs))
	}
	return v
}

// Start begins a run of the actor and returns immediately.
func (ac *ActorClient) Start(ctx context.Context, params StartParams) (*Run, error) {
	if err := requireNonEmpty("actor id", ac.id); err != nil {
		return nil, err
	}
	spec := requestSpec{
		method: http.MethodPost,
		path:   ac.path() + "/runs",
		params: params.values(),
	}
	if params.Input != nil {
		spec.jsonIn = params.Input
	}
	var run Run
	if _, err := ac.c.do(ctx, spec, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Call starts a run and waits for it to finish (or for timeout to elapse,
// in which case the last observed state is returned).
func (ac *ActorClient) Call(ctx context.Context, params StartParams, timeout time.Duration) (*Run, error) {
	run, err := ac.Start(ctx, params)
	if err != nil {
		return nil, err
	}
	return ac.c.Run(run.ID).WaitForFinish(ctx, timeout)
}

// LastRun fetches the most recent run of the actor. A missing run yields
// (nil, nil).
func (ac *ActorClient) LastRun(ctx context.Context) (*Run, error) {
	if err := requireNonEmpty("actor id", ac.id); err != nil {
		return nil, err
	}
	var run Run
	if _, err := ac.c.do(ctx, requestSpec{method: http.MethodGet, path: ac.path() + "/runs/last"}, &run); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// Builds returns one page of the actor's builds.
func (ac *ActorClient) Builds(ctx context.Context, params ListParams) (*ListPage[Build], error) {
	if err := requireNonEmpty("actor id", ac.id); err != nil {
		return nil, err
	}
	var page ListPage[Build]
	if _, err := ac.c.do(ctx, requestSpec{method: http.MethodGet, path: ac.path() + "/builds", params: params.values()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
