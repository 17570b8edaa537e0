package apclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yonnyZer0/apify/pkg/apclient/aperr"
)

// Dataset represents an append-only dataset of JSON items.
type Dataset struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	ItemCount  int64      `json:"itemCount"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
}

// DatasetCollectionClient operates on the dataset collection.
type DatasetCollectionClient struct {
	c *Client
}

// Datasets returns a client for the dataset collection.
func (c *Client) Datasets() *DatasetCollectionClient {
	return &DatasetCollectionClient{c: c}
}

// List returns one page of datasets.
func (dc *DatasetCollectionClient) List(ctx context.Context, params ListParams) (*ListPage[Dataset], error) {
	var page ListPage[Dataset]
	if _, err := dc.c.do(ctx, requestSpec{method: http.MethodGet, path: "/v2/datasets", params: params.values()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrCreate returns the dataset with the given name, creating it when it
// does not exist yet.
func (dc *DatasetCollectionClient) GetOrCreate(ctx context.Context, name string) (*Dataset, error) {
	if err := requireNonEmpty("dataset name", name); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("name", name)
	var dataset Dataset
	if _, err := dc.c.do(ctx, requestSpec{method: http.MethodPost, path: "/v2/datasets", params: params}, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// DatasetClient targets a single dataset by ID.
type DatasetClient struct {
	c  *Client
	id string
}

// Dataset returns a client for the dataset with the given ID.
func (c *Client) Dataset(id string) *DatasetClient {
	return &DatasetClient{c: c, id: id}
}

func (dc *DatasetClient) path() string {
	return "/v2/datasets/" + url.PathEscape(dc.id)
}

// Get fetches the dataset. A missing dataset yields (nil, nil).
func (dc *DatasetClient) Get(ctx context.Context) (*Dataset, error) {
	if err := requireNonEmpty("dataset id", dc.id); err != nil {
		return nil, err
	}
	var dataset Dataset
	if _, err := dc.c.do(ctx, requestSpec{method: http.MethodGet, path: dc.path()}, &dataset); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &dataset, nil
}

// Delete removes the dataset and all its items.
func (dc *DatasetClient) Delete(ctx context.Context) error {
	if err := requireNonEmpty("dataset id", dc.id); err != nil {
		return err
	}
	_, err := dc.c.do(ctx, requestSpec{method: http.MethodDelete, path: dc.path()}, nil)
	return err
}

// PushItems appends items to the dataset. Items must marshal to a JSON
// array element each.
func (dc *DatasetClient) PushItems(ctx context.Context, items ...any) error {
	if err := requireNonEmpty("dataset id", dc.id); err != nil {
		return err
	}
	if len(items) == 0 {
		return aperr.New(aperr.CodeInvalidParameter, fmt.Errorf("at least one item is required"))
	}
	_, err := dc.c.do(ctx, requestSpec{method: http.MethodPost, path: dc.path() + "/items", jsonIn: items}, nil)
	return err
}

// ListItems returns one page of dataset items. Item endpoints return a bare
// JSON array, not the data envelope.
func (dc *DatasetClient) ListItems(ctx context.Context, params ListParams) ([]json.RawMessage, error) {
	if err := requireNonEmpty("dataset id", dc.id); err != nil {
		return nil, err
	}
	spec := requestSpec{
		method: http.MethodGet,
		path:   dc.path() + "/items",
		params: params.values(),
		rawOut: true,
	}
	data, err := dc.c.do(ctx, spec, nil)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
