package apclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// KeyValueStore represents a named key-value store.
type KeyValueStore struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	UserID     string     `json:"userId,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
	AccessedAt *time.Time `json:"accessedAt,omitempty"`
}

// KeyValueStoreCollectionClient operates on the key-value store collection.
type KeyValueStoreCollectionClient struct {
	c *Client
}

// KeyValueStores returns a client for the key-value store collection.
func (c *Client) KeyValueStores() *KeyValueStoreCollectionClient {
	return &KeyValueStoreCollectionClient{c: c}
}

// List returns one page of key-value stores.
func (kc *KeyValueStoreCollectionClient) List(ctx context.Context, params ListParams) (*ListPage[KeyValueStore], error) {
	var page ListPage[KeyValueStore]
	if _, err := kc.c.do(ctx, requestSpec{method: http.MethodGet, path: "/v2/key-value-stores", params: params.values()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrCreate returns the store with the given name, creating it when it
// does not exist yet.
func (kc *KeyValueStoreCollectionClient) GetOrCreate(ctx context.Context, name string) (*KeyValueStore, error) {
	if err := requireNonEmpty("store name", name); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("name", name)
	var store KeyValueStore
	if _, err := kc.c.do(ctx, requestSpec{method: http.MethodPost, path: "/v2/key-value-stores", params: params}, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// KeyValueStoreClient targets a single store by ID or username~store-name
// slug.
type KeyValueStoreClient struct {
	c  *Client
	id string
}

// KeyValueStore returns a client for the store with the given ID.
func (c *Client) KeyValueStore(id string) *KeyValueStoreClient {
	return &KeyValueStoreClient{c: c, id: id}
}

func (kc *KeyValueStoreClient) path() string {
	return "/v2/key-value-stores/" + url.PathEscape(kc.id)
}

func (kc *KeyValueStoreClient) recordPath(key string) string {
	return kc.path() + "/records/" + url.PathEscape(key)
}

// Get fetches the store. A missing store yields (nil, nil).
func (kc *KeyValueStoreClient) Get(ctx context.Context) (*KeyValueStore, error) {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return nil, err
	}
	var store KeyValueStore
	if _, err := kc.c.do(ctx, requestSpec{method: http.MethodGet, path: kc.path()}, &store); err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Update renames the store.
func (kc *KeyValueStoreClient) Update(ctx context.Context, name string) (*KeyValueStore, error) {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("store name", name); err != nil {
		return nil, err
	}
	body := map[string]string{"name": name}
	var store KeyValueStore
	if _, err := kc.c.do(ctx, requestSpec{method: http.MethodPut, path: kc.path(), jsonIn: body}, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// Delete removes the store and all its records.
func (kc *KeyValueStoreClient) Delete(ctx context.Context) error {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return err
	}
	_, err := kc.c.do(ctx, requestSpec{method: http.MethodDelete, path: kc.path()}, nil)
	return err
}

// StoreKey is one entry of a ListKeys page.
type StoreKey struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// ListKeysParams configures key listing. Zero values are omitted.
type ListKeysParams struct {
	Limit             int
	ExclusiveStartKey string
}

// KeyListing is the result of one ListKeys call.
type KeyListing struct {
	Items                 []StoreKey `json:"items"`
	Count                 int64      `json:"count"`
	Limit                 int64      `json:"limit"`
	ExclusiveStartKey     string     `json:"exclusiveStartKey,omitempty"`
	NextExclusiveStartKey string     `json:"nextExclusiveStartKey,omitempty"`
	IsTruncated           bool       `json:"isTruncated"`
}

// ListKeys returns one page of record keys, ordered lexicographically.
func (kc *KeyValueStoreClient) ListKeys(ctx context.Context, params ListKeysParams) (*KeyListing, error) {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return nil, err
	}
	values := url.Values{}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.ExclusiveStartKey != "" {
		values.Set("exclusiveStartKey", params.ExclusiveStartKey)
	}
	var listing KeyListing
	if _, err := kc.c.do(ctx, requestSpec{method: http.MethodGet, path: kc.path() + "/keys", params: values}, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Record is a stored record: the body bytes plus the content type the
// record was stored with.
type Record struct {
	Key         string
	Body        []byte
	ContentType string
}

// GetRecord fetches a record body. A missing record yields (nil, nil).
func (kc *KeyValueStoreClient) GetRecord(ctx context.Context, key string) (*Record, error) {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("record key", key); err != nil {
		return nil, err
	}
	spec := requestSpec{
		method: http.MethodGet,
		path:   kc.recordPath(key),
		rawOut: true,
	}
	data, headers, err := kc.c.doHeaders(ctx, spec, nil)
	if err != nil {
		if errIsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &Record{Key: key, Body: data, ContentType: headers.Get("Content-Type")}, nil
}

// RecordExists checks for a record without downloading its body.
func (kc *KeyValueStoreClient) RecordExists(ctx context.Context, key string) (bool, error) {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return false, err
	}
	if err := requireNonEmpty("record key", key); err != nil {
		return false, err
	}
	spec := requestSpec{
		method: http.MethodHead,
		path:   kc.recordPath(key),
		rawOut: true,
	}
	if _, err := kc.c.do(ctx, spec, nil); err != nil {
		if errIsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteRecord removes a record. Deleting a missing record is not an
// error on the platform side.
func (kc *KeyValueStoreClient) DeleteRecord(ctx context.Context, key string) error {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return err
	}
	if err := requireNonEmpty("record key", key); err != nil {
		return err
	}
	_, err := kc.c.do(ctx, requestSpec{method: http.MethodDelete, path: kc.recordPath(key)}, nil)
	return err
}
