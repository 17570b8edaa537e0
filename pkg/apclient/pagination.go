package apclient

import (
	"net/url"
	"strconv"
)

// ListPage is one page of a paginated collection endpoint.
type ListPage[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int64 `json:"offset"`
	Limit  int64 `json:"limit"`
	Count  int64 `json:"count"`
	Desc   bool  `json:"desc"`
}

// ListParams are the common pagination parameters accepted by collection
// endpoints. Zero values are omitted from the query string.
type ListParams struct {
	Limit  int
	Offset int
	Desc   bool
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Desc {
		v.Set("desc", "true")
	}
	return v
}
