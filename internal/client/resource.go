package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Payphone-Digital/dashboard/internal/listview"
)

// Row is an untyped record as the API returns it.
type Row = map[string]any

// Resource is one entity collection of the API, e.g. "users".
type Resource[T any] struct {
	c      *Client
	entity string
}

func NewResource[T any](c *Client, entity string) *Resource[T] {
	return &Resource[T]{c: c, entity: entity}
}

func (r *Resource[T]) Entity() string { return r.entity }

type listResponse[T any] struct {
	Items []T    `json:"items"`
	Total int64  `json:"total"`
	Query string `json:"query"`
}

// EncodeParams renders params as list endpoint query parameters.
func EncodeParams(params listview.RequestParams) string {
	values := url.Values{}
	values.Set(listview.KeyPage, strconv.Itoa(params.Page))
	values.Set(listview.KeyPageSize, strconv.Itoa(params.PageSize))
	if params.Q != nil {
		values.Set(listview.KeyQuery, *params.Q)
	}
	if col, dir := params.Order(); col != "" && dir != listview.OrderSortNone {
		values.Set(listview.KeyOrderBy, col)
		values.Set(listview.KeyOrderSort, dir.Token())
	}
	return values.Encode()
}

// Fetch loads one page. Identical concurrent fetches share a single request.
func (r *Resource[T]) Fetch(ctx context.Context, params listview.RequestParams) (listview.Page[T], error) {
	rawQuery := EncodeParams(params)
	path := apiPrefix + "/" + r.entity

	flight := strconv.FormatUint(r.c.writes.Load(), 10) + " " + path + "?" + rawQuery
	v, err, _ := r.c.group.Do(flight, func() (any, error) {
		var out listResponse[T]
		if err := r.c.do(ctx, http.MethodGet, path, rawQuery, nil, &out); err != nil {
			return nil, err
		}
		if out.Items == nil {
			out.Items = []T{}
		}
		return listview.Page[T]{Items: out.Items, Total: out.Total}, nil
	})
	if err != nil {
		return listview.Page[T]{}, err
	}
	return v.(listview.Page[T]), nil
}

// Delete removes the row identified by key.
func (r *Resource[T]) Delete(ctx context.Context, key listview.RowKey) error {
	path := apiPrefix + "/" + r.entity + "/" + url.PathEscape(key.String())
	if err := r.c.do(ctx, http.MethodDelete, path, "", nil, nil); err != nil {
		return err
	}
	r.c.writes.Add(1)
	return nil
}
