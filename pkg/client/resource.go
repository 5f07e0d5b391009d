package client

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is the list/get/create/update/delete surface shared by every
// collection the persistence service exposes.
type Resource[T, D, P any] struct {
	http     *HttpClient
	basePath string
}

func newResource[T, D, P any](c *HttpClient, basePath string) *Resource[T, D, P] {
	return &Resource[T, D, P]{http: c, basePath: basePath}
}

func (r *Resource[T, D, P]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.basePath)
}

func (r *Resource[T, D, P]) Get(ctx context.Context, id string) (T, error) {
	return r.one(ctx, http.MethodGet, r.idPath(id), nil, nil)
}

func (r *Resource[T, D, P]) Create(ctx context.Context, draft D) (T, error) {
	return r.one(ctx, http.MethodPost, r.basePath, draft, nil)
}

func (r *Resource[T, D, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	return r.one(ctx, http.MethodPut, r.idPath(id), patch, nil)
}

func (r *Resource[T, D, P]) Delete(ctx context.Context, id string) error {
	_, err := r.http.Do(ctx, http.MethodDelete, r.idPath(id), nil, nil)
	return err
}

func (r *Resource[T, D, P]) idPath(id string) string {
	return r.basePath + "/id/" + url.PathEscape(id)
}

func (r *Resource[T, D, P]) one(ctx context.Context, method, path string, body any, headers map[string]string) (T, error) {
	var record T
	resp, err := r.http.Do(ctx, method, path, body, headers)
	if err != nil {
		return record, err
	}
	err = resp.DecodeData(&record)
	return record, err
}

func (r *Resource[T, D, P]) list(ctx context.Context, path string) ([]T, error) {
	resp, err := r.http.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	records := []T{}
	if err := resp.DecodeData(&records); err != nil {
		return nil, err
	}
	return records, nil
}
