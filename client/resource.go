package client

import (
	"context"
	"strings"

	"github.com/indigo-web/embedhttp/http"
)

// Resource is a handle over a base URL. Paths of requests sent through it are relative
// to the base one, and the requests share pooled connections to the host.
type Resource struct {
	client *Client
	ep     endpoint
}

// Resource returns a handle over the base URL. Its query, if any, is ignored.
func (c *Client) Resource(baseURL string) (*Resource, error) {
	ep, err := parseURL(baseURL)
	if err != nil {
		return nil, err
	}

	return &Resource{client: c, ep: ep}, nil
}

// Do sends the request, prefixing its path with the base one. An empty path addresses
// the base itself.
func (r *Resource) Do(ctx context.Context, request *http.Request) (*Response, error) {
	req := *request
	req.Path = r.Path(request.Path)

	return r.client.do(ctx, r.ep, &req)
}

// Path joins the base path with the relative one.
func (r *Resource) Path(path string) string {
	switch {
	case len(path) == 0:
		if len(r.ep.base) == 0 {
			return "/"
		}

		return r.ep.base
	case strings.HasPrefix(path, "/"):
		return r.ep.base + path
	default:
		return r.ep.base + "/" + path
	}
}
