package httpclient

import (
	"context"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns a page of the tools offered to the model
func (c *Client) ListTools(ctx context.Context, req schema.ListToolRequest) (*schema.ListToolResponse, error) {
	// Create request
	reqOpts := []client.RequestOpt{client.OptPath("tool")}
	q := url.Values{}
	if req.Limit != nil {
		q.Set("limit", strconv.FormatUint(uint64(*req.Limit), 10))
	}
	if req.Offset > 0 {
		q.Set("offset", strconv.FormatUint(uint64(req.Offset), 10))
	}
	if len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ListToolResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
