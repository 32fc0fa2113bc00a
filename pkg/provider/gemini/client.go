/*
gemini implements a model backend for the Google Gemini REST API.
https://ai.google.dev/gemini-api/docs
*/
package gemini

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
	stylist "github.com/mutablelogic/go-stylist"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	model       string
	temperature *float64
}

var _ stylist.ModelBackend = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint     = "https://generativelanguage.googleapis.com/v1beta"
	defaultName  = "gemini"
	DefaultModel = "gemini-2.0-flash"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Gemini backend with the given API key and model. The
// endpoint can be overridden with client.OptEndpoint. Completions are
// requested with temperature zero.
func New(apiKey, model string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, stylist.ErrBadParameter.With("missing api key")
	}
	if model == "" {
		model = DefaultModel
	}
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	opts = append(opts, client.OptHeader("x-goog-api-key", apiKey))
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{Client: c, model: model, temperature: types.Ptr(0.0)}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the backend name
func (*Client) Name() string {
	return defaultName
}

// Model returns the model used for completions
func (c *Client) Model() string {
	return c.model
}

// SetTemperature sets the sampling temperature (0.0 to 2.0)
func (c *Client) SetTemperature(value float64) error {
	if value < 0 || value > 2 {
		return stylist.ErrBadParameter.With("temperature must be between 0.0 and 2.0")
	}
	c.temperature = &value
	return nil
}
