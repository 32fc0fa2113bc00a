/*
openai implements a model backend for the OpenAI chat completions API
https://platform.openai.com/docs/api-reference/chat
*/
package openai

import (
	"net/http"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	openai "github.com/sashabaranov/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*openai.Client
	model       string
	temperature float32
}

// Opt is an option applied to the underlying client configuration
type Opt func(*openai.ClientConfig) error

var _ stylist.ModelBackend = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName  = "openai"
	DefaultModel = "gpt-4o"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new OpenAI backend with the given API key and model.
// Completions are requested with temperature zero.
func New(apiKey, model string, opts ...Opt) (*Client, error) {
	if apiKey == "" {
		return nil, stylist.ErrBadParameter.With("missing api key")
	}
	if model == "" {
		model = DefaultModel
	}
	config := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	return &Client{
		Client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithBaseURL sets the API endpoint, which should include the version path
func WithBaseURL(url string) Opt {
	return func(config *openai.ClientConfig) error {
		if url == "" {
			return stylist.ErrBadParameter.With("missing base url")
		}
		config.BaseURL = url
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(client *http.Client) Opt {
	return func(config *openai.ClientConfig) error {
		if client == nil {
			return stylist.ErrBadParameter.With("missing http client")
		}
		config.HTTPClient = client
		return nil
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
func (c *Client) SetTemperature(value float32) error {
	if value < 0 || value > 2 {
		return stylist.ErrBadParameter.With("temperature must be between 0.0 and 2.0")
	}
	c.temperature = value
	return nil
}
