package gemini

import (
	"context"
	"errors"

	// Packages
	client "github.com/mutablelogic/go-client"
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete sends the transcript and catalogue to the model and returns the
// completion for the next turn
//
// See: https://ai.google.dev/api/generate-content
func (c *Client) Complete(ctx context.Context, transcript schema.Transcript, catalogue schema.Catalogue) (*schema.Completion, error) {
	payload, err := client.NewJSONRequest(c.generateRequest(transcript, catalogue))
	if err != nil {
		return nil, stylist.ErrBackendProtocol.Wrap(err)
	}

	// Send the request
	var response geminiGenerateResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("models", c.model+":generateContent")); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, stylist.ErrBackendUnavailable.Wrap(err)
	}

	// Return the completion
	return completionFromResponse(&response)
}
