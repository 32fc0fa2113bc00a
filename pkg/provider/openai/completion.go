package openai

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	openai "github.com/sashabaranov/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Complete sends the transcript and catalogue to the model and returns the
// completion for the next turn
func (c *Client) Complete(ctx context.Context, transcript schema.Transcript, catalogue schema.Catalogue) (*schema.Completion, error) {
	response, err := c.CreateChatCompletion(ctx, c.request(transcript, catalogue))
	if err != nil {
		return nil, classify(err)
	}
	if len(response.Choices) == 0 {
		return nil, stylist.ErrBackendProtocol.With("no choices in response")
	}
	return completionFromMessage(response.Choices[0].Message, string(response.Choices[0].FinishReason))
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// request builds a chat completion request
func (c *Client) request(transcript schema.Transcript, catalogue schema.Catalogue) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(transcript)),
		Temperature: c.temperature,
	}
	if req.Temperature == 0 {
		// Zero is omitted on the wire, which selects the server default
		req.Temperature = math.SmallestNonzeroFloat32
	}
	for _, message := range transcript {
		req.Messages = append(req.Messages, messageFromSchema(message))
	}
	if len(catalogue) > 0 {
		req.Tools = make([]openai.Tool, 0, len(catalogue))
		for _, t := range catalogue {
			req.Tools = append(req.Tools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Schema(),
				},
			})
		}
		req.ToolChoice = "auto"
	}
	return req
}

// messageFromSchema converts a transcript message to the wire format
func messageFromSchema(message *schema.Message) openai.ChatCompletionMessage {
	switch message.Role {
	case schema.RoleSystem:
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: message.Text}
	case schema.RoleAssistant:
		result := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: message.Text}
		for _, call := range message.ToolCalls {
			args := "{}"
			if len(call.Arguments) > 0 {
				if data, err := json.Marshal(call.Arguments); err == nil {
					args = string(data)
				}
			}
			result.ToolCalls = append(result.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: args,
				},
			})
		}
		return result
	case schema.RoleTool:
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleTool, Content: message.Text, ToolCallID: message.ToolCallID}
	default:
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message.Text}
	}
}

// completionFromMessage converts the first choice to a completion. Tool call
// arguments must decode to a JSON object, and an empty answer is only
// accepted when the model stopped normally.
func completionFromMessage(message openai.ChatCompletionMessage, reason string) (*schema.Completion, error) {
	completion := &schema.Completion{
		Text:   message.Content,
		Reason: reason,
	}
	for _, call := range message.ToolCalls {
		if call.Function.Name == "" {
			return nil, stylist.ErrBackendProtocol.With("tool call without a name")
		}
		var args map[string]any
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return nil, stylist.ErrBackendProtocol.Withf("arguments for %q: %v", call.Function.Name, err)
			}
		}
		completion.ToolCalls = append(completion.ToolCalls, schema.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: args,
		})
	}
	if len(completion.ToolCalls) == 0 && completion.Text == "" && reason != string(openai.FinishReasonStop) {
		return nil, stylist.ErrBackendProtocol.Withf("empty answer, finish reason %q", reason)
	}
	return completion, nil
}

// classify maps client errors to backend errors
func classify(err error) error {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &apiErr):
		return stylist.ErrBackendUnavailable.Withf("status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	case errors.As(err, &reqErr):
		return stylist.ErrBackendUnavailable.Withf("status %d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	default:
		return stylist.ErrBackendUnavailable.Wrap(err)
	}
}
