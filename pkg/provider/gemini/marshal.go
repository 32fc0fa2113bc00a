package gemini

import (
	"encoding/json"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TRANSCRIPT → GEMINI WIRE FORMAT (OUTBOUND)

// generateRequest builds a generateContent request from a transcript and
// a catalogue. The system message becomes the system instruction, and
// consecutive tool results are grouped into a single user turn.
func (c *Client) generateRequest(transcript schema.Transcript, catalogue schema.Catalogue) *geminiGenerateRequest {
	req := &geminiGenerateRequest{
		Contents: make([]*geminiContent, 0, len(transcript)),
	}
	if c.temperature != nil {
		req.GenerationConfig = &geminiGenerationConfig{Temperature: c.temperature}
	}

	var results *geminiContent
	for _, message := range transcript {
		if message.Role != schema.RoleTool {
			results = nil
		}
		switch message.Role {
		case schema.RoleSystem:
			if message.Text != "" {
				req.SystemInstruction = &geminiContent{Parts: []*geminiPart{{Text: message.Text}}}
			}
		case schema.RoleUser:
			req.Contents = append(req.Contents, &geminiContent{
				Role:  geminiRoleUser,
				Parts: []*geminiPart{{Text: message.Text}},
			})
		case schema.RoleAssistant:
			content := &geminiContent{Role: geminiRoleModel}
			if message.Text != "" {
				content.Parts = append(content.Parts, &geminiPart{Text: message.Text})
			}
			for _, call := range message.ToolCalls {
				content.Parts = append(content.Parts, &geminiPart{
					FunctionCall: &geminiFunctionCall{Name: call.Name, Args: call.Arguments},
				})
			}
			req.Contents = append(req.Contents, content)
		case schema.RoleTool:
			if results == nil {
				results = &geminiContent{Role: geminiRoleUser}
				req.Contents = append(req.Contents, results)
			}
			results.Parts = append(results.Parts, &geminiPart{
				FunctionResponse: &geminiFunctionResponse{
					Name:     message.Name,
					Response: map[string]any{"result": message.Text},
				},
			})
		}
	}

	if decls := functionDeclarations(catalogue); len(decls) > 0 {
		req.Tools = []*geminiTool{{FunctionDeclarations: decls}}
		req.ToolConfig = &geminiToolConfig{
			FunctionCallingConfig: &geminiFunctionCallingConfig{Mode: geminiModeAuto},
		}
	}
	return req
}

// functionDeclarations converts a catalogue to function declarations, with
// each input schema converted to a map via a JSON round-trip
func functionDeclarations(catalogue schema.Catalogue) []*geminiFunctionDeclaration {
	decls := make([]*geminiFunctionDeclaration, 0, len(catalogue))
	for _, t := range catalogue {
		decl := &geminiFunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if data, err := json.Marshal(t.Schema()); err == nil {
			var m map[string]any
			if err := json.Unmarshal(data, &m); err == nil {
				decl.ParametersJSONSchema = m
			}
		}
		decls = append(decls, decl)
	}
	return decls
}

///////////////////////////////////////////////////////////////////////////////
// GEMINI WIRE FORMAT → COMPLETION (INBOUND)

// completionFromResponse converts the first candidate of a response to a
// completion. Function calls are given identifiers, since the API does not
// provide them. A candidate stopped for safety or token limits with nothing
// to show is a protocol failure.
func completionFromResponse(response *geminiGenerateResponse) (*schema.Completion, error) {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0] == nil {
		return nil, stylist.ErrBackendProtocol.With("no candidates in response")
	}
	candidate := response.Candidates[0]
	if candidate.FinishReason == geminiFinishReasonMalformedFunctionCall {
		return nil, stylist.ErrBackendProtocol.With("malformed function call")
	}

	completion := &schema.Completion{Reason: candidate.FinishReason}
	var text []string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			switch {
			case part == nil:
				continue
			case part.FunctionCall != nil:
				if part.FunctionCall.Name == "" {
					return nil, stylist.ErrBackendProtocol.With("function call without a name")
				}
				completion.ToolCalls = append(completion.ToolCalls, schema.ToolCall{
					ID:        uuid.New().String(),
					Name:      part.FunctionCall.Name,
					Arguments: part.FunctionCall.Args,
				})
			case part.Text != "":
				text = append(text, part.Text)
			}
		}
	}
	completion.Text = strings.Join(text, "")

	// An empty answer is only accepted when the model stopped normally
	if len(completion.ToolCalls) == 0 && completion.Text == "" && candidate.FinishReason != geminiFinishReasonStop {
		return nil, stylist.ErrBackendProtocol.Withf("empty answer, finish reason %q", candidate.FinishReason)
	}
	return completion, nil
}
