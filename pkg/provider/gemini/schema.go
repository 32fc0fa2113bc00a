package gemini

///////////////////////////////////////////////////////////////////////////////
// CONTENT

// geminiContent is a single turn in a conversation
type geminiContent struct {
	Role  string        `json:"role,omitempty"` // "user" or "model"
	Parts []*geminiPart `json:"parts"`
}

// geminiPart is one piece of content. Exactly one field is set.
type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

// geminiFunctionCall is a function the model wants to call
type geminiFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// geminiFunctionResponse is the result of a function call
type geminiFunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST AND RESPONSE

// geminiGenerateRequest is the body of a generateContent request
type geminiGenerateRequest struct {
	Contents          []*geminiContent        `json:"contents"`
	Tools             []*geminiTool           `json:"tools,omitempty"`
	ToolConfig        *geminiToolConfig       `json:"toolConfig,omitempty"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiGenerationConfig controls sampling
type geminiGenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

// geminiGenerateResponse is the body of a generateContent response
type geminiGenerateResponse struct {
	Candidates    []*geminiCandidate   `json:"candidates"`
	UsageMetadata *geminiUsageMetadata `json:"usageMetadata,omitempty"`
	ModelVersion  string               `json:"modelVersion,omitempty"`
}

// geminiCandidate is one generated response
type geminiCandidate struct {
	Content      *geminiContent `json:"content,omitempty"`
	FinishReason string         `json:"finishReason,omitempty"`
	Index        int            `json:"index,omitempty"`
}

// geminiUsageMetadata reports token counts for a generation request
type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount,omitempty"`
	CandidatesTokenCount int `json:"candidatesTokenCount,omitempty"`
	TotalTokenCount      int `json:"totalTokenCount,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// TOOLS

// geminiTool holds the function declarations the model may call
type geminiTool struct {
	FunctionDeclarations []*geminiFunctionDeclaration `json:"functionDeclarations,omitempty"`
}

// geminiFunctionDeclaration describes a callable function
type geminiFunctionDeclaration struct {
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	ParametersJSONSchema map[string]any `json:"parametersJsonSchema,omitempty"`
}

// geminiToolConfig configures tool behaviour
type geminiToolConfig struct {
	FunctionCallingConfig *geminiFunctionCallingConfig `json:"functionCallingConfig,omitempty"`
}

// geminiFunctionCallingConfig controls how the model calls functions
type geminiFunctionCallingConfig struct {
	Mode string `json:"mode,omitempty"` // AUTO, ANY, NONE
}

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
	geminiModeAuto  = "AUTO"

	geminiFinishReasonStop                  = "STOP"
	geminiFinishReasonMalformedFunctionCall = "MALFORMED_FUNCTION_CALL"
)
