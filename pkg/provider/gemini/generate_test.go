package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	stylist "github.com/mutablelogic/go-stylist"
	gemini "github.com/mutablelogic/go-stylist/pkg/provider/gemini"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// newServer returns a test server which records the request body and
// responds with the given status and body
func newServer(t *testing.T, status int, body string, request *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "key" || !strings.HasSuffix(r.URL.Path, ":generateContent") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if request != nil {
			_ = json.NewDecoder(r.Body).Decode(request)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *gemini.Client {
	t.Helper()
	c, err := gemini.New("key", "", client.OptEndpoint(srv.URL))
	require.NoError(t, err)
	return c
}

func Test_New_001(t *testing.T) {
	assert := assert.New(t)
	_, err := gemini.New("", "")
	assert.ErrorIs(err, stylist.ErrBadParameter)

	c, err := gemini.New("key", "")
	assert.NoError(err)
	assert.Equal("gemini", c.Name())
	assert.Equal(gemini.DefaultModel, c.Model())
	assert.Error(c.SetTemperature(3))
	assert.NoError(c.SetTemperature(0))
}

func Test_Complete_001(t *testing.T) {
	// A text answer is returned as a terminal completion
	assert := assert.New(t)
	var request map[string]any
	srv := newServer(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"},{"text":" there"}]},"finishReason":"STOP"}]}`, &request)

	completion, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("Be brief", "Hi"), nil)
	require.NoError(t, err)
	assert.Equal("Hello there", completion.Text)
	assert.Empty(completion.ToolCalls)
	assert.Equal("STOP", completion.Reason)

	// The system message is sent as the system instruction
	assert.NotNil(request["systemInstruction"])
	assert.Len(request["contents"], 1)
	assert.Nil(request["tools"])
}

func Test_Complete_002(t *testing.T) {
	// Function calls are returned with generated identifiers
	assert := assert.New(t)
	srv := newServer(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"functionCall":{"name":"get_member_profile","args":{"name":"홍길동"}}},{"functionCall":{"name":"get_current_weather","args":{"location":"Seoul"}}}]}}]}`, nil)

	catalogue := schema.Catalogue{
		{Name: "get_member_profile", Description: "Member", InputSchema: &jsonschema.Schema{Type: "object"}},
		{Name: "get_current_weather", Description: "Weather"},
	}
	completion, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "What should I wear?"), catalogue)
	require.NoError(t, err)
	require.Len(t, completion.ToolCalls, 2)
	assert.Equal("get_member_profile", completion.ToolCalls[0].Name)
	assert.Equal("홍길동", completion.ToolCalls[0].Arguments["name"])
	assert.NotEmpty(completion.ToolCalls[0].ID)
	assert.NotEqual(completion.ToolCalls[0].ID, completion.ToolCalls[1].ID)
}

func Test_Complete_003(t *testing.T) {
	// Tool results are grouped into a single user turn with their names
	assert := assert.New(t)
	var request map[string]any
	srv := newServer(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Wear a coat"}]}}]}`, &request)

	a := schema.ToolCall{ID: "a", Name: "get_member_profile"}
	b := schema.ToolCall{ID: "b", Name: "get_current_weather"}
	transcript := schema.NewTranscript("", "What should I wear?")
	transcript.Append(
		schema.NewAssistantMessage("", a, b),
		schema.NewToolResultMessage(a, "profile"),
		schema.NewToolResultMessage(b, "cold"),
	)
	catalogue := schema.Catalogue{{Name: "get_member_profile"}, {Name: "get_current_weather"}}

	completion, err := newClient(t, srv).Complete(context.Background(), transcript, catalogue)
	require.NoError(t, err)
	assert.Equal("Wear a coat", completion.Text)

	contents, ok := request["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 3)
	assert.Equal("model", contents[1].(map[string]any)["role"])
	results := contents[2].(map[string]any)
	assert.Equal("user", results["role"])
	parts := results["parts"].([]any)
	require.Len(t, parts, 2)
	response := parts[1].(map[string]any)["functionResponse"].(map[string]any)
	assert.Equal("get_current_weather", response["name"])
	assert.Equal("cold", response["response"].(map[string]any)["result"])

	// The catalogue is sent as function declarations with a schema
	tools := request["tools"].([]any)
	require.Len(t, tools, 1)
	decls := tools[0].(map[string]any)["functionDeclarations"].([]any)
	require.Len(t, decls, 2)
	assert.Equal("object", decls[0].(map[string]any)["parametersJsonSchema"].(map[string]any)["type"])
}

func Test_Complete_004(t *testing.T) {
	// Protocol and transport failures are classified
	assert := assert.New(t)

	srv := newServer(t, http.StatusOK, `{"candidates":[]}`, nil)
	_, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.ErrorIs(err, stylist.ErrBackendProtocol)

	srv = newServer(t, http.StatusOK, `{"candidates":[{"finishReason":"MALFORMED_FUNCTION_CALL"}]}`, nil)
	_, err = newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.ErrorIs(err, stylist.ErrBackendProtocol)

	srv = newServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`, nil)
	_, err = newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.ErrorIs(err, stylist.ErrBackendUnavailable)
}

func Test_Complete_005(t *testing.T) {
	// A candidate without content is an empty answer
	assert := assert.New(t)
	srv := newServer(t, http.StatusOK, `{"candidates":[{"finishReason":"STOP"}]}`, nil)
	completion, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.NoError(err)
	assert.Equal("", completion.Text)
	assert.Empty(completion.ToolCalls)
}

func Test_Complete_006(t *testing.T) {
	// An empty answer is a protocol failure unless the model stopped normally
	tests := []struct {
		name string
		body string
		err  bool
	}{
		{"SAFETY", `{"candidates":[{"finishReason":"SAFETY"}]}`, true},
		{"MAX_TOKENS", `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]},"finishReason":"MAX_TOKENS"}]}`, true},
		{"unset", `{"candidates":[{"content":{"role":"model","parts":[]}}]}`, true},
		{"STOP", `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]},"finishReason":"STOP"}]}`, false},
		{"MAX_TOKENS with text", `{"candidates":[{"content":{"role":"model","parts":[{"text":"Wear a"}]},"finishReason":"MAX_TOKENS"}]}`, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, test.body, nil)
			_, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
			if test.err {
				assert.ErrorIs(t, err, stylist.ErrBackendProtocol)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Complete_007(t *testing.T) {
	// Temperature zero is sent by default
	assert := assert.New(t)
	body := `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"}]},"finishReason":"STOP"}]}`

	var request map[string]any
	srv := newServer(t, http.StatusOK, body, &request)
	_, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	require.NoError(t, err)
	config, ok := request["generationConfig"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, config, "temperature")
	assert.Equal(float64(0), config["temperature"])

	request = nil
	c := newClient(t, srv)
	require.NoError(t, c.SetTemperature(1.5))
	_, err = c.Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	require.NoError(t, err)
	assert.Equal(1.5, request["generationConfig"].(map[string]any)["temperature"])
}
