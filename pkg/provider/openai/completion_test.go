package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	openai "github.com/mutablelogic/go-stylist/pkg/provider/openai"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, request *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusNotFound)
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

func newClient(t *testing.T, srv *httptest.Server) *openai.Client {
	t.Helper()
	c, err := openai.New("key", "", openai.WithBaseURL(srv.URL+"/v1"))
	require.NoError(t, err)
	return c
}

func Test_New_001(t *testing.T) {
	assert := assert.New(t)
	_, err := openai.New("", "")
	assert.ErrorIs(err, stylist.ErrBadParameter)
	_, err = openai.New("key", "", openai.WithBaseURL(""))
	assert.ErrorIs(err, stylist.ErrBadParameter)

	c, err := openai.New("key", "gpt-4o")
	assert.NoError(err)
	assert.Equal("openai", c.Name())
	assert.Equal("gpt-4o", c.Model())
	assert.Error(c.SetTemperature(-1))
}

func Test_Complete_001(t *testing.T) {
	// A text answer is returned as a terminal completion
	assert := assert.New(t)
	var request map[string]any
	srv := newServer(t, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Hello"},"finish_reason":"stop"}]}`, &request)

	completion, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("Be brief", "Hi"), nil)
	require.NoError(t, err)
	assert.Equal("Hello", completion.Text)
	assert.Empty(completion.ToolCalls)
	assert.Equal("stop", completion.Reason)

	messages := request["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal("system", messages[0].(map[string]any)["role"])
	assert.Equal("user", messages[1].(map[string]any)["role"])
	assert.Nil(request["tools"])
}

func Test_Complete_002(t *testing.T) {
	// Tool calls are decoded, and the catalogue is sent with tool choice auto
	assert := assert.New(t)
	var request map[string]any
	srv := newServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","tool_calls":[{"id":"call_1","type":"function","function":{"name":"get_korea_weather","arguments":"{\"city\":\"서울\"}"}}]},"finish_reason":"tool_calls"}]}`, &request)

	catalogue := schema.Catalogue{{Name: "get_korea_weather", Description: "Weather"}}
	completion, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "서울 날씨"), catalogue)
	require.NoError(t, err)
	require.Len(t, completion.ToolCalls, 1)
	assert.Equal("call_1", completion.ToolCalls[0].ID)
	assert.Equal("get_korea_weather", completion.ToolCalls[0].Name)
	assert.Equal("서울", completion.ToolCalls[0].Arguments["city"])

	assert.Equal("auto", request["tool_choice"])
	tools := request["tools"].([]any)
	require.Len(t, tools, 1)
	function := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal("get_korea_weather", function["name"])
	assert.Equal("object", function["parameters"].(map[string]any)["type"])
}

func Test_Complete_003(t *testing.T) {
	// Tool results are sent with their call identifiers
	assert := assert.New(t)
	var request map[string]any
	srv := newServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"Sunny"}}]}`, &request)

	call := schema.ToolCall{ID: "call_1", Name: "get_korea_weather", Arguments: map[string]any{"city": "서울"}}
	transcript := schema.NewTranscript("", "서울 날씨")
	transcript.Append(schema.NewAssistantMessage("", call), schema.NewToolResultMessage(call, "맑음"))

	_, err := newClient(t, srv).Complete(context.Background(), transcript, nil)
	require.NoError(t, err)

	messages := request["messages"].([]any)
	require.Len(t, messages, 4)
	assistant := messages[2].(map[string]any)
	calls := assistant["tool_calls"].([]any)
	require.Len(t, calls, 1)
	assert.JSONEq(`{"city":"서울"}`, calls[0].(map[string]any)["function"].(map[string]any)["arguments"].(string))
	result := messages[3].(map[string]any)
	assert.Equal("tool", result["role"])
	assert.Equal("call_1", result["tool_call_id"])
	assert.Equal("맑음", result["content"])
}

func Test_Complete_004(t *testing.T) {
	// Protocol and transport failures are classified
	assert := assert.New(t)

	srv := newServer(t, http.StatusOK, `{"choices":[]}`, nil)
	_, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.ErrorIs(err, stylist.ErrBackendProtocol)

	srv = newServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","tool_calls":[{"id":"x","type":"function","function":{"name":"f","arguments":"not json"}}]}}]}`, nil)
	_, err = newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.ErrorIs(err, stylist.ErrBackendProtocol)

	srv = newServer(t, http.StatusServiceUnavailable, `{"error":{"message":"overloaded","type":"server_error"}}`, nil)
	_, err = newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	assert.ErrorIs(err, stylist.ErrBackendUnavailable)
}

func Test_Complete_005(t *testing.T) {
	// Temperature zero is sent rather than omitted
	assert := assert.New(t)
	body := `{"choices":[{"message":{"role":"assistant","content":"Hello"},"finish_reason":"stop"}]}`

	var request map[string]any
	srv := newServer(t, http.StatusOK, body, &request)
	_, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	require.NoError(t, err)
	require.Contains(t, request, "temperature")
	assert.InDelta(0, request["temperature"], 1e-6)

	request = nil
	c := newClient(t, srv)
	require.NoError(t, c.SetTemperature(0.7))
	_, err = c.Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
	require.NoError(t, err)
	assert.InDelta(0.7, request["temperature"], 1e-6)
}

func Test_Complete_006(t *testing.T) {
	// An empty answer is a protocol failure unless the model stopped normally
	tests := []struct {
		reason string
		err    bool
	}{
		{"stop", false},
		{"length", true},
		{"content_filter", true},
		{"", true},
	}
	for _, test := range tests {
		t.Run(test.reason, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":""},"finish_reason":"`+test.reason+`"}]}`, nil)
			completion, err := newClient(t, srv).Complete(context.Background(), schema.NewTranscript("", "Hi"), nil)
			if test.err {
				assert.ErrorIs(t, err, stylist.ErrBackendProtocol)
			} else if assert.NoError(t, err) {
				assert.Empty(t, completion.Text)
			}
		})
	}
}

func Test_New_002(t *testing.T) {
	c, err := openai.New("key", "")
	require.NoError(t, err)
	assert.Equal(t, openai.DefaultModel, c.Model())
	assert.Equal(t, "gpt-4o", c.Model())
}
