package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	stylist "github.com/mutablelogic/go-stylist"
	fashion "github.com/mutablelogic/go-stylist/pkg/fashion"
	httpclient "github.com/mutablelogic/go-stylist/pkg/httpclient"
	httphandler "github.com/mutablelogic/go-stylist/pkg/httphandler"
	manager "github.com/mutablelogic/go-stylist/pkg/manager"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

type echoBackend struct{}

func (echoBackend) Name() string { return "echo" }

func (echoBackend) Complete(_ context.Context, transcript schema.Transcript, _ schema.Catalogue) (*schema.Completion, error) {
	return &schema.Completion{Text: "echo: " + transcript[1].Text}, nil
}

// newTestServer serves the chat service handlers under /api
func newTestServer(t *testing.T) *httpclient.Client {
	t.Helper()
	tk, err := tool.NewToolkit(fashion.NewTools()...)
	require.NoError(t, err)
	m, err := manager.NewManager(echoBackend{}, manager.WithToolkit(tk))
	require.NoError(t, err)

	router, err := httprouter.NewRouter(context.Background(), http.NewServeMux(), "/api", "", "test", "v1")
	require.NoError(t, err)
	require.NoError(t, httphandler.RegisterHandlers(m, router))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := httpclient.New(srv.URL + "/api")
	require.NoError(t, err)
	return c
}

func TestChat_OK(t *testing.T) {
	assert := assert.New(t)
	c := newTestServer(t)

	response, err := c.Chat(context.Background(), schema.ChatRequest{Query: "hello"})
	require.NoError(t, err)
	assert.Equal("echo: hello", response.Response)

	_, err = c.Chat(context.Background(), schema.ChatRequest{})
	assert.ErrorIs(err, stylist.ErrBadParameter)
}

func TestHealth_OK(t *testing.T) {
	assert := assert.New(t)
	response, err := newTestServer(t).Health(context.Background())
	require.NoError(t, err)
	assert.Equal("ok", response.Status)
	assert.Equal("echo", response.Backend)
}

func TestListTools_OK(t *testing.T) {
	assert := assert.New(t)
	c := newTestServer(t)

	response, err := c.ListTools(context.Background(), schema.ListToolRequest{})
	require.NoError(t, err)
	assert.Equal(uint(3), response.Count)
	assert.Len(response.Body, 3)

	limit := uint(2)
	response, err = c.ListTools(context.Background(), schema.ListToolRequest{Limit: &limit, Offset: 2})
	require.NoError(t, err)
	assert.Equal([]string{"get_ootd_history"}, response.Body.Names())
}
