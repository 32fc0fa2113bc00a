package httphandler

import (
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	manager "github.com/mutablelogic/go-stylist/pkg/manager"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /chat
func ChatHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "chat", httprequest.NewPathItem("Chat", "Ask the stylist a question and get an answer", tag).
		Post(func(w http.ResponseWriter, r *http.Request) {
			var req schema.ChatRequest
			if err := httprequest.Read(r, &req); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			resp, err := manager.Chat(r.Context(), req)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		}, "Ask a question")
}

// Path: /health
func HealthHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "health", httprequest.NewPathItem("Health", "Service status and configured tool servers", tag).
		Get(func(w http.ResponseWriter, r *http.Request) {
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), manager.Health(r.Context()))
		}, "Get service status")
}
