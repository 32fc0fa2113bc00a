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

// Path: /tool
func ToolListHandler(manager *manager.Manager) (string, httprequest.PathItem) {
	return "tool", httprequest.NewPathItem("Tools", "List the tools offered to the model", tag).
		Get(func(w http.ResponseWriter, r *http.Request) {
			var req schema.ListToolRequest
			if err := httprequest.Query(r.URL.Query(), &req); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			resp, err := manager.ListTools(r.Context(), req)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		}, "List tools")
}
