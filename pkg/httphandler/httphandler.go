package httphandler

import (
	"errors"
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	stylist "github.com/mutablelogic/go-stylist"
	manager "github.com/mutablelogic/go-stylist/pkg/manager"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const tag = "stylist"

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the chat, health and tool endpoints relative to
// the router prefix. Every endpoint passes through the router middleware.
func RegisterHandlers(manager *manager.Manager, router *httprouter.Router) error {
	var result error

	// Convenience function to register a path item and accumulate any errors
	register := func(path string, item httprequest.PathItem) {
		result = errors.Join(result, router.RegisterPath(path, nil, item))
	}

	// Register handlers
	register(ChatHandler(manager))
	register(HealthHandler(manager))
	register(ToolListHandler(manager))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a stylist.Err to an httpresponse.Err, preserving the
// original error message. Backend failures map to 502 and unknown error
// codes to 500.
func httpErr(err error) error {
	var stylistErr stylist.Err
	if !errors.As(err, &stylistErr) {
		return err
	}
	switch stylistErr {
	case stylist.ErrNotFound, stylist.ErrToolNotFound:
		return httpresponse.ErrNotFound.With(err)
	case stylist.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case stylist.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case stylist.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case stylist.ErrServiceUnavailable:
		return httpresponse.Err(http.StatusServiceUnavailable).With(err)
	case stylist.ErrBackendUnavailable, stylist.ErrBackendProtocol:
		return httpresponse.Err(http.StatusBadGateway).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
