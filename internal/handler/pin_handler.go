/*
Package handler provides the HTTP transport for the pin resolvers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/resolver"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/req"
)

// HandleMe returns the caller's identity.
func HandleMe(deps *AppDeps) http.HandlerFunc {
	return serve(deps.Resolvers.Me, noArgs[resolver.NoArgs])
}

// HandleListPins returns every pin.
func HandleListPins(deps *AppDeps) http.HandlerFunc {
	return serve(deps.Resolvers.ListPins, noArgs[resolver.NoArgs])
}

// HandleCreatePin drops a new pin authored by the caller.
func HandleCreatePin(deps *AppDeps) http.HandlerFunc {
	return serve(deps.Resolvers.CreatePin, func(w http.ResponseWriter, r *http.Request) (pin.CreateInput, *errs.CustomError) {
		var input pin.CreateInput
		if err := req.BindJSON(w, r, &input); err != nil {
			return pin.CreateInput{}, err
		}
		return input, nil
	})
}

// HandleDeletePin removes one of the caller's pins and returns it.
func HandleDeletePin(deps *AppDeps) http.HandlerFunc {
	return serve(deps.Resolvers.DeletePin, func(w http.ResponseWriter, r *http.Request) (resolver.DeletePinArgs, *errs.CustomError) {
		return resolver.DeletePinArgs{PinID: chi.URLParam(r, "pinID")}, nil
	})
}
