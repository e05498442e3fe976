package handler

import (
	"net/http"

	"pinmap/internal/app/gate"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/resp"
)

// binder decodes the arguments of an operation from the request.
type binder[A any] func(w http.ResponseWriter, r *http.Request) (A, *errs.CustomError)

func noArgs[A any](w http.ResponseWriter, r *http.Request) (A, *errs.CustomError) {
	var zero A
	return zero, nil
}

// serve adapts a resolver to HTTP: bind the arguments, run the operation inside the
// request context, and answer with the standard envelope.
func serve[A, R any](op gate.Resolver[A, R], bind binder[A]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, bindErr := bind(w, r)
		if bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		result, err := op(r.Context(), args)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, result)
	}
}
