/*
Package gate implements the authorization gate shared by every resolver.

Authorization is orthogonal to business logic: any Resolver can be lifted into an authenticated
variant by composition, without the resolver knowing about it. The gate is all-or-nothing per
operation.
*/
package gate

import (
	"context"

	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/logx"
	"pinmap/internal/pkg/metrics"
)

// Resolver is an operation invoked with typed arguments inside a request context.
type Resolver[A, R any] func(ctx context.Context, args A) (R, error)

// Middleware decorates a Resolver.
type Middleware[A, R any] func(next Resolver[A, R]) Resolver[A, R]

// Chain composes middlewares so that the first one listed is the outermost.
func Chain[A, R any](ms ...Middleware[A, R]) Middleware[A, R] {
	return func(next Resolver[A, R]) Resolver[A, R] {
		for i := len(ms) - 1; i >= 0; i-- {
			next = ms[i](next)
		}
		return next
	}
}

// Logged logs every invocation of the named operation together with its caller.
// It only observes; the result of next is returned untouched.
func Logged[A, R any](operation string) Middleware[A, R] {
	return func(next Resolver[A, R]) Resolver[A, R] {
		return func(ctx context.Context, args A) (R, error) {
			caller := "anonymous"
			if u := user.CurrentUser(ctx); u != nil {
				caller = u.ID
			}

			logx.Ctx(ctx).Debug().
				Str("operation", operation).
				Str("caller", caller).
				Msg("Resolver invoked")

			return next(ctx, args)
		}
	}
}

// RequireUser rejects anonymous callers with ErrUnauthenticated before next runs.
// Authenticated callers reach next unchanged and its result or error is forwarded verbatim.
func RequireUser[A, R any](operation string) Middleware[A, R] {
	return func(next Resolver[A, R]) Resolver[A, R] {
		return func(ctx context.Context, args A) (R, error) {
			if user.CurrentUser(ctx) == nil {
				metrics.GateDecisions.WithLabelValues(operation, metrics.DecisionDenied).Inc()

				var zero R
				return zero, errs.NewError(errs.ErrUnauthenticated)
			}

			metrics.GateDecisions.WithLabelValues(operation, metrics.DecisionAllowed).Inc()
			return next(ctx, args)
		}
	}
}

// Authenticated lifts next into a logged, authenticated operation named operation.
func Authenticated[A, R any](operation string, next Resolver[A, R]) Resolver[A, R] {
	return Chain(Logged[A, R](operation), RequireUser[A, R](operation))(next)
}
