package handler

import (
	"pinmap/internal/app/resolver"
	"pinmap/internal/app/storage"
	"pinmap/internal/configs"
	"pinmap/internal/pkg/limiter"
)

// AppDeps bundles everything the HTTP layer needs.
type AppDeps struct {
	Config    *configs.AppConfig
	Resolvers *resolver.Resolvers

	// Storage is nil when S3 is not configured.
	Storage storage.StorageService

	// CreateLimiter throttles createPin per caller.
	CreateLimiter *limiter.KeyedRateLimiter
}
