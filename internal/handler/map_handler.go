package handler

import (
	"net/http"

	"pinmap/internal/configs"
	"pinmap/internal/pkg/resp"
)

// Viewport is the map camera position.
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
}

// MapConfig is the static configuration a client needs to render tiles.
type MapConfig struct {
	TileToken string   `json:"tileToken"`
	StyleURL  string   `json:"styleUrl"`
	Viewport  Viewport `json:"viewport"`
}

// HandleMapConfig returns the tile credential, style and default viewport.
func HandleMapConfig(deps *AppDeps) http.HandlerFunc {
	cfg := MapConfig{
		TileToken: deps.Config.MapTileToken,
		StyleURL:  deps.Config.MapStyleURL,
		Viewport: Viewport{
			Latitude:  configs.DefaultLatitude,
			Longitude: configs.DefaultLongitude,
			Zoom:      configs.DefaultZoom,
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, cfg)
	}
}
