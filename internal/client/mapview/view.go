package mapview

import (
	"pinmap/internal/app/pin"
)

// Marker colours.
const (
	ColorUser   = "red"
	ColorDraft  = "hotpink"
	ColorNewPin = "limegreen"
	ColorPin    = "darkblue"
)

// MarkerKind tells what a marker stands for.
type MarkerKind string

const (
	MarkerUser  MarkerKind = "user"
	MarkerDraft MarkerKind = "draft"
	MarkerPin   MarkerKind = "pin"
)

// Position is a point on the map.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Viewport is the map camera.
type Viewport struct {
	Latitude  float64
	Longitude float64
	Zoom      float64
}

// Marker is one icon drawn on the map. PinID is set for pin markers only.
type Marker struct {
	Kind     MarkerKind
	PinID    string
	Position Position
	Color    string
	New      bool
}

// Popup is the detail overlay of the selected pin.
type Popup struct {
	Pin    pin.Pin
	Anchor Position

	// CanDelete is false when the delete affordance must not be shown at all.
	CanDelete bool
}

// NoticeKind selects how a failure is presented.
type NoticeKind int

const (
	// NoticeReauthenticate prompts the user to sign in again.
	NoticeReauthenticate NoticeKind = iota + 1

	// NoticeMessage shows a message and leaves the map untouched.
	NoticeMessage
)

// Notice is a user-visible failure.
type Notice struct {
	Kind    NoticeKind
	Code    int
	Message string
}

// View is everything needed to draw one frame.
type View struct {
	Viewport Viewport
	Markers  []Marker
	Popup    *Popup
	Notice   *Notice
}
