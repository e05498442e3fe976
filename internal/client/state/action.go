package state

import (
	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
)

// ActionType names a state transition.
type ActionType string

const (
	TypeCreateDraft         ActionType = "CREATE_DRAFT"
	TypeUpdateDraftLocation ActionType = "UPDATE_DRAFT_LOCATION"
	TypePlaceDraft          ActionType = "PLACE_DRAFT"
	TypeDeleteDraft         ActionType = "DELETE_DRAFT"
	TypeGetPins             ActionType = "GET_PINS"
	TypeCreatePin           ActionType = "CREATE_PIN"
	TypeSetPin              ActionType = "SET_PIN"
	TypeClearPin            ActionType = "CLEAR_PIN"
	TypeDeletePin           ActionType = "DELETE_PIN"
	TypeLoginUser           ActionType = "LOGIN_USER"
	TypeIsLoggedIn          ActionType = "IS_LOGGED_IN"
	TypeSignoutUser         ActionType = "SIGNOUT_USER"
)

// Action is a transition request. Payload holds the type-specific value; an action whose
// payload does not match its type is ignored like an unknown action.
type Action struct {
	Type    ActionType
	Payload any
}

// Location is the payload of draft placement actions.
type Location struct {
	Latitude  float64
	Longitude float64
}

func CreateDraft() Action {
	return Action{Type: TypeCreateDraft}
}

func UpdateDraftLocation(lat, lng float64) Action {
	return Action{Type: TypeUpdateDraftLocation, Payload: Location{Latitude: lat, Longitude: lng}}
}

// PlaceDraft ensures a draft exists and moves it to lat,lng in a single transition.
func PlaceDraft(lat, lng float64) Action {
	return Action{Type: TypePlaceDraft, Payload: Location{Latitude: lat, Longitude: lng}}
}

func DeleteDraft() Action {
	return Action{Type: TypeDeleteDraft}
}

func GetPins(pins []pin.Pin) Action {
	return Action{Type: TypeGetPins, Payload: pins}
}

func CreatePin(p pin.Pin) Action {
	return Action{Type: TypeCreatePin, Payload: p}
}

func SetPin(p pin.Pin) Action {
	return Action{Type: TypeSetPin, Payload: p}
}

func ClearPin() Action {
	return Action{Type: TypeClearPin}
}

func DeletePin(p pin.Pin) Action {
	return Action{Type: TypeDeletePin, Payload: p}
}

func LoginUser(u user.User) Action {
	return Action{Type: TypeLoginUser, Payload: u}
}

func IsLoggedIn(ok bool) Action {
	return Action{Type: TypeIsLoggedIn, Payload: ok}
}

func SignoutUser() Action {
	return Action{Type: TypeSignoutUser}
}
