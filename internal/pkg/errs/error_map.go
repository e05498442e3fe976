/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// The key is the error code, the value carries the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Pin Business Logic Errors
	ErrPinNotFound:       {Code: ErrPinNotFound, Message: "Pin not found.", Status: http.StatusNotFound},
	ErrInvalidLocation:   {Code: ErrInvalidLocation, Message: "Location is outside the map.", Status: http.StatusBadRequest},
	ErrImageSizeTooLarge: {Code: ErrImageSizeTooLarge, Message: "Image is too large.", Status: http.StatusBadRequest},
	ErrImageTypeInvalid:  {Code: ErrImageTypeInvalid, Message: "Unsupported image type.", Status: http.StatusBadRequest},

	// 3xxx: Identity and Authorization Errors
	ErrUnauthenticated: {Code: ErrUnauthenticated, Message: "You must be logged in.", Status: http.StatusUnauthorized},
	ErrForbidden:       {Code: ErrForbidden, Message: "You can only delete your own pins.", Status: http.StatusForbidden},

	// 4xxx: Client-Side Errors
	ErrNetworkFailure: {Code: ErrNetworkFailure, Message: "Could not reach the map server.", Status: http.StatusBadGateway},

	// 5xxx: Internal System Errors
	ErrUnknown:       {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageFailed: {Code: ErrStorageFailed, Message: "Image storage failed. Please try again.", Status: http.StatusBadGateway},
}
