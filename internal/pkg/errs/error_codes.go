/*
Package errs provides custom error types and application-level error code constants.

These error codes identify business and system failures both inside the server and in
communication with map clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Pin Business Logic Errors
const (
	// ErrPinNotFound indicates that the referenced pin does not exist.
	ErrPinNotFound = 2101

	// ErrInvalidLocation indicates that a latitude or longitude is outside its valid range.
	ErrInvalidLocation = 2102

	// ErrImageSizeTooLarge indicates that an uploaded pin image exceeds the size limit.
	ErrImageSizeTooLarge = 2201

	// ErrImageTypeInvalid indicates that an uploaded pin image has an unsupported type.
	ErrImageTypeInvalid = 2202
)

// 3xxx: Identity and Authorization Errors
const (
	// ErrUnauthenticated indicates that the operation requires a resolved caller identity.
	ErrUnauthenticated = 3001

	// ErrForbidden indicates that the caller is known but does not own the target resource.
	ErrForbidden = 3002
)

// 4xxx: Client-Side Errors
const (
	// ErrNetworkFailure indicates a transport-level failure while calling the pin API.
	ErrNetworkFailure = 4001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStorageFailed indicates that the object storage backend rejected an operation.
	ErrStorageFailed = 5001
)
