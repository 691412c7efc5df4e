package recommendation

import "errors"

var (
	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date must be on or after start date")
	// ErrInvalidRequest marks any other caller error.
	ErrInvalidRequest = errors.New("invalid recommendation request")
)

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) || errors.Is(err, ErrInvalidRequest)
}
