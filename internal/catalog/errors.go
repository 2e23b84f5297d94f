package catalog

import "errors"

var (
	ErrEmptyLibrary   = errors.New("library is empty")
	ErrNoResults      = errors.New("no matching books found")
	ErrInvalidYear    = errors.New("please enter a valid year")
	ErrYearOutOfRange = errors.New("year out of range")
	ErrUnknownGenre   = errors.New("unknown genre")
	ErrUnknownField   = errors.New("unknown search field")
)

// IsUserError reports whether err comes from user input or an empty result
// rather than a failure, so it is shown as a warning.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrEmptyLibrary, ErrNoResults, ErrInvalidYear,
		ErrYearOutOfRange, ErrUnknownGenre, ErrUnknownField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
