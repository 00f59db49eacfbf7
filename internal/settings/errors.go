package settings

import "errors"

var (
	// ErrInvalidSettings is returned by New when the assembled values violate
	// a range or consistency rule.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidSource is returned by New when the YAML source cannot be read
	// or names an option that does not exist.
	ErrInvalidSource = errors.New("invalid settings source")
)
