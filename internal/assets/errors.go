package assets

import "errors"

var (
	// ErrUnknownAssetType is returned for asset types without an allow-list.
	ErrUnknownAssetType = errors.New("unknown asset type")
	// ErrUnsupportedMIMEType is returned when the MIME type is not allowed for the asset type.
	ErrUnsupportedMIMEType = errors.New("mime type is not allowed for this asset type")
	// ErrFileTooLarge is returned when the size exceeds the configured limit or no limit is configured.
	ErrFileTooLarge = errors.New("file size is not within the configured limit")
	// ErrInvalidDimensions is returned for negative image dimensions.
	ErrInvalidDimensions = errors.New("image dimensions must be non-negative")
	// ErrDimensionTooLarge is returned when an image side exceeds image_max_dimension.
	ErrDimensionTooLarge = errors.New("image dimension exceeds the configured maximum")
	// ErrInvalidDuration is returned for negative media durations.
	ErrInvalidDuration = errors.New("duration must be non-negative")
	// ErrDurationTooLong is returned when a media duration exceeds its configured maximum.
	ErrDurationTooLong = errors.New("duration exceeds the configured maximum")
	// ErrInvalidFramerate is returned when a video framerate is outside 1..60.
	ErrInvalidFramerate = errors.New("framerate must be between 1 and 60")
)
