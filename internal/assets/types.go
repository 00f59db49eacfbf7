package assets

import "github.com/eugenenazirov/content-studio/internal/settings"

// Asset types with a configured MIME allow-list.
const (
	TypeImage = "image"
	TypeAudio = "audio"
	TypeVideo = "video"
)

// Upload describes a media file offered for ingestion. Zero media fields
// (dimensions, duration, framerate) mean "not reported" and are not checked.
type Upload struct {
	AssetType string
	MIMEType  string
	Size      int64
	Width     int
	Height    int
	Duration  float64
	Framerate int
}

// Limits is the subset of the settings Manager used for admission.
type Limits interface {
	ValidateFileSize(size int64, fileType string) bool
	ValidateFileType(mimeType, assetType string) bool
	Asset() settings.Asset
}

// Validator decides whether an upload may be ingested.
type Validator interface {
	Check(upload Upload) error
}
