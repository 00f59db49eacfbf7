package assets

import (
	"errors"

	"github.com/eugenenazirov/content-studio/internal/metrics"
)

const (
	minFramerate = 1
	maxFramerate = 60
)

type settingsValidator struct {
	limits Limits
}

// New creates a Validator backed by the given settings.
func New(limits Limits) Validator {
	return &settingsValidator{limits: limits}
}

// Check returns nil when the upload is admissible, otherwise every failed
// rule joined with errors.Join.
func (v *settingsValidator) Check(upload Upload) error {
	err := v.check(upload)
	metrics.ObserveAssetValidation(metricLabel(upload.AssetType), err == nil)
	return err
}

func (v *settingsValidator) check(upload Upload) error {
	switch upload.AssetType {
	case TypeImage, TypeAudio, TypeVideo:
	default:
		return ErrUnknownAssetType
	}

	var errs []error
	if !v.limits.ValidateFileType(upload.MIMEType, upload.AssetType) {
		errs = append(errs, ErrUnsupportedMIMEType)
	}
	if !v.limits.ValidateFileSize(upload.Size, upload.AssetType) {
		errs = append(errs, ErrFileTooLarge)
	}

	asset := v.limits.Asset()
	switch upload.AssetType {
	case TypeImage:
		errs = append(errs, checkDimensions(upload.Width, upload.Height, asset.ImageMaxDimension))
	case TypeAudio:
		errs = append(errs, checkDuration(upload.Duration, asset.AudioMaxDuration))
	case TypeVideo:
		errs = append(errs, checkDuration(upload.Duration, asset.VideoMaxDuration))
		if upload.Framerate != 0 && (upload.Framerate < minFramerate || upload.Framerate > maxFramerate) {
			errs = append(errs, ErrInvalidFramerate)
		}
	}

	return errors.Join(errs...)
}

// A zero maximum disables the dimension check.
func checkDimensions(width, height, maxDimension int) error {
	if width < 0 || height < 0 {
		return ErrInvalidDimensions
	}
	if maxDimension > 0 && (width > maxDimension || height > maxDimension) {
		return ErrDimensionTooLarge
	}
	return nil
}

// A zero maximum disables the duration check.
func checkDuration(duration float64, maxSeconds int) error {
	if duration < 0 {
		return ErrInvalidDuration
	}
	if maxSeconds > 0 && duration > float64(maxSeconds) {
		return ErrDurationTooLong
	}
	return nil
}

// Reasons flattens a Check error into its individual messages.
func Reasons(err error) []string {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var reasons []string
	for _, e := range joined.Unwrap() {
		reasons = append(reasons, Reasons(e)...)
	}
	return reasons
}

// metricLabel keeps label cardinality bounded for unknown asset types.
func metricLabel(assetType string) string {
	switch assetType {
	case TypeImage, TypeAudio, TypeVideo:
		return assetType
	default:
		return "unknown"
	}
}
