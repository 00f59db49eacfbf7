package assets

import (
	"errors"
	"testing"

	"github.com/eugenenazirov/content-studio/internal/settings"
)

func newTestValidator(t *testing.T, opts ...settings.Option) Validator {
	t.Helper()

	opts = append([]settings.Option{settings.WithLookupEnv(func(string) (string, bool) { return "", false })}, opts...)
	manager, err := settings.New(opts...)
	if err != nil {
		t.Fatalf("settings.New returned error: %v", err)
	}
	return New(manager)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	validator := newTestValidator(t)

	tests := []struct {
		name    string
		upload  Upload
		wantErr []error
	}{
		{
			name:   "ValidImage",
			upload: Upload{AssetType: TypeImage, MIMEType: "image/png", Size: 2048, Width: 1920, Height: 1080},
		},
		{
			name:   "ValidAudio",
			upload: Upload{AssetType: TypeAudio, MIMEType: "audio/mpeg", Size: 1 << 20, Duration: 180.5},
		},
		{
			name:   "ValidVideoWithoutMediaFields",
			upload: Upload{AssetType: TypeVideo, MIMEType: "video/mp4", Size: 10 << 20},
		},
		{
			name:    "UnknownAssetType",
			upload:  Upload{AssetType: "document", MIMEType: "application/pdf", Size: 10},
			wantErr: []error{ErrUnknownAssetType},
		},
		{
			name:    "DisallowedMIMEType",
			upload:  Upload{AssetType: TypeImage, MIMEType: "image/webp", Size: 10},
			wantErr: []error{ErrUnsupportedMIMEType},
		},
		{
			name:    "TooLargeAndWrongType",
			upload:  Upload{AssetType: TypeVideo, MIMEType: "video/x-msvideo", Size: 100<<20 + 1},
			wantErr: []error{ErrUnsupportedMIMEType, ErrFileTooLarge},
		},
		{
			name:    "ImageDimensionTooLarge",
			upload:  Upload{AssetType: TypeImage, MIMEType: "image/jpeg", Size: 10, Width: 4097, Height: 100},
			wantErr: []error{ErrDimensionTooLarge},
		},
		{
			name:    "NegativeDimensions",
			upload:  Upload{AssetType: TypeImage, MIMEType: "image/jpeg", Size: 10, Width: -1},
			wantErr: []error{ErrInvalidDimensions},
		},
		{
			name:    "AudioTooLong",
			upload:  Upload{AssetType: TypeAudio, MIMEType: "audio/wav", Size: 10, Duration: 3600.5},
			wantErr: []error{ErrDurationTooLong},
		},
		{
			name:    "NegativeDuration",
			upload:  Upload{AssetType: TypeVideo, MIMEType: "video/mp4", Size: 10, Duration: -3},
			wantErr: []error{ErrInvalidDuration},
		},
		{
			name:    "FramerateOutOfRange",
			upload:  Upload{AssetType: TypeVideo, MIMEType: "video/mp4", Size: 10, Framerate: 120},
			wantErr: []error{ErrInvalidFramerate},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.Check(tt.upload)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("expected upload to be accepted, got %v", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v in %v", want, err)
				}
			}
			if got := len(Reasons(err)); got != len(tt.wantErr) {
				t.Fatalf("expected %d reasons, got %d (%v)", len(tt.wantErr), got, Reasons(err))
			}
		})
	}
}

func TestCheckRejectsWhenSizeLimitUnset(t *testing.T) {
	t.Parallel()

	defaults := settings.DefaultDefaults()
	defaults.Asset.MaxFileSize = 0
	validator := newTestValidator(t, settings.WithDefaults(defaults))

	err := validator.Check(Upload{AssetType: TypeImage, MIMEType: "image/png", Size: 1})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestCheckSkipsDisabledMaximums(t *testing.T) {
	t.Parallel()

	defaults := settings.DefaultDefaults()
	defaults.Asset.ImageMaxDimension = 0
	defaults.Asset.VideoMaxDuration = 0
	validator := newTestValidator(t, settings.WithDefaults(defaults))

	if err := validator.Check(Upload{AssetType: TypeImage, MIMEType: "image/png", Size: 1, Width: 10000}); err != nil {
		t.Fatalf("expected dimension check to be disabled, got %v", err)
	}
	if err := validator.Check(Upload{AssetType: TypeVideo, MIMEType: "video/mp4", Size: 1, Duration: 1e6}); err != nil {
		t.Fatalf("expected duration check to be disabled, got %v", err)
	}
}

func TestCheckDurationBoundary(t *testing.T) {
	t.Parallel()

	validator := newTestValidator(t)

	if err := validator.Check(Upload{AssetType: TypeAudio, MIMEType: "audio/wav", Size: 1, Duration: 0}); err != nil {
		t.Fatalf("expected unreported duration to be accepted, got %v", err)
	}

	err := validator.Check(Upload{AssetType: TypeAudio, MIMEType: "audio/wav", Size: 1, Duration: -0.5})
	reasons := Reasons(err)
	if len(reasons) != 1 || reasons[0] != "duration must be non-negative" {
		t.Fatalf("unexpected reasons %v", reasons)
	}
}

func TestReasons(t *testing.T) {
	t.Parallel()

	if got := Reasons(nil); got != nil {
		t.Fatalf("expected nil reasons, got %v", got)
	}
	if got := Reasons(ErrFileTooLarge); len(got) != 1 || got[0] != ErrFileTooLarge.Error() {
		t.Fatalf("unexpected reasons %v", got)
	}
	nested := errors.Join(ErrUnsupportedMIMEType, errors.Join(ErrFileTooLarge, ErrInvalidFramerate))
	if got := Reasons(nested); len(got) != 3 {
		t.Fatalf("expected 3 reasons, got %v", got)
	}
}
