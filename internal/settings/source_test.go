package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
cache:
  default_timeout: 120
monitoring:
  enabled: false
  log_level: DEBUG
asset:
  allowed_image_types: [image/png, image/webp]
  max_file_sizes:
    video: 2048
video:
  ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
`

func TestSourceLayersOverDefaults(t *testing.T) {
	m := newTestManager(t, WithSourceBytes([]byte(sampleSource)))

	assert.Equal(t, 120, m.CacheTimeout())
	assert.Equal(t, 1000, m.Setting("cache", "max_entries", nil), "absent keys keep their default")
	assert.Equal(t, false, m.Setting("monitoring", "enabled", nil))
	assert.Equal(t, "DEBUG", m.Monitoring().LogLevel)
	assert.Equal(t, 5.0, m.Monitoring().AlertThreshold)

	assert.True(t, m.ValidateFileType("image/webp", "image"))
	assert.False(t, m.ValidateFileType("image/gif", "image"), "lists are replaced, not merged")
	assert.False(t, m.ValidateFileSize(2049, "video"))
	assert.True(t, m.ValidateFileSize(2049, "image"))

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", m.Setting("video", "ffmpeg_path", nil))
}

func TestEnvironmentWinsOverSource(t *testing.T) {
	m := newTestManager(t,
		WithSourceBytes([]byte(sampleSource)),
		WithLookupEnv(envFrom(map[string]string{EnvFFmpegPath: "/usr/bin/ffmpeg"})),
	)

	assert.Equal(t, "/usr/bin/ffmpeg", m.Setting("video", "ffmpeg_path", nil))
}

func TestSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o600))

	m := newTestManager(t, WithSource(path))
	assert.Equal(t, 120, m.CacheTimeout())
}

func TestSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"missing file", []Option{WithSource(filepath.Join(t.TempDir(), "missing.yaml"))}},
		{"unknown category", []Option{WithSourceBytes([]byte("storage:\n  bucket: x\n"))}},
		{"unknown key", []Option{WithSourceBytes([]byte("cache:\n  ttl: 10\n"))}},
		{"wrong type", []Option{WithSourceBytes([]byte("cache:\n  default_timeout: soon\n"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLookupEnv(noEnv)}, tt.opts...)
			_, err := New(opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSource)
		})
	}
}

func TestEmptySourceIsNoop(t *testing.T) {
	m := newTestManager(t, WithSourceBytes([]byte("  \n")))
	assert.Equal(t, DefaultDefaults().options(), m.categories)

	m = newTestManager(t, WithSourceBytes([]byte("# comments only\n")))
	assert.Equal(t, 3600, m.CacheTimeout())
}

func TestOverrideNames(t *testing.T) {
	assert.Equal(t, []string{"GEMINI_KEY", "ELEVEN_LABS_KEY", "FFMPEG_PATH"}, OverrideNames())
}
