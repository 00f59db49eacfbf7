package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	EnvGeminiKey     = "GEMINI_KEY"
	EnvElevenLabsKey = "ELEVEN_LABS_KEY"
	EnvFFmpegPath    = "FFMPEG_PATH"
)

// envOverride maps one allow-listed environment variable onto an option.
type envOverride struct {
	name  string
	apply func(d *Defaults, value string)
}

var envOverrides = []envOverride{
	{name: EnvGeminiKey, apply: func(d *Defaults, v string) { d.AI.GeminiKey = v }},
	{name: EnvElevenLabsKey, apply: func(d *Defaults, v string) { d.AI.ElevenLabsKey = v }},
	{name: EnvFFmpegPath, apply: func(d *Defaults, v string) { d.Video.FFmpegPath = &v }},
}

// OverrideNames returns the environment variables consulted by New.
func OverrideNames() []string {
	names := make([]string, 0, len(envOverrides))
	for _, o := range envOverrides {
		names = append(names, o.name)
	}
	return names
}

// applyEnvOverrides replaces options whose variable is set, even to "".
// Values are taken verbatim.
func applyEnvOverrides(d *Defaults, lookup func(string) (string, bool)) []string {
	applied := make([]string, 0, len(envOverrides))
	for _, o := range envOverrides {
		value, ok := lookup(o.name)
		if !ok {
			continue
		}
		o.apply(d, value)
		applied = append(applied, o.name)
	}
	return applied
}

// readSourceFile loads a YAML settings document from disk.
func readSourceFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %w", ErrInvalidSource, err)
	}
	return data, nil
}

// applySource decodes a YAML document on top of d. Keys absent from the
// document keep their current value; unknown keys are rejected.
func applySource(d *Defaults, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: parse YAML: %w", ErrInvalidSource, err)
	}
	if d.Asset.MaxFileSizes == nil {
		d.Asset.MaxFileSizes = map[string]int64{}
	}
	return nil
}
