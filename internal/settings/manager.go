package settings

import (
	"maps"
	"os"
	"slices"
	"time"
)

const redactedValue = "********"

// secretOptions lists options masked by Redacted.
var secretOptions = map[Category][]string{
	CategoryAI: {"gemini_key", "eleven_labs_key"},
}

// assetTypeAllowLists maps an asset type to the option holding its MIME allow-set.
var assetTypeAllowLists = map[string]string{
	"image": "allowed_image_types",
	"audio": "allowed_audio_types",
	"video": "allowed_video_types",
}

// BatchLimits bounds batch content processing.
type BatchLimits struct {
	MaxBatchSize      int
	ProcessingTimeout int
	MaxRetries        int
}

// ResourceLimits bounds the media worker pool.
type ResourceLimits struct {
	MaxWorkers      int
	MaxQueueSize    int
	MonitorInterval int
}

// Thresholds are the latency limits above which an operation is reported.
type Thresholds struct {
	Performance time.Duration
	Alert       time.Duration
}

// Option customises New.
type Option func(*options)

type options struct {
	defaults   *Defaults
	sourcePath string
	source     []byte
	lookupEnv  func(string) (string, bool)
}

// WithDefaults replaces the compiled-in defaults. The value is copied.
func WithDefaults(d Defaults) Option {
	return func(o *options) {
		cloned := d.clone()
		o.defaults = &cloned
	}
}

// WithSource layers the YAML document at path over the defaults.
func WithSource(path string) Option {
	return func(o *options) {
		o.sourcePath = path
	}
}

// WithSourceBytes layers an in-memory YAML document over the defaults.
func WithSourceBytes(data []byte) Option {
	return func(o *options) {
		o.source = slices.Clone(data)
	}
}

// WithLookupEnv overrides the environment lookup, primarily for tests.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = lookup
	}
}

// Manager is an immutable snapshot of every settings category.
type Manager struct {
	values     Defaults
	categories map[Category]map[string]any
	overridden []string
	warnings   []string
}

// New builds a Manager: defaults, then the YAML source if any, then the
// environment overrides. The result is validated before it is returned.
func New(opts ...Option) (*Manager, error) {
	o := options{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}

	values := DefaultDefaults()
	if o.defaults != nil {
		values = o.defaults.clone()
	}

	if o.sourcePath != "" {
		data, err := readSourceFile(o.sourcePath)
		if err != nil {
			return nil, err
		}
		if err := applySource(&values, data); err != nil {
			return nil, err
		}
	}
	if o.source != nil {
		if err := applySource(&values, o.source); err != nil {
			return nil, err
		}
	}

	overridden := applyEnvOverrides(&values, o.lookupEnv)

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &Manager{
		values:     values,
		categories: values.options(),
		overridden: overridden,
		warnings:   values.credentialWarnings(),
	}, nil
}

// Warnings returns advisory messages found during construction.
func (m *Manager) Warnings() []string {
	return slices.Clone(m.warnings)
}

// Overridden returns the environment variables that replaced a default.
func (m *Manager) Overridden() []string {
	return slices.Clone(m.overridden)
}

// Setting returns the value of key in category, or def when either is unknown.
func (m *Manager) Setting(category, key string, def any) any {
	values, ok := m.categories[Category(category)]
	if !ok {
		return def
	}
	value, ok := values[key]
	if !ok {
		return def
	}
	return cloneValue(value)
}

// Category returns a copy of every option in category. Unknown categories
// yield an empty map.
func (m *Manager) Category(category string) map[string]any {
	values, ok := m.categories[Category(category)]
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = cloneValue(value)
	}
	return out
}

// Redacted returns every category with credential options masked.
// Empty credentials stay empty so callers can tell "unset" from "set".
func (m *Manager) Redacted() map[string]map[string]any {
	out := make(map[string]map[string]any, len(m.categories))
	for _, category := range Categories() {
		out[string(category)] = m.RedactedCategory(string(category))
	}
	return out
}

// RedactedCategory is Category with credential options masked.
func (m *Manager) RedactedCategory(category string) map[string]any {
	values := m.Category(category)
	for _, key := range secretOptions[Category(category)] {
		if s, ok := values[key].(string); ok && s != "" {
			values[key] = redactedValue
		}
	}
	return values
}

// HasCategory reports whether category is one of the known categories.
func (m *Manager) HasCategory(category string) bool {
	_, ok := m.categories[Category(category)]
	return ok
}

func (m *Manager) MonitoringSettings() map[string]any {
	return m.Category(string(CategoryMonitoring))
}

func (m *Manager) VideoSettings() map[string]any {
	return m.Category(string(CategoryVideo))
}

func (m *Manager) AssetSettings() map[string]any {
	return m.Category(string(CategoryAsset))
}

func (m *Manager) IntegrationSettings() map[string]any {
	return m.Category(string(CategoryIntegration))
}

// CacheTimeout returns cache.default_timeout in seconds, or 3600 when unset.
func (m *Manager) CacheTimeout() int {
	if m.values.Cache.DefaultTimeout <= 0 {
		return defaultCacheTimeout
	}
	return m.values.Cache.DefaultTimeout
}

// BatchSettings returns the content batch limits.
func (m *Manager) BatchSettings() BatchLimits {
	return BatchLimits{
		MaxBatchSize:      m.values.Content.MaxBatchSize,
		ProcessingTimeout: m.values.Content.ProcessingTimeout,
		MaxRetries:        m.values.Content.MaxRetries,
	}
}

// ResourceLimits returns the worker pool limits.
func (m *Manager) ResourceLimits() ResourceLimits {
	return ResourceLimits{
		MaxWorkers:      m.values.ResourceMonitor.MaxWorkers,
		MaxQueueSize:    m.values.ResourceMonitor.MaxQueueSize,
		MonitorInterval: m.values.ResourceMonitor.MonitorInterval,
	}
}

// PerformanceThresholds converts the monitoring thresholds to durations.
func (m *Manager) PerformanceThresholds() Thresholds {
	return Thresholds{
		Performance: seconds(m.values.Monitoring.PerformanceThreshold),
		Alert:       seconds(m.values.Monitoring.AlertThreshold),
	}
}

func (m *Manager) AI() AI                           { return m.values.AI }
func (m *Manager) ResourceMonitor() ResourceMonitor { return m.values.ResourceMonitor }
func (m *Manager) Cache() Cache                     { return m.values.Cache }
func (m *Manager) Content() Content                 { return m.values.Content }
func (m *Manager) Asset() Asset                     { return m.values.Asset.clone() }
func (m *Manager) Monitoring() Monitoring           { return m.values.Monitoring }
func (m *Manager) Video() Video                     { return m.values.Video.clone() }
func (m *Manager) Integration() Integration         { return m.values.Integration }

// ValidateFileSize reports whether size fits the limit for fileType: the
// per-type override if configured, otherwise asset.max_file_size. An unset
// limit rejects every size.
func (m *Manager) ValidateFileSize(size int64, fileType string) bool {
	if size < 0 {
		return false
	}
	limit, ok := m.values.Asset.MaxFileSizes[fileType]
	if !ok {
		limit = m.values.Asset.MaxFileSize
	}
	if limit <= 0 {
		return false
	}
	return size <= limit
}

// ValidateFileType reports whether mimeType is allowed for assetType.
// Unknown asset types have an empty allow-set and always reject.
func (m *Manager) ValidateFileType(mimeType, assetType string) bool {
	key, ok := assetTypeAllowLists[assetType]
	if !ok {
		return false
	}
	allowed, _ := m.Setting(string(CategoryAsset), key, []string(nil)).([]string)
	return slices.Contains(allowed, mimeType)
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case map[string]int64:
		return maps.Clone(v)
	default:
		return value
	}
}
