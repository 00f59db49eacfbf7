package settings

import (
	"maps"
	"slices"
)

// Category names a group of related options.
type Category string

const (
	CategoryAI              Category = "ai"
	CategoryResourceMonitor Category = "resource_monitor"
	CategoryCache           Category = "cache"
	CategoryContent         Category = "content"
	CategoryAsset           Category = "asset"
	CategoryMonitoring      Category = "monitoring"
	CategoryVideo           Category = "video"
	CategoryIntegration     Category = "integration"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryAI,
		CategoryResourceMonitor,
		CategoryCache,
		CategoryContent,
		CategoryAsset,
		CategoryMonitoring,
		CategoryVideo,
		CategoryIntegration,
	}
}

const (
	defaultCacheTimeout = 3600
	mebibyte            = 1024 * 1024
)

// AI holds credentials and request limits for the text and speech providers.
type AI struct {
	GeminiKey     string `yaml:"gemini_key"`
	ElevenLabsKey string `yaml:"eleven_labs_key"`
	MaxRetries    int    `yaml:"max_retries"`
	Timeout       int    `yaml:"timeout"`
	BatchSize     int    `yaml:"batch_size"`
}

// ResourceMonitor bounds the worker pool used by media processing.
type ResourceMonitor struct {
	MaxWorkers      int `yaml:"max_workers"`
	MaxQueueSize    int `yaml:"max_queue_size"`
	MonitorInterval int `yaml:"monitor_interval"`
}

// Cache configures the shared response cache.
type Cache struct {
	DefaultTimeout int `yaml:"default_timeout"`
	MaxEntries     int `yaml:"max_entries"`
	Version        int `yaml:"version"`
}

// Content configures batch generation of content records.
type Content struct {
	MaxBatchSize      int `yaml:"max_batch_size"`
	ProcessingTimeout int `yaml:"processing_timeout"`
	MaxRetries        int `yaml:"max_retries"`
	ChunkSize         int `yaml:"chunk_size"`
}

// Asset configures upload admission for media assets.
//
// MaxFileSizes optionally narrows MaxFileSize per asset type.
type Asset struct {
	MaxFileSize       int64            `yaml:"max_file_size"`
	MaxFileSizes      map[string]int64 `yaml:"max_file_sizes"`
	AllowedImageTypes []string         `yaml:"allowed_image_types"`
	AllowedAudioTypes []string         `yaml:"allowed_audio_types"`
	AllowedVideoTypes []string         `yaml:"allowed_video_types"`
	ImageMaxDimension int              `yaml:"image_max_dimension"`
	VideoMaxDuration  int              `yaml:"video_max_duration"`
	AudioMaxDuration  int              `yaml:"audio_max_duration"`
}

// Monitoring configures logging and latency alerting.
type Monitoring struct {
	Enabled              bool    `yaml:"enabled"`
	LogLevel             string  `yaml:"log_level"`
	MetricsRetentionDays int     `yaml:"metrics_retention_days"`
	PerformanceThreshold float64 `yaml:"performance_threshold"`
	AlertThreshold       float64 `yaml:"alert_threshold"`
}

// Video configures the compositing pipeline. FFmpegPath is nil when the
// binary should be resolved from PATH.
type Video struct {
	FFmpegPath        *string `yaml:"ffmpeg_path"`
	DefaultResolution string  `yaml:"default_resolution"`
	DefaultFramerate  int     `yaml:"default_framerate"`
	DefaultBitrate    string  `yaml:"default_bitrate"`
}

// Integration configures calls to third-party services.
type Integration struct {
	MaxConcurrentRequests   int `yaml:"max_concurrent_requests"`
	RequestTimeout          int `yaml:"request_timeout"`
	RetryDelay              int `yaml:"retry_delay"`
	CircuitBreakerThreshold int `yaml:"circuit_breaker_threshold"`
}

// Defaults is the full set of category values the Manager is built from.
type Defaults struct {
	AI              AI              `yaml:"ai"`
	ResourceMonitor ResourceMonitor `yaml:"resource_monitor"`
	Cache           Cache           `yaml:"cache"`
	Content         Content         `yaml:"content"`
	Asset           Asset           `yaml:"asset"`
	Monitoring      Monitoring      `yaml:"monitoring"`
	Video           Video           `yaml:"video"`
	Integration     Integration     `yaml:"integration"`
}

// DefaultDefaults returns a fresh copy of the compiled-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		AI: AI{
			MaxRetries: 3,
			Timeout:    30,
			BatchSize:  10,
		},
		ResourceMonitor: ResourceMonitor{
			MaxWorkers:      4,
			MaxQueueSize:    100,
			MonitorInterval: 5,
		},
		Cache: Cache{
			DefaultTimeout: defaultCacheTimeout,
			MaxEntries:     1000,
			Version:        1,
		},
		Content: Content{
			MaxBatchSize:      50,
			ProcessingTimeout: 300,
			MaxRetries:        3,
			ChunkSize:         mebibyte,
		},
		Asset: Asset{
			MaxFileSize:       100 * mebibyte,
			MaxFileSizes:      map[string]int64{},
			AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif"},
			AllowedAudioTypes: []string{"audio/mpeg", "audio/wav"},
			AllowedVideoTypes: []string{"video/mp4", "video/quicktime"},
			ImageMaxDimension: 4096,
			VideoMaxDuration:  3600,
			AudioMaxDuration:  3600,
		},
		Monitoring: Monitoring{
			Enabled:              true,
			LogLevel:             "INFO",
			MetricsRetentionDays: 7,
			PerformanceThreshold: 1.0,
			AlertThreshold:       5.0,
		},
		Video: Video{
			DefaultResolution: "1080p",
			DefaultFramerate:  30,
			DefaultBitrate:    "4M",
		},
		Integration: Integration{
			MaxConcurrentRequests:   10,
			RequestTimeout:          30,
			RetryDelay:              1,
			CircuitBreakerThreshold: 5,
		},
	}
}

// clone returns a deep copy that shares no slices, maps or pointers with d.
func (d Defaults) clone() Defaults {
	out := d
	out.Asset = d.Asset.clone()
	out.Video = d.Video.clone()
	return out
}

func (a Asset) clone() Asset {
	out := a
	out.MaxFileSizes = maps.Clone(a.MaxFileSizes)
	if out.MaxFileSizes == nil {
		out.MaxFileSizes = map[string]int64{}
	}
	out.AllowedImageTypes = slices.Clone(a.AllowedImageTypes)
	out.AllowedAudioTypes = slices.Clone(a.AllowedAudioTypes)
	out.AllowedVideoTypes = slices.Clone(a.AllowedVideoTypes)
	return out
}

func (v Video) clone() Video {
	out := v
	if v.FFmpegPath != nil {
		path := *v.FFmpegPath
		out.FFmpegPath = &path
	}
	return out
}

// options flattens each category into the key/value view served by
// Manager.Setting and Manager.Category.
func (d Defaults) options() map[Category]map[string]any {
	video := map[string]any{
		"default_resolution": d.Video.DefaultResolution,
		"default_framerate":  d.Video.DefaultFramerate,
		"default_bitrate":    d.Video.DefaultBitrate,
	}
	if d.Video.FFmpegPath != nil {
		video["ffmpeg_path"] = *d.Video.FFmpegPath
	}

	return map[Category]map[string]any{
		CategoryAI: {
			"gemini_key":      d.AI.GeminiKey,
			"eleven_labs_key": d.AI.ElevenLabsKey,
			"max_retries":     d.AI.MaxRetries,
			"timeout":         d.AI.Timeout,
			"batch_size":      d.AI.BatchSize,
		},
		CategoryResourceMonitor: {
			"max_workers":      d.ResourceMonitor.MaxWorkers,
			"max_queue_size":   d.ResourceMonitor.MaxQueueSize,
			"monitor_interval": d.ResourceMonitor.MonitorInterval,
		},
		CategoryCache: {
			"default_timeout": d.Cache.DefaultTimeout,
			"max_entries":     d.Cache.MaxEntries,
			"version":         d.Cache.Version,
		},
		CategoryContent: {
			"max_batch_size":     d.Content.MaxBatchSize,
			"processing_timeout": d.Content.ProcessingTimeout,
			"max_retries":        d.Content.MaxRetries,
			"chunk_size":         d.Content.ChunkSize,
		},
		CategoryAsset: {
			"max_file_size":       d.Asset.MaxFileSize,
			"max_file_sizes":      maps.Clone(d.Asset.MaxFileSizes),
			"allowed_image_types": slices.Clone(d.Asset.AllowedImageTypes),
			"allowed_audio_types": slices.Clone(d.Asset.AllowedAudioTypes),
			"allowed_video_types": slices.Clone(d.Asset.AllowedVideoTypes),
			"image_max_dimension": d.Asset.ImageMaxDimension,
			"video_max_duration":  d.Asset.VideoMaxDuration,
			"audio_max_duration":  d.Asset.AudioMaxDuration,
		},
		CategoryMonitoring: {
			"enabled":                d.Monitoring.Enabled,
			"log_level":              d.Monitoring.LogLevel,
			"metrics_retention_days": d.Monitoring.MetricsRetentionDays,
			"performance_threshold":  d.Monitoring.PerformanceThreshold,
			"alert_threshold":        d.Monitoring.AlertThreshold,
		},
		CategoryVideo: video,
		CategoryIntegration: {
			"max_concurrent_requests":   d.Integration.MaxConcurrentRequests,
			"request_timeout":           d.Integration.RequestTimeout,
			"retry_delay":               d.Integration.RetryDelay,
			"circuit_breaker_threshold": d.Integration.CircuitBreakerThreshold,
		},
	}
}
