package settings

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
)

const (
	minFramerate = 1
	maxFramerate = 60
)

// maxThresholdSeconds bounds thresholds to what a time.Duration can hold.
var maxThresholdSeconds = float64(math.MaxInt64) / float64(time.Second)

var (
	geminiKeyPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]{39}$`)
	elevenLabsKeyPattern = regexp.MustCompile(`^(?:[A-Za-z0-9]{32}|sk_[a-f0-9]{48})$`)
)

// validate reports every range or consistency violation in d.
func (d Defaults) validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(d.AI.MaxRetries >= 0, "ai.max_retries must be >= 0, got %d", d.AI.MaxRetries)
	check(d.AI.Timeout > 0, "ai.timeout must be > 0, got %d", d.AI.Timeout)
	check(d.AI.BatchSize > 0, "ai.batch_size must be > 0, got %d", d.AI.BatchSize)

	check(d.ResourceMonitor.MaxWorkers > 0, "resource_monitor.max_workers must be > 0, got %d", d.ResourceMonitor.MaxWorkers)
	check(d.ResourceMonitor.MaxQueueSize >= 0, "resource_monitor.max_queue_size must be >= 0, got %d", d.ResourceMonitor.MaxQueueSize)
	check(d.ResourceMonitor.MonitorInterval > 0, "resource_monitor.monitor_interval must be > 0, got %d", d.ResourceMonitor.MonitorInterval)

	check(d.Cache.DefaultTimeout >= 0, "cache.default_timeout must be >= 0, got %d", d.Cache.DefaultTimeout)
	check(d.Cache.MaxEntries >= 0, "cache.max_entries must be >= 0, got %d", d.Cache.MaxEntries)

	check(d.Content.MaxBatchSize > 0, "content.max_batch_size must be > 0, got %d", d.Content.MaxBatchSize)
	check(d.Content.ProcessingTimeout > 0, "content.processing_timeout must be > 0, got %d", d.Content.ProcessingTimeout)
	check(d.Content.MaxRetries >= 0, "content.max_retries must be >= 0, got %d", d.Content.MaxRetries)
	check(d.Content.ChunkSize > 0, "content.chunk_size must be > 0, got %d", d.Content.ChunkSize)

	// A zero max_file_size is allowed and means "unset"; uploads are then rejected.
	check(d.Asset.MaxFileSize >= 0, "asset.max_file_size must be >= 0, got %d", d.Asset.MaxFileSize)
	for _, assetType := range slices.Sorted(maps.Keys(d.Asset.MaxFileSizes)) {
		limit := d.Asset.MaxFileSizes[assetType]
		check(limit >= 0, "asset.max_file_sizes[%s] must be >= 0, got %d", assetType, limit)
	}
	for _, list := range []struct {
		key   string
		types []string
	}{
		{"allowed_image_types", d.Asset.AllowedImageTypes},
		{"allowed_audio_types", d.Asset.AllowedAudioTypes},
		{"allowed_video_types", d.Asset.AllowedVideoTypes},
	} {
		for _, mimeType := range list.types {
			check(strings.TrimSpace(mimeType) != "", "asset.%s contains an empty entry", list.key)
		}
	}
	check(d.Asset.ImageMaxDimension >= 0, "asset.image_max_dimension must be >= 0, got %d", d.Asset.ImageMaxDimension)
	check(d.Asset.VideoMaxDuration >= 0, "asset.video_max_duration must be >= 0, got %d", d.Asset.VideoMaxDuration)
	check(d.Asset.AudioMaxDuration >= 0, "asset.audio_max_duration must be >= 0, got %d", d.Asset.AudioMaxDuration)

	check(d.Monitoring.MetricsRetentionDays >= 0, "monitoring.metrics_retention_days must be >= 0, got %d", d.Monitoring.MetricsRetentionDays)
	check(validThreshold(d.Monitoring.PerformanceThreshold),
		"monitoring.performance_threshold must be >= 0 and below %g seconds, got %g", maxThresholdSeconds, d.Monitoring.PerformanceThreshold)
	check(validThreshold(d.Monitoring.AlertThreshold),
		"monitoring.alert_threshold must be >= 0 and below %g seconds, got %g", maxThresholdSeconds, d.Monitoring.AlertThreshold)
	check(d.Monitoring.AlertThreshold >= d.Monitoring.PerformanceThreshold,
		"monitoring.alert_threshold (%g) must be >= performance_threshold (%g)",
		d.Monitoring.AlertThreshold, d.Monitoring.PerformanceThreshold)

	check(d.Video.DefaultFramerate >= minFramerate && d.Video.DefaultFramerate <= maxFramerate,
		"video.default_framerate must be between %d and %d, got %d", minFramerate, maxFramerate, d.Video.DefaultFramerate)

	check(d.Integration.MaxConcurrentRequests > 0, "integration.max_concurrent_requests must be > 0, got %d", d.Integration.MaxConcurrentRequests)
	check(d.Integration.RequestTimeout > 0, "integration.request_timeout must be > 0, got %d", d.Integration.RequestTimeout)
	check(d.Integration.RetryDelay >= 0, "integration.retry_delay must be >= 0, got %d", d.Integration.RetryDelay)
	check(d.Integration.CircuitBreakerThreshold > 0, "integration.circuit_breaker_threshold must be > 0, got %d", d.Integration.CircuitBreakerThreshold)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

// validThreshold rejects NaN, infinities and values that overflow a time.Duration.
func validThreshold(seconds float64) bool {
	return seconds >= 0 && seconds < maxThresholdSeconds
}

// credentialWarnings flags provider keys whose shape does not match what the
// provider issues. Empty keys are not flagged.
func (d Defaults) credentialWarnings() []string {
	var warnings []string
	if key := d.AI.GeminiKey; key != "" && !geminiKeyPattern.MatchString(key) {
		warnings = append(warnings, "ai.gemini_key does not look like a Gemini API key")
	}
	if key := d.AI.ElevenLabsKey; key != "" && !elevenLabsKeyPattern.MatchString(key) {
		warnings = append(warnings, "ai.eleven_labs_key does not look like an ElevenLabs API key")
	}
	return warnings
}
