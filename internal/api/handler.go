package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/content-studio/internal/assets"
	"github.com/eugenenazirov/content-studio/internal/settings"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the settings snapshot and asset validator into HTTP handlers.
type Handler struct {
	settings  *settings.Manager
	validator assets.Validator

	clock     func() time.Time
	startedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(manager *settings.Manager, validator assets.Validator, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings:  manager,
		validator: validator,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	now := h.clock()
	resp := healthResponse{
		Status:        "ok",
		Timestamp:     now,
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, settingsResponse{Categories: h.settings.Redacted()})
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !h.settings.HasCategory(category) {
		writeError(w, http.StatusNotFound, "Unknown category", "no settings category named "+category)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Category: category,
		Settings: h.settings.RedactedCategory(category),
	})
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	key := r.PathValue("key")
	if !h.settings.HasCategory(category) {
		writeError(w, http.StatusNotFound, "Unknown category", "no settings category named "+category)
		return
	}

	value, ok := h.settings.RedactedCategory(category)[key]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown setting", "no setting "+key+" in category "+category)
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{
		Category: category,
		Key:      key,
		Value:    value,
	})
}

func (h *Handler) handleGetLimits(w http.ResponseWriter, r *http.Request) {
	_ = r
	batch := h.settings.BatchSettings()
	resources := h.settings.ResourceLimits()
	thresholds := h.settings.PerformanceThresholds()

	resp := limitsResponse{
		Batch: batchLimits{
			MaxBatchSize:      batch.MaxBatchSize,
			ProcessingTimeout: batch.ProcessingTimeout,
			MaxRetries:        batch.MaxRetries,
		},
		Resources: resourceLimits{
			MaxWorkers:      resources.MaxWorkers,
			MaxQueueSize:    resources.MaxQueueSize,
			MonitorInterval: resources.MonitorInterval,
		},
		Thresholds: thresholdsResponse{
			PerformanceSeconds: thresholds.Performance.Seconds(),
			AlertSeconds:       thresholds.Alert.Seconds(),
		},
		CacheTimeout: h.settings.CacheTimeout(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleValidateAsset(w http.ResponseWriter, r *http.Request) {
	var req validateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.AssetType == "" || req.MIMEType == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "assetType and mimeType are required")
		return
	}

	err := h.validator.Check(assets.Upload{
		AssetType: req.AssetType,
		MIMEType:  req.MIMEType,
		Size:      req.Size,
		Width:     req.Width,
		Height:    req.Height,
		Duration:  req.Duration,
		Framerate: req.Framerate,
	})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validateAssetResponse{
			Valid:   false,
			Reasons: assets.Reasons(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, validateAssetResponse{Valid: true})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type validateAssetRequest struct {
	AssetType string  `json:"assetType"`
	MIMEType  string  `json:"mimeType"`
	Size      int64   `json:"size"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Duration  float64 `json:"duration"`
	Framerate int     `json:"framerate"`
}

type validateAssetResponse struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

type settingsResponse struct {
	Categories map[string]map[string]any `json:"categories"`
}

type categoryResponse struct {
	Category string         `json:"category"`
	Settings map[string]any `json:"settings"`
}

type settingResponse struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    any    `json:"value"`
}

type limitsResponse struct {
	Batch        batchLimits        `json:"batch"`
	Resources    resourceLimits     `json:"resources"`
	Thresholds   thresholdsResponse `json:"thresholds"`
	CacheTimeout int                `json:"cacheTimeout"`
}

type batchLimits struct {
	MaxBatchSize      int `json:"maxBatchSize"`
	ProcessingTimeout int `json:"processingTimeout"`
	MaxRetries        int `json:"maxRetries"`
}

type resourceLimits struct {
	MaxWorkers      int `json:"maxWorkers"`
	MaxQueueSize    int `json:"maxQueueSize"`
	MonitorInterval int `json:"monitorInterval"`
}

type thresholdsResponse struct {
	PerformanceSeconds float64 `json:"performanceSeconds"`
	AlertSeconds       float64 `json:"alertSeconds"`
}

type healthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}
