package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"timed-set/internal/health"
	"timed-set/internal/logs"
	"timed-set/internal/metrics"
	"timed-set/internal/timedset"
)

const defaultLogLimit = 50

// Handler holds dependencies for HTTP handlers.
//
// The timed set is not safe for concurrent use, so every access goes
// through mu.
type Handler struct {
	mu  sync.Mutex
	set *timedset.TimedSet[string]

	metrics  *metrics.Registry
	logger   *logs.Logger
	analyzer *health.Analyzer
}

// NewHandler creates a new API handler serving set.
func NewHandler(
	set *timedset.TimedSet[string],
	metrics *metrics.Registry,
	logger *logs.Logger,
) *Handler {
	return &Handler{
		set:      set,
		metrics:  metrics,
		logger:   logger.With("api"),
		analyzer: health.NewAnalyzer(metrics, logger),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

/* ---------------- PUT /set/{value} ---------------- */

func (h *Handler) AddValue(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimPrefix(r.URL.Path, "/set/")
	if value == "" {
		http.Error(w, "missing value in URL", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.set.Add(value)
	h.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

/* ---------------- GET /set/{value} ---------------- */

type presenceResponse struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

func (h *Handler) CheckValue(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimPrefix(r.URL.Path, "/set/")
	if value == "" {
		http.Error(w, "missing value", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	present := h.set.Contains(value)
	h.mu.Unlock()

	writeJSON(w, presenceResponse{Value: value, Present: present})
}

/* ---------------- POST /seen/{value} ---------------- */

type seenResponse struct {
	Value     string `json:"value"`
	FirstSeen bool   `json:"first_seen"`
}

// MarkSeen records value in the dedupe window. A value already inside the
// window is reported as a duplicate and its expiry is left alone, so a
// steady stream of repeats cannot keep it alive forever.
func (h *Handler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	value := strings.TrimPrefix(r.URL.Path, "/seen/")
	if value == "" {
		http.Error(w, "missing value", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	first := !h.set.Contains(value)
	if first {
		h.set.Add(value)
	}
	h.mu.Unlock()

	if first {
		h.metrics.Inc(metrics.DedupeFirstSeenTotal)
	} else {
		h.metrics.Inc(metrics.DedupeDuplicatesTotal)
		h.logger.Debugf("duplicate value %q", value)
	}

	writeJSON(w, seenResponse{Value: value, FirstSeen: first})
}

/* ---------------- POST /drain ---------------- */

type drainResponse struct {
	Values []string `json:"values"`
	Count  int      `json:"count"`
}

// Drain consumes the whole set and returns the values that were still live.
func (h *Handler) Drain(w http.ResponseWriter, r *http.Request) {
	values := []string{}

	h.mu.Lock()
	it := h.set.Iter()
	snapshot := it.Remaining()
	for v := range it.All() {
		values = append(values, v)
	}
	h.mu.Unlock()

	slices.Sort(values)
	h.logger.Infof("drained %d values, %d live", snapshot, len(values))

	writeJSON(w, drainResponse{Values: values, Count: len(values)})
}

/* ---------------- GET /stats ---------------- */

type statsResponse struct {
	TTLms  int64 `json:"ttl_ms"`
	Stored int   `json:"stored"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := statsResponse{
		TTLms:  h.set.TTL().Milliseconds(),
		Stored: h.set.Len(),
	}
	h.mu.Unlock()

	writeJSON(w, resp)
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.metrics.Snapshot())
}

/* ---------------- GET /health ---------------- */

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.analyzer.Analyze())
}

/* ---------------- GET /admin/logs ---------------- */

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	n := defaultLogLimit
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	writeJSON(w, h.logger.GetLast(n))
}
