// Package metrics counts what the launcher does during one popup session.
// The popup is short-lived, so nothing is served over HTTP: the registry is
// flushed to a node_exporter textfile when the program exits.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the launcher metrics on a private registry. A nil
// Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry

	builds       prometheus.Counter
	enumerations *prometheus.CounterVec
	selections   *prometheus.CounterVec
	populate     prometheus.Histogram
	exhausted    *prometheus.CounterVec
	reloads      *prometheus.CounterVec
}

// New registers the launcher metrics on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		builds: factory.NewCounter(prometheus.CounterOpts{
			Name: "launcher_builds_total",
			Help: "Menu builds started",
		}),
		enumerations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launcher_enumerations_total",
			Help: "Folder and recent listings by result",
		}, []string{"result"}),
		selections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launcher_selections_total",
			Help: "Resolved selections by action kind",
		}, []string{"kind"}),
		populate: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "launcher_populate_seconds",
			Help:    "Time spent listing a container before it is populated",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		exhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launcher_ids_exhausted_total",
			Help: "Entries dropped because an identifier pool ran out",
		}, []string{"pool"}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "launcher_config_reloads_total",
			Help: "Config file reloads by result",
		}, []string{"result"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) BuildStarted() {
	if r == nil {
		return
	}
	r.builds.Inc()
}

func (r *Recorder) Enumerated(result string) {
	if r == nil {
		return
	}
	r.enumerations.WithLabelValues(result).Inc()
}

func (r *Recorder) Populated(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.populate.Observe(elapsed.Seconds())
}

func (r *Recorder) Exhausted(pool string) {
	if r == nil {
		return
	}
	r.exhausted.WithLabelValues(pool).Inc()
}

func (r *Recorder) Selected(kind string) {
	if r == nil {
		return
	}
	r.selections.WithLabelValues(kind).Inc()
}

// Reloaded counts a config reload attempt.
func (r *Recorder) Reloaded(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.reloads.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
