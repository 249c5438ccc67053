// Package metrics exports benchmark timings in the Prometheus text format so
// a node_exporter textfile collector can pick them up.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weiihann/sortbench/results"
)

// Recorder collects run timings and writes them to a textfile on Close. It
// implements results.Sink.
type Recorder struct {
	path      string
	algorithm string
	registry  *prometheus.Registry

	RunDuration  *prometheus.HistogramVec
	FixtureMean  *prometheus.GaugeVec
	SamplesTotal prometheus.Counter
}

// NewRecorder creates a Recorder for algorithm that writes to path. It fails
// with results.ErrOutput if path's directory cannot take the file.
func NewRecorder(path, algorithm string) (*Recorder, error) {
	if err := checkWritable(path); err != nil {
		return nil, fmt.Errorf("%w: metrics file %s: %w", results.ErrOutput, path, err)
	}

	m := &Recorder{
		path:      path,
		algorithm: algorithm,
		registry:  prometheus.NewRegistry(),
	}

	m.RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sortbench_run_duration_seconds",
			Help:    "Wall clock duration of one isolated sort run",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 12),
		},
		[]string{"algorithm", "fixture"},
	)

	m.FixtureMean = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sortbench_fixture_mean_seconds",
			Help: "Mean run duration for a fixture",
		},
		[]string{"algorithm", "fixture"},
	)

	m.SamplesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "sortbench_samples_total",
			Help:        "Number of timed runs recorded",
			ConstLabels: prometheus.Labels{"algorithm": algorithm},
		},
	)

	m.registry.MustRegister(m.RunDuration, m.FixtureMean, m.SamplesTotal)

	return m, nil
}

// checkWritable creates and removes a temporary file next to path, the same
// way WriteToTextfile stages its output.
func checkWritable(path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return errors.New("is a directory")
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return err
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)

		return err
	}

	return os.Remove(name)
}

// Registry exposes the underlying registry.
func (m *Recorder) Registry() *prometheus.Registry { return m.registry }

func (m *Recorder) Sample(s results.Sample) error {
	m.RunDuration.WithLabelValues(m.algorithm, s.Label).Observe(s.Seconds)
	m.SamplesTotal.Inc()

	return nil
}

func (m *Recorder) Aggregate(a results.Aggregate) error {
	m.FixtureMean.WithLabelValues(m.algorithm, a.Label).Set(a.MeanSeconds)

	return nil
}

// Close writes the collected metrics to the textfile.
func (m *Recorder) Close() error {
	if err := prometheus.WriteToTextfile(m.path, m.registry); err != nil {
		return fmt.Errorf("%w: write metrics %s: %w", results.ErrOutput, m.path, err)
	}

	return nil
}
