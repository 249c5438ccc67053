// Package results persists timing samples and per-fixture averages.
package results

import "errors"

// ErrOutput is returned when an output destination cannot be opened or
// written.
var ErrOutput = errors.New("output error")

// Sample is one timed run of one fixture.
type Sample struct {
	Label   string
	Run     int
	Seconds float64
}

// Aggregate is the mean time across every run of one fixture.
type Aggregate struct {
	Label       string
	MeanSeconds float64
}

// Sink receives results in the order the benchmark produces them.
type Sink interface {
	Sample(s Sample) error
	Aggregate(a Aggregate) error
	Close() error
}

// Multi fans every call out to each sink in order.
type Multi []Sink

func (m Multi) Sample(s Sample) error {
	for _, sink := range m {
		if err := sink.Sample(s); err != nil {
			return err
		}
	}

	return nil
}

func (m Multi) Aggregate(a Aggregate) error {
	for _, sink := range m {
		if err := sink.Aggregate(a); err != nil {
			return err
		}
	}

	return nil
}

// Close closes every sink, even if some fail, and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
