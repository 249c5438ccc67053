package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	rawHeader       = []string{"lista", "run", "timp_sec"}
	aggregateHeader = []string{"lista", "medie_timp"}
)

// CSV writes samples and aggregates to two CSV files. Every row is flushed
// as soon as it is written.
type CSV struct {
	rawFile *os.File
	aggFile *os.File
	raw     *csv.Writer
	agg     *csv.Writer
}

// OpenCSV creates (or truncates) both output files and writes their headers.
func OpenCSV(rawPath, aggPath string) (*CSV, error) {
	rawFile, err := os.Create(rawPath)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrOutput, rawPath, err)
	}

	aggFile, err := os.Create(aggPath)
	if err != nil {
		rawFile.Close()

		return nil, fmt.Errorf("%w: create %s: %w", ErrOutput, aggPath, err)
	}

	c := &CSV{
		rawFile: rawFile,
		aggFile: aggFile,
		raw:     csv.NewWriter(rawFile),
		agg:     csv.NewWriter(aggFile),
	}

	if err := c.write(c.raw, rawHeader); err != nil {
		c.Close()

		return nil, err
	}

	if err := c.write(c.agg, aggregateHeader); err != nil {
		c.Close()

		return nil, err
	}

	return c, nil
}

func (c *CSV) Sample(s Sample) error {
	return c.write(c.raw, []string{s.Label, strconv.Itoa(s.Run), FormatSeconds(s.Seconds)})
}

func (c *CSV) Aggregate(a Aggregate) error {
	return c.write(c.agg, []string{a.Label, FormatSeconds(a.MeanSeconds)})
}

func (c *CSV) write(w *csv.Writer, record []string) error {
	if err := w.Write(record); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	return nil
}

// Close flushes, syncs and closes both files.
func (c *CSV) Close() error {
	c.raw.Flush()
	c.agg.Flush()

	err := errors.Join(
		c.raw.Error(),
		c.agg.Error(),
		c.rawFile.Sync(),
		c.aggFile.Sync(),
		c.rawFile.Close(),
		c.aggFile.Close(),
	)
	if err != nil {
		return fmt.Errorf("%w: close: %w", ErrOutput, err)
	}

	return nil
}

// FormatSeconds renders seconds as a plain decimal number.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
