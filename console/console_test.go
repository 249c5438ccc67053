package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weiihann/sortbench/fixture"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	c.Update("Sortat 10", 1, 2)
	assert.True(t, strings.HasPrefix(buf.String(), "\rProcessing Sortat 10"))
	assert.Contains(t, buf.String(), "50%")

	c.Done("Sortat 10")
	assert.Contains(t, buf.String(), "100%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	buf.Reset()
	c.Skipped(fixture.Fixture{Path: "liste/aleator_1000000.csv"})
	assert.Contains(t, buf.String(), "[skipped]")
	assert.Contains(t, buf.String(), "liste/aleator_1000000.csv")

	buf.Reset()
	c.Finish("raw.csv", "agg.csv")
	assert.Contains(t, buf.String(), "raw.csv and agg.csv")
}
