package generator

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(ProgressConfig{
		Total:           100,
		Label:           TableAccounts,
		Output:          &buf,
		UpdateFrequency: time.Nanosecond,
	})

	time.Sleep(time.Millisecond)
	p.Update(50)
	assert.Contains(t, buf.String(), "raw_accounts: 50/100 (50.0%)")
	assert.NotContains(t, buf.String(), "\r")

	p.Complete()
	p.Complete()
	assert.Contains(t, buf.String(), "raw_accounts: 50 rows in")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("rows in")))
}

func TestPlainProgressFactory(t *testing.T) {
	var buf bytes.Buffer
	p := PlainProgress(&buf)("Customers", 0)
	p.Update(10)
	p.Complete()
	assert.Contains(t, buf.String(), "Customers: 10 rows in")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h30m", formatDuration(90*time.Minute))
}
