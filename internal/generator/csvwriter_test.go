package generator

import (
	"bytes"
	"encoding/csv"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/fintech-datagen/internal/utils"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: dir,
		Filename:  "things",
		Headers:   []string{"id", "name", "note"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "things.csv"), w.Path())

	require.NoError(t, w.WriteRow([]string{"1", "plain", ""}))
	require.NoError(t, w.WriteRows([][]string{
		{"2", "with, comma", FormatStringPtr(nil)},
		{"3", `with "quotes"`, "x"},
	}))
	assert.Equal(t, int64(3), w.RowCount())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")
	assert.Error(t, w.WriteRow([]string{"4"}))

	records := readCSV(t, w.Path())
	require.Len(t, records, 4)
	assert.Equal(t, []string{"id", "name", "note"}, records[0])
	assert.Equal(t, []string{"2", "with, comma", ""}, records[2])
	assert.Equal(t, `with "quotes"`, records[3][1])

	raw, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1,plain,\n", "NULL is an empty unquoted field")
}

func TestCSVWriterConcurrentRows(t *testing.T) {
	w, err := NewCSVWriter(CSVWriterConfig{OutputDir: t.TempDir(), Filename: "concurrent", BufferSize: 128})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				assert.NoError(t, w.WriteRow([]string{"a", "b"}))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	assert.Len(t, readCSV(t, w.Path()), 2000)
}

func TestCSVWriterCompressed(t *testing.T) {
	if err := CheckXZAvailable(); err != nil {
		t.Skip("xz not installed")
	}

	w, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: t.TempDir(),
		Filename:  "packed",
		Headers:   []string{"id"},
		Compress:  true,
		XZPreset:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, ".xz", filepath.Ext(w.Path()))
	for i := 0; i < 100; i++ {
		require.NoError(t, w.WriteRow([]string{FormatInt(i)}))
	}
	require.NoError(t, w.Close())

	out, err := exec.Command("xz", "-dc", w.Path()).Output()
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 101)
	assert.Equal(t, "99", records[100][0])
}

func TestFormatters(t *testing.T) {
	ts := time.Date(2025, 7, 4, 13, 5, 9, 999, time.FixedZone("X", 2*3600))
	assert.Equal(t, "2025-07-04 11:05:09", FormatTime(ts))
	assert.Equal(t, "2025-07-04", FormatDate(ts))
	assert.Equal(t, "", FormatTimePtr(nil))
	assert.Equal(t, "2025-07-04 11:05:09", FormatTimePtr(&ts))

	assert.Equal(t, "1", FormatBool(true))
	assert.Equal(t, "0", FormatBool(false))

	n := 42
	assert.Equal(t, "42", FormatIntPtr(&n))
	assert.Equal(t, "", FormatIntPtr(nil))

	assert.Equal(t, "-10000.00", FormatMoney(utils.Dollars(-10000)))
	assert.Equal(t, "0.05", FormatMoney(5))

	lat := 59.33258
	assert.Equal(t, "59.3326", FormatCoord(&lat))
	assert.Equal(t, "", FormatCoord(nil))
}
