package report_test

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/hermes/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	t.Run("writes header and ordered rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.WriteCSV(&buf, sampleResults()))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)

		assert.Equal(t, []string{"Address", "Drive Time (min)", "Distance (miles)", "Status"}, records[0])
		assert.Equal(t, []string{"1425 Frontier Rd, Bridgewater, NJ 08807", "14.2", "6.0", "Within range"}, records[1])
		assert.Equal(t, []string{"41 Mt Horeb Rd, Warren, NJ 07059", "31.7", "18.9", "Out of range"}, records[3])
	})

	t.Run("error rows leave numeric fields blank", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.WriteCSV(&buf, sampleResults()))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)

		assert.Equal(t, []string{"10 Unknown Way, Nowhere", "", "", "Error"}, records[2])
	})

	t.Run("empty results still write the header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.WriteCSV(&buf, nil))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}

func TestWriteXLSX(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "results.xlsx")

	require.NoError(t, report.WriteXLSX(path, sampleResults()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Address", "Drive Time (min)", "Distance (miles)", "Status"}, rows[0])
	assert.Equal(t, "1425 Frontier Rd, Bridgewater, NJ 08807", rows[1][0])
	assert.Equal(t, "Within range", rows[1][3])
	assert.Equal(t, "Error", rows[2][3])
}
