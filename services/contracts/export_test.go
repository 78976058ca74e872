package contracts

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{
			ID:                1001,
			District:          "Lisboa",
			Location:          "Portugal, Lisboa, Lisboa",
			Keyword:           "smart city",
			Description:       "Aquisição de sensores; lote 1\ncom quebra de linha",
			ContractingEntity: "Município de Lisboa",
			ContractedEntity:  "Empresa A",
			Price:             1250000,
			PriceValid:        true,
			SigningDate:       "05/06/2023",
			PublicationDate:   "10/06/2023",
			Link:              "https://www.base.gov.pt/Base4/pt/detalhe/?type=contratos&id=1001",
		},
		{
			ID:       1003,
			District: "Porto",
			Location: "Portugal, Porto",
			Keyword:  "IoT",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleRecords())
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	reader := csv.NewReader(bytes.NewReader(out[3:]))
	reader.Comma = ReportDelimiter
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	require.Equal(t, ReportColumns, rows[0])

	// embedded delimiter and newline survive the round trip
	require.Contains(t, rows[1][3], "lote 1\ncom quebra")
	require.Equal(t, "1250000.00", rows[1][6])
	require.Equal(t, "1001", rows[1][10])

	// invalid price renders as empty, not zero
	require.Equal(t, "", rows[2][6])
}

func TestWriteCSVDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, WriteCSV(&first, sampleRecords()))
	require.NoError(t, WriteCSV(&second, sampleRecords()))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
}

var errDiskFull = errors.New("disk full")

// limitedWriter accepts at most limit bytes and then fails, simulating a
// full or broken output device.
type limitedWriter struct {
	limit   int
	written int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.limit {
		n := w.limit - w.written
		if n < 0 {
			n = 0
		}
		w.written += n
		return n, errDiskFull
	}
	w.written += len(p)
	return len(p), nil
}

func TestWriteCSVWriteFailure(t *testing.T) {
	cases := []struct {
		name  string
		limit int
	}{
		{name: "bom write fails", limit: 0},
		{name: "header write fails", limit: len(utf8Bom)},
		// enough room for the BOM and header line, fails inside a record row
		{name: "row write fails", limit: 200},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			err := WriteCSV(&limitedWriter{limit: test.limit}, sampleRecords())
			require.Error(t, err)
			require.ErrorIs(t, err, errDiskFull)
		})
	}
}

func TestExportCSVCreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.csv")
	err := ExportCSV(path, sampleRecords())
	require.Error(t, err)
	require.Contains(t, err.Error(), "create report")
}
