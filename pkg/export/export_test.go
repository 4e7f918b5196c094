package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Students",
		Headers: []string{"StudentId", "StudentName", "Department"},
		Rows: [][]string{
			{"175207889", "Akwesi Bonsu", "Science"},
			{"999001", "Ada, Lovelace"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := (&CSVExporter{}).Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "StudentId,StudentName,Department\n175207889,Akwesi Bonsu,Science\n999001,\"Ada, Lovelace\",\n", string(out))

	withBOM, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0xEF, 0xBB, 0xBF}, out...), withBOM)
}

func TestCSVExporterDefusesFormulas(t *testing.T) {
	data := Dataset{
		Headers: []string{"StudentName", "Grade"},
		Rows:    [][]string{{"=HYPERLINK(\"http://x\")", "A-"}, {"@SUM(A1)", "B+", "extra"}},
	}
	out, err := (&CSVExporter{}).Render(data)
	require.NoError(t, err)
	assert.Equal(t, "StudentName,Grade\n\"'=HYPERLINK(\"\"http://x\"\")\",A-\n'@SUM(A1),B+\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestFitPadsAndTruncates(t *testing.T) {
	row := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b", "c", ""}, fit(row, 4))
	assert.Equal(t, []string{"a", "b"}, fit(row, 2))
	assert.Equal(t, []string{"a", "b", "c"}, row)
}

func TestPDFExporterRaggedRows(t *testing.T) {
	data := Dataset{
		Headers: []string{"StudentId", "StudentName"},
		Rows:    [][]string{{"1"}, {"2", "Ada", "extra"}},
	}
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterWideTable(t *testing.T) {
	data := Dataset{
		Headers: []string{"a", "b", "c", "d", "e", "f", "g"},
		Rows:    [][]string{{"a very long cell value that will certainly not fit in the column"}},
	}
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
