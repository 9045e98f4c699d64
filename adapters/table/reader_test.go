package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courserank/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDataReader_ReadCSV(t *testing.T) {
	path := writeCSV(t, "Q1,Q35_1,Q35_2\nResponse ID,Tax I,Auditing\nR_1,Most Beneficial,Neutral\nR_2,Neutral,\n")

	reader := NewDataReader(path)
	assert.Equal(t, ShapeIDLabel, reader.Shape())

	tbl, err := reader.ReadTable()
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, []string{"Q1", "Q35_1", "Q35_2"}, tbl.IDs())
	assert.Equal(t, []string{"Response ID", "Tax I", "Auditing"}, tbl.Labels())
	require.Len(t, tbl.DataRows(), 2)
	assert.Equal(t, "Most Beneficial", tbl.Cell(0, 1))
	// Ragged row: truncated trailing cell reads as empty.
	assert.Equal(t, "", tbl.Cell(1, 2))
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadTable()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLoadError))
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestDataReader_TooFewRows(t *testing.T) {
	path := writeCSV(t, "Q35_1\nTax I\n")

	_, err := NewDataReader(path).ReadTable()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLoadError))
}

func TestDataReader_ShapeByExtension(t *testing.T) {
	assert.Equal(t, ShapeLabelID, NewDataReader("survey.xlsx").Shape())
	assert.Equal(t, ShapeIDLabel, NewDataReader("SURVEY.CSV").Shape())
}
