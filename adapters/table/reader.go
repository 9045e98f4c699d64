package table

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"courserank/domain/survey"
	"courserank/internal/errors"
)

// Shape describes where the two metadata rows sit in the export.
type Shape string

const (
	// ShapeLabelID: row 0 is the question label, row 1 the import id
	// (the spreadsheet export).
	ShapeLabelID Shape = "label-id"
	// ShapeIDLabel: row 0 is the question id, row 1 the course label
	// (the raw CSV export).
	ShapeIDLabel Shape = "id-label"
)

// DataReader loads the survey export into a RawTable. It handles both
// XLSX (Sheet1) and CSV files, dispatching on the file extension. The
// reader performs no interpretation of header content; that belongs to
// the classifier.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given file path.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Shape returns the header shape implied by the file type.
func (r *DataReader) Shape() Shape {
	if r.fileType == "csv" {
		return ShapeIDLabel
	}
	return ShapeLabelID
}

// ReadTable loads the file into a RawTable, preserving header rows
// verbatim. Failures are fatal for the whole run and carry LOAD_ERROR.
func (r *DataReader) ReadTable() (*survey.RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.LoadError(r.filePath, os.ErrNotExist)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, errors.LoadError(r.filePath, err)
	}
	log.Printf("[DataReader] %s file read in %.2fms (%d rows)",
		strings.ToUpper(r.fileType), float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 3 {
		return nil, errors.LoadError(r.filePath,
			errors.InvalidInput("file must have two header rows and at least one data row"))
	}

	table := &survey.RawTable{Rows: rows, HeaderRows: 2}
	if r.Shape() == ShapeIDLabel {
		table.IDRow, table.LabelRow = 0, 1
	} else {
		table.LabelRow, table.IDRow = 0, 1
	}
	return table, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows("Sheet1")
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Survey exports are ragged past the answered columns.
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}
