package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Format selects the export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts raw input into a Format. An empty value defaults to
// CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported export format %q", value))
}

// Table is a rendered report before serialization: one sheet of header plus
// string rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Export is a serialized report ready to stream to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Render serializes the table in the requested format.
func (t *Table) Render(format Format) (*Export, error) {
	switch format {
	case FormatCSV:
		data, err := t.csv()
		if err != nil {
			return nil, err
		}
		return &Export{
			Filename:    t.Name + ".csv",
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatXLSX:
		data, err := t.xlsx()
		if err != nil {
			return nil, err
		}
		return &Export{
			Filename:    t.Name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported export format %q", format))
}

func (t *Table) csv() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(t.Header); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv rows")
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return buf.Bytes(), nil
}

func (t *Table) xlsx() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, value := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "xlsx header cell")
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "xlsx header cell")
		}
	}
	for rowIdx, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "xlsx data cell")
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "xlsx data cell")
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write xlsx")
	}
	return buf.Bytes(), nil
}
