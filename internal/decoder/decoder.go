package decoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MichalMitros/catalog-importer/internal/platform"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when spreadsheet file format can't be decoded.
var ErrUnsupportedFormat = errors.New("spreadsheet format not supported")

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

type format int

const (
	formatUnknown format = iota
	formatXLSX
	formatCSV
)

// Decoder decodes spreadsheet files (xlsx or csv) into sheets.
type Decoder struct{}

// Decode decodes first sheet of the file. The first row is treated as headers,
// rows with empty first cell are dropped.
// It returns platform.ErrNoDataRows when the file has less than 2 rows.
func (d Decoder) Decode(name string, data []byte) (*models.Sheet, error) {
	var (
		records [][]string
		err     error
	)

	switch detectFormat(name, data) {
	case formatXLSX:
		records, err = readWorkbook(data)
	case formatCSV:
		records, err = readCSV(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	return toSheet(records)
}

func detectFormat(name string, data []byte) format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatXLSX
	case ".csv", ".txt":
		return formatCSV
	}

	switch {
	case bytes.HasPrefix(data, zipMagic):
		return formatXLSX
	case bytes.HasPrefix(data, oleMagic):
		// legacy binary .xls
		return formatUnknown
	default:
		return formatCSV
	}
}

func readWorkbook(data []byte) ([][]string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("can't open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, platform.ErrNoDataRows
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("can't read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("can't read csv: %w", err)
		}
		records = append(records, record)
	}
}

func toSheet(records [][]string) (*models.Sheet, error) {
	if len(records) < 2 {
		return nil, platform.ErrNoDataRows
	}

	sheet := &models.Sheet{
		Headers: lo.Map(records[0], func(header string, _ int) string {
			return strings.ToLower(strings.TrimSpace(header))
		}),
		Rows: make([]models.SheetRow, 0, len(records)-1),
	}

	for ix, record := range records[1:] {
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		sheet.Rows = append(sheet.Rows, models.SheetRow{
			Line:  ix + 2,
			Cells: record,
		})
	}

	return sheet, nil
}
