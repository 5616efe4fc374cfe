package decoder

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	templateSheet     = "Products"
	instructionsSheet = "Instructions"
)

type templateColumn struct {
	Header      string
	Description string
	Required    bool
	Example     string
}

var templateColumns = []templateColumn{
	{Header: "Product Name", Description: "Display name of the product", Required: true, Example: "Lucky Bracelet"},
	{Header: "SKU", Description: "Stable external identifier, used to match existing products", Example: "LB-001"},
	{Header: "Description", Description: "Product description", Example: "Hand made bracelet"},
	{Header: "Sale Price", Description: "Sale price, rounded up to whole units", Example: "39.9"},
	{
		Header:      "Image Files",
		Description: "File names from the image archive separated by comma, semicolon or pipe",
		Example:     "lb-1.jpg,lb-2.jpg",
	},
}

// Template returns xlsx workbook with import headers, an example row and instructions sheet.
func Template() ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("can't name template sheet: %w", err)
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("can't create header style: %w", err)
	}

	headers := make([]interface{}, 0, len(templateColumns))
	example := make([]interface{}, 0, len(templateColumns))
	for _, col := range templateColumns {
		headers = append(headers, col.Header)
		example = append(example, col.Example)
	}

	if err = workbook.SetSheetRow(templateSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("can't write template headers: %w", err)
	}
	if err = workbook.SetSheetRow(templateSheet, "A2", &example); err != nil {
		return nil, fmt.Errorf("can't write template example: %w", err)
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(templateColumns), 1)
	if err = workbook.SetCellStyle(templateSheet, "A1", lastCell, headerStyle); err != nil {
		return nil, fmt.Errorf("can't style template headers: %w", err)
	}
	lastColumn, _ := excelize.ColumnNumberToName(len(templateColumns))
	_ = workbook.SetColWidth(templateSheet, "A", lastColumn, 24)

	if _, err = workbook.NewSheet(instructionsSheet); err != nil {
		return nil, fmt.Errorf("can't create instructions sheet: %w", err)
	}
	_ = workbook.SetSheetRow(instructionsSheet, "A1", &[]interface{}{"Column", "Description", "Required", "Example"})
	for ix, col := range templateColumns {
		required := "No"
		if col.Required {
			required = "Yes"
		}
		cell := fmt.Sprintf("A%d", ix+2)
		_ = workbook.SetSheetRow(instructionsSheet, cell, &[]interface{}{col.Header, col.Description, required, col.Example})
	}
	_ = workbook.SetColWidth(instructionsSheet, "A", "A", 20)
	_ = workbook.SetColWidth(instructionsSheet, "B", "B", 70)

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("can't write template: %w", err)
	}

	return buf.Bytes(), nil
}
