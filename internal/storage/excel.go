package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rsvp-bot/internal/models"
)

// Spreadsheet column headers. Name and phone keep the Hebrew headers of the
// guest list the sheet is imported with; the status columns are created on
// first save if the import did not carry them.
const (
	colFullName   = "שם מלא"
	colPhone      = "מספר טלפון"
	colStatus     = "Status"
	colLastSent   = "LastSent"
	colAnsweredAt = "AnsweredAt"
)

// ExcelStore keeps the guest list in the first sheet of an xlsx workbook,
// one guest per row under a header row.
type ExcelStore struct {
	file string
}

// NewExcelStore creates an xlsx backed store at filePath.
func NewExcelStore(filePath string) *ExcelStore {
	return &ExcelStore{file: filePath}
}

// LoadAll reads all guest rows in sheet order. Missing status columns
// default to empty values.
func (s *ExcelStore) LoadAll() ([]models.Guest, error) {
	f, err := excelize.OpenFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []models.Guest{}, nil
	}

	cols := map[string]int{}
	for i, header := range rows[0] {
		cols[header] = i
	}
	if _, ok := cols[colFullName]; !ok {
		return nil, fmt.Errorf("sheet %q is missing the %q column", sheet, colFullName)
	}
	if _, ok := cols[colPhone]; !ok {
		return nil, fmt.Errorf("sheet %q is missing the %q column", sheet, colPhone)
	}

	cell := func(row []string, header string) string {
		i, ok := cols[header]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	guests := make([]models.Guest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		guests = append(guests, models.Guest{
			FullName:   cell(row, colFullName),
			Phone:      cell(row, colPhone),
			Status:     models.Status(cell(row, colStatus)),
			LastSent:   cell(row, colLastSent),
			AnsweredAt: cell(row, colAnsweredAt),
		})
	}
	return guests, nil
}

// SaveAll writes the full guest list to a fresh workbook and renames it over
// the target file, so a failed save never corrupts the previous sheet.
func (s *ExcelStore) SaveAll(guests []models.Guest) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{colFullName, colPhone, colStatus, colLastSent, colAnsweredAt}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, g := range guests {
		cellAddr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{g.FullName, g.Phone, string(g.Status), g.LastSent, g.AnsweredAt}
		if err := f.SetSheetRow(sheet, cellAddr, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".guests-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := f.SaveAs(tmpName); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return os.Rename(tmpName, s.file)
}
