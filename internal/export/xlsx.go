// Package export renders timesheet entries as spreadsheet reports.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"timesheet-bot/internal/blocks"
	"timesheet-bot/internal/domain"
)

// SheetName is the worksheet holding the entries.
const SheetName = "Timesheet"

var header = []any{"Date", "User", "User ID", "Channel", "Client", "Hours", "Proof", "Submission"}

// WriteXLSX writes a workbook with one row per entry, in input order,
// followed by a total row.
func WriteXLSX(w io.Writer, title string, entries []domain.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "timesheet-bot"}); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		proof := ""
		if e.ProofURL != nil {
			proof = *e.ProofURL
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{
			e.SubmittedAt.Format(blocks.DateLayout),
			e.Username,
			e.UserID,
			e.ChannelID,
			e.ClientName,
			e.Hours,
			proof,
			e.SubmissionID,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		if e.ProofURL != nil {
			link, _ := excelize.CoordinatesToCellName(7, row)
			if err := f.SetCellHyperLink(SheetName, link, proof, "External"); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
		}
		row++
	}

	label, _ := excelize.CoordinatesToCellName(5, row)
	total, _ := excelize.CoordinatesToCellName(6, row)
	if err := f.SetCellValue(SheetName, label, "Total Hours"); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, total, domain.TotalHours(entries)); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, label, total, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", "H", 18); err != nil {
		return err
	}
	return f.Write(w)
}
