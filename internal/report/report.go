// Package report exports the student roster as CSV or PDF.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"mathmystery/internal/account"
)

// header is the column order shared by both formats.
var header = []string{"ID", "Name", "Username", "Email", "Score", "Level", "Lives"}

// row flattens a user record. Non-students have no progress and export
// empty progress cells.
func row(u *account.User) []string {
	score, level, lives := "", "", ""
	if u.Progress != nil {
		score = strconv.Itoa(u.Progress.Score)
		level = strconv.Itoa(u.Progress.Level)
		lives = strconv.Itoa(u.Progress.Lives)
	}
	return []string{u.ID, u.Name, u.Username, u.Email, score, level, lives}
}

// WriteCSV writes the roster to w in header order.
func WriteCSV(w io.Writer, users []*account.User) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, u := range users {
		if err := cw.Write(row(u)); err != nil {
			return fmt.Errorf("write row for %s: %w", u.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePDF renders the roster as a one-table A4 document.
func WritePDF(w io.Writer, users []*account.User) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Student Roster")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	// ID column is wide; progress columns are narrow.
	widths := []float64{52, 35, 30, 43, 12, 10, 10}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, u := range users {
		for i, cell := range row(u) {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
