package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
)

// BuildSettlementPDF renders a settlement statement: the snapshot header totals
// plus the reconstructed per-day rows of its frozen window.
func BuildSettlementPDF(labourer *domain.Labourer, snap *domain.SettlementSnapshot, report *domain.LabourReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Labour Settlement Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Labourer: %s", labourer.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Settlement date: %s", snap.SettlementDate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Daily wage (at settlement): %s", snap.WageSnapshot))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Carry forward: %t", snap.IsCarryForward))
	pdf.Ln(5)
	if snap.Note != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Note: %s", snap.Note))
		pdf.Ln(5)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Opening balance: %s", snap.OpeningBalance))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total attendance (days): %s", snap.TotalAttendance))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total payable: %s", snap.TotalPayable))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total paid: %s", snap.TotalPaid))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net balance: %s", snap.NetBalance))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Attendance", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Amount paid", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, rec := range report.Records {
		pdf.CellFormat(40, 6, rec.Day.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, rec.Attendance.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, rec.Amount.String(), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSettlementXLSX renders the same statement as a two-sheet workbook.
func BuildSettlementXLSX(labourer *domain.Labourer, snap *domain.SettlementSnapshot, report *domain.LabourReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	recordsSheet := "records"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Labour Settlement Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Labourer")
	_ = f.SetCellValue(summarySheet, "B3", labourer.Name)
	_ = f.SetCellValue(summarySheet, "A4", "Settlement date")
	_ = f.SetCellValue(summarySheet, "B4", snap.SettlementDate.String())
	_ = f.SetCellValue(summarySheet, "A5", "Daily wage (at settlement)")
	_ = f.SetCellValue(summarySheet, "B5", snap.WageSnapshot.String())
	_ = f.SetCellValue(summarySheet, "A6", "Carry forward")
	_ = f.SetCellValue(summarySheet, "B6", snap.IsCarryForward)
	_ = f.SetCellValue(summarySheet, "A7", "Opening balance")
	_ = f.SetCellValue(summarySheet, "B7", snap.OpeningBalance.String())
	_ = f.SetCellValue(summarySheet, "A8", "Total attendance (days)")
	_ = f.SetCellValue(summarySheet, "B8", snap.TotalAttendance.String())
	_ = f.SetCellValue(summarySheet, "A9", "Total payable")
	_ = f.SetCellValue(summarySheet, "B9", snap.TotalPayable.String())
	_ = f.SetCellValue(summarySheet, "A10", "Total paid")
	_ = f.SetCellValue(summarySheet, "B10", snap.TotalPaid.String())
	_ = f.SetCellValue(summarySheet, "A11", "Net balance")
	_ = f.SetCellValue(summarySheet, "B11", snap.NetBalance.String())
	if snap.Note != "" {
		_ = f.SetCellValue(summarySheet, "A12", "Note")
		_ = f.SetCellValue(summarySheet, "B12", snap.Note)
	}

	_ = f.SetCellValue(recordsSheet, "A1", "Day")
	_ = f.SetCellValue(recordsSheet, "B1", "Attendance")
	_ = f.SetCellValue(recordsSheet, "C1", "Amount paid")
	for i, rec := range report.Records {
		row := i + 2
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("A%d", row), rec.Day.String())
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("B%d", row), rec.Attendance.String())
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("C%d", row), rec.Amount.String())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
