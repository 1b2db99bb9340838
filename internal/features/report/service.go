package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/features/grn"
	"grn-console/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const sheetName = "GRN Approvals"

var columns = []string{
	"GRN No", "Planned Date", "GRN Date", "Party Name", "Party Bill No", "Bill Amount",
	"Stage", "Sent", "Admin Approved", "GM Approved", "Closed", "Updated At",
}

// ExportRequest selects the records to export. Empty Role exports every record.
type ExportRequest struct {
	Role   common_models.Role
	View   grn.View
	Format string
}

type ReportService interface {
	ExportApprovals(ctx context.Context, req ExportRequest) ([]byte, string, error)
}

type ReportServiceImpl struct {
	Approvals grn.ApprovalService
	Now       func() time.Time
}

func NewReportService(approvals grn.ApprovalService) ReportService {
	return &ReportServiceImpl{
		Approvals: approvals,
		Now:       time.Now,
	}
}

// ErrUnsupportedFormat is returned for formats other than xlsx and csv
var ErrUnsupportedFormat = errors.New("unsupported export format")

func (s *ReportServiceImpl) ExportApprovals(ctx context.Context, req ExportRequest) ([]byte, string, error) {
	format := req.Format
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatCSV {
		return nil, "", fmt.Errorf("%w %q", ErrUnsupportedFormat, req.Format)
	}

	var records []grn.ApprovalRecord
	var err error
	if req.Role == "" {
		records, err = s.Approvals.ListRecords(ctx)
	} else {
		records, err = s.Approvals.ListView(ctx, req.Role, req.View)
	}
	if err != nil {
		return nil, "", err
	}

	name := utils.FileName(format, "grn-approvals", string(req.Role), string(req.View), s.Now().Format("20060102-1504"))

	var data []byte
	switch format {
	case FormatCSV:
		data, err = s.exportToCSV(records)
	default:
		data, err = s.exportToExcel(records)
	}
	if err != nil {
		return nil, "", err
	}
	return data, name, nil
}

func row(r *grn.ApprovalRecord) []any {
	return []any{
		r.GRNNo, r.PlannedDate, r.GRNDate, r.PartyName, r.PartyBillNo, r.PartyBillAmount.StringFixed(2),
		grn.StageOf(r).String(), r.SendedBill, r.ApprovedByAdmin, r.ApprovedByGM, r.CloseBill,
		r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *ReportServiceImpl) exportToExcel(records []grn.ApprovalRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	amountFormat := "#,##0.00"
	amountStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row(&records[i])
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
		// untyped cell value keeps the amount numeric without a float64 round trip
		amountCell, _ := excelize.CoordinatesToCellName(6, i+2)
		if err := f.SetCellDefault(sheetName, amountCell, records[i].PartyBillAmount.StringFixed(2)); err != nil {
			return nil, err
		}
	}

	if len(records) > 0 {
		first, _ := excelize.CoordinatesToCellName(6, 2)
		last, _ := excelize.CoordinatesToCellName(6, len(records)+1)
		f.SetCellStyle(sheetName, first, last, amountStyle)
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (s *ReportServiceImpl) exportToCSV(records []grn.ApprovalRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for i := range records {
		r := &records[i]
		if err := w.Write([]string{
			r.GRNNo, r.PlannedDate, r.GRNDate, r.PartyName, r.PartyBillNo, r.PartyBillAmount.StringFixed(2),
			grn.StageOf(r).String(), fmt.Sprint(r.SendedBill), fmt.Sprint(r.ApprovedByAdmin),
			fmt.Sprint(r.ApprovedByGM), fmt.Sprint(r.CloseBill), r.UpdatedAt.Format(time.RFC3339),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
