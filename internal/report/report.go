// Package report renders list views and QA report figures as XLSX workbooks.
package report

import (
	"fmt"
	"time"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column is one exported column of T.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) any
}

// AddSheet writes rows under a styled header row. The first call on a new
// workbook renames the default sheet instead of adding one.
func AddSheet[T any](f *excelize.File, name string, cols []Column[T], rows []T) error {
	if f.SheetCount == 1 && f.GetSheetName(0) == "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	for i, c := range cols {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(name, cell, c.Header)
		f.SetCellStyle(name, cell, cell, header)
		if c.Width > 0 {
			f.SetColWidth(name, col, col, c.Width)
		}
	}
	for r, rec := range rows {
		for i, c := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(name, cell, c.Value(rec))
		}
	}
	return nil
}

func Records(rows []models.InspectionRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := AddSheet(f, "Inspection Records", RecordColumns, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func Movements(rows []models.StockMovement) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := AddSheet(f, "Stock Movements", MovementColumns, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

var RecordColumns = []Column[models.InspectionRecord]{
	{Header: "Inspection ID", Width: 14, Value: func(r models.InspectionRecord) any { return r.InspectionID }},
	{Header: "Work Order", Width: 12, Value: func(r models.InspectionRecord) any { return r.WorkOrder }},
	{Header: "SKU", Width: 12, Value: func(r models.InspectionRecord) any { return r.SKU }},
	{Header: "Product", Width: 24, Value: func(r models.InspectionRecord) any { return r.ProductName }},
	{Header: "Result", Width: 10, Value: func(r models.InspectionRecord) any { return string(r.Result) }},
	{Header: "Defects", Width: 8, Value: func(r models.InspectionRecord) any { return r.DefectCount }},
	{Header: "Defect Rate %", Width: 12, Value: func(r models.InspectionRecord) any { return r.DefectRate }},
	{Header: "Inspector", Width: 16, Value: func(r models.InspectionRecord) any { return r.Inspector }},
	{Header: "QA Decision By", Width: 16, Value: func(r models.InspectionRecord) any { return r.QADecisionBy }},
	{Header: "Date Completed", Width: 14, Value: func(r models.InspectionRecord) any { return r.DateCompleted }},
	{Header: "Checklist Score %", Width: 14, Value: func(r models.InspectionRecord) any { return r.ChecklistScore }},
	{Header: "Reopened", Width: 10, Value: func(r models.InspectionRecord) any { return yesNo(r.Reopened) }},
	{Header: "Notes", Width: 30, Value: func(r models.InspectionRecord) any { return r.Notes }},
}

var MovementColumns = []Column[models.StockMovement]{
	{Header: "Movement ID", Width: 14, Value: func(m models.StockMovement) any { return m.MovementID }},
	{Header: "Date", Width: 18, Value: func(m models.StockMovement) any { return m.DateTime.Format("2006-01-02 15:04") }},
	{Header: "Type", Width: 12, Value: func(m models.StockMovement) any { return string(m.Type) }},
	{Header: "Item Code", Width: 12, Value: func(m models.StockMovement) any { return m.ItemCode }},
	{Header: "Item", Width: 24, Value: func(m models.StockMovement) any { return m.ItemName }},
	{Header: "Quantity", Width: 10, Value: func(m models.StockMovement) any { return m.Quantity }},
	{Header: "Reference", Width: 14, Value: func(m models.StockMovement) any { return m.ReferenceSource }},
	{Header: "Reference Type", Width: 14, Value: func(m models.StockMovement) any { return string(m.ReferenceType) }},
	{Header: "From", Width: 22, Value: func(m models.StockMovement) any { return m.FromLocation }},
	{Header: "To", Width: 22, Value: func(m models.StockMovement) any { return m.ToLocation }},
	{Header: "Performed By", Width: 16, Value: func(m models.StockMovement) any { return m.PerformedBy }},
}

// QASummary is the figure set of the QA reports page for one date range.
type QASummary struct {
	From          string                       `json:"from"`
	To            string                       `json:"to"`
	Inspections   int                          `json:"inspections"`
	Approved      int                          `json:"approved"`
	Rejected      int                          `json:"rejected"`
	RejectionRate float64                      `json:"rejectionRate"`
	TopDefects    []kpi.Count                  `json:"topDefects"`
	CAPAByStatus  map[models.CAPAStatus]int    `json:"capaByStatus"`
	CAPAClosed    float64                      `json:"capaClosedRate"`
	Overdue       []models.InspectionQueueItem `json:"overdue"`
	GeneratedAt   time.Time                    `json:"generatedAt"`
}

var capaOrder = []models.CAPAStatus{models.CAPAOpen, models.CAPAInProgress, models.CAPACompleted, models.CAPAVerified}

// Summary renders s as a workbook with one sheet per report section.
func Summary(s QASummary) (*excelize.File, error) {
	f := excelize.NewFile()
	type kv struct {
		k string
		v any
	}
	overview := []kv{
		{"From", s.From},
		{"To", s.To},
		{"Inspections", s.Inspections},
		{"Approved", s.Approved},
		{"Rejected", s.Rejected},
		{"Rejection Rate %", s.RejectionRate},
		{"CAPA Closed %", s.CAPAClosed},
		{"Generated At", s.GeneratedAt.Format(time.RFC3339)},
	}
	pairs := []Column[kv]{
		{Header: "Metric", Width: 20, Value: func(p kv) any { return p.k }},
		{Header: "Value", Width: 22, Value: func(p kv) any { return p.v }},
	}
	if err := AddSheet(f, "Overview", pairs, overview); err != nil {
		f.Close()
		return nil, err
	}

	defects := []Column[kpi.Count]{
		{Header: "Defect Type", Width: 24, Value: func(c kpi.Count) any { return c.Key }},
		{Header: "Count", Width: 10, Value: func(c kpi.Count) any { return c.Count }},
		{Header: "Share %", Width: 10, Value: func(c kpi.Count) any { return c.Share }},
	}
	if err := AddSheet(f, "Top Defects", defects, s.TopDefects); err != nil {
		f.Close()
		return nil, err
	}

	capas := make([]kv, 0, len(capaOrder))
	for _, st := range capaOrder {
		capas = append(capas, kv{string(st), s.CAPAByStatus[st]})
	}
	if err := AddSheet(f, "CAPA", pairs, capas); err != nil {
		f.Close()
		return nil, err
	}

	overdue := []Column[models.InspectionQueueItem]{
		{Header: "Inspection ID", Width: 14, Value: func(i models.InspectionQueueItem) any { return i.InspectionID }},
		{Header: "Work Order", Width: 12, Value: func(i models.InspectionQueueItem) any { return i.WorkOrderNo }},
		{Header: "Product", Width: 24, Value: func(i models.InspectionQueueItem) any { return i.ProductName }},
		{Header: "Inspector", Width: 16, Value: func(i models.InspectionQueueItem) any { return i.AssignedInspector }},
		{Header: "Due Date", Width: 12, Value: func(i models.InspectionQueueItem) any { return i.DueDate }},
		{Header: "Status", Width: 12, Value: func(i models.InspectionQueueItem) any { return string(i.Status) }},
	}
	if err := AddSheet(f, "Overdue", overdue, s.Overdue); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Filename is a dated export name, e.g. inspection-records_2025-03-10.xlsx.
func Filename(kind string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, at.Format(models.DateLayout))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
