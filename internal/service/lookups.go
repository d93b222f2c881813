package service

import "qa-warehouse-api-server/internal/models"

// PageSizes is the rows-per-page of each list view. Zero means the default.
type PageSizes struct {
	InspectionQueue   int `json:"inspectionQueue"`
	Approvals         int `json:"approvals"`
	InspectionRecords int `json:"inspectionRecords"`
	CAPA              int `json:"capa"`
	StockAdjustments  int `json:"stockAdjustments"`
	StockMovements    int `json:"stockMovements"`
	ProductionIntake  int `json:"productionIntake"`
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (p PageSizes) withDefaults() PageSizes {
	return PageSizes{
		InspectionQueue:   orDefault(p.InspectionQueue, 6),
		Approvals:         orDefault(p.Approvals, 6),
		InspectionRecords: orDefault(p.InspectionRecords, 6),
		CAPA:              orDefault(p.CAPA, 6),
		StockAdjustments:  orDefault(p.StockAdjustments, 6),
		StockMovements:    orDefault(p.StockMovements, 7),
		ProductionIntake:  orDefault(p.ProductionIntake, 6),
	}
}

// Option is one entry of a select box.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func options[S ~string](values ...S) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: string(v), Label: string(v)}
	}
	return out
}

// Lookups are the static option lists the dashboard pages render.
type Lookups struct {
	InspectionStatuses []Option  `json:"inspectionStatuses"`
	Priorities         []Option  `json:"priorities"`
	Inspectors         []Option  `json:"inspectors"`
	Recommendations    []Option  `json:"recommendations"`
	RecordResults      []Option  `json:"recordResults"`
	CAPAStatuses       []Option  `json:"capaStatuses"`
	Departments        []Option  `json:"departments"`
	AdjustmentStatuses []Option  `json:"adjustmentStatuses"`
	MovementTypes      []Option  `json:"movementTypes"`
	ReferenceTypes     []Option  `json:"referenceTypes"`
	ReceiptStatuses    []Option  `json:"receiptStatuses"`
	StorageLocations   []Option  `json:"storageLocations"`
	Items              []Option  `json:"items"`
	Themes             []Option  `json:"themes"`
	PageSizes          PageSizes `json:"pageSizes"`
}

// Items lists the stock item codes with their display names.
var Items = []Option{
	{Value: "MAT-001", Label: "Cotton Fabric"},
	{Value: "MAT-002", Label: "Denim Fabric"},
	{Value: "MAT-003", Label: "Polyester Thread"},
	{Value: "MAT-004", Label: "Silk Fabric"},
	{Value: "MAT-005", Label: "Elastic Band"},
	{Value: "MAT-006", Label: "Zipper (Metal)"},
	{Value: "MAT-007", Label: "Button (Shell)"},
	{Value: "SKU-001", Label: "Basic Tee V2.0"},
	{Value: "SKU-002", Label: "Hoodie V1.1"},
}

var StorageLocations = []string{
	"Storage A - Section 1",
	"Storage A - Section 2",
	"Storage A - Section 3",
	"Storage B - Section 1",
	"Storage B - Section 2",
	"Storage B - Section 3",
}

func DefaultLookups(pages PageSizes) Lookups {
	return Lookups{
		InspectionStatuses: options(models.InspectionPending, models.InspectionInProgress, models.InspectionForApproval),
		Priorities:         options(models.PriorityNormal, models.PriorityUrgent),
		Inspectors:         options("Ana Reyes", "Carlos Tan", "Jessa Lim"),
		Recommendations:    options(models.ResultPass, models.ResultFail),
		RecordResults:      options(models.RecordApproved, models.RecordRejected),
		CAPAStatuses:       options(models.CAPAOpen, models.CAPAInProgress, models.CAPACompleted, models.CAPAVerified),
		Departments:        options("Production", "QA", "Warehouse"),
		AdjustmentStatuses: options(models.AdjustmentPending, models.AdjustmentApproved, models.AdjustmentRejected),
		MovementTypes:      options(models.MovementStockIn, models.MovementStockOut, models.MovementTransfer, models.MovementAdjustment),
		ReferenceTypes:     options(models.RefPurchase, models.RefWorkOrder, models.RefManual, models.RefReturn, models.RefShipment),
		ReceiptStatuses:    options(models.ReceiptPending, models.ReceiptPartial, models.ReceiptReceived),
		StorageLocations:   options(StorageLocations...),
		Items:              Items,
		Themes:             options("light", "dark"),
		PageSizes:          pages.withDefaults(),
	}
}

// itemName resolves an item code to its display name, or "" if unknown.
func itemName(code string) string {
	for _, it := range Items {
		if it.Value == code {
			return it.Label
		}
	}
	return ""
}
