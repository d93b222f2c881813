package query

import "qa-warehouse-api-server/internal/models"

// Per-page schemas. Filter keys are the query-string names the handlers accept.

var InspectionQueue = Schema[models.InspectionQueueItem]{
	Searchable: []func(models.InspectionQueueItem) string{
		func(i models.InspectionQueueItem) string { return i.InspectionID },
		func(i models.InspectionQueueItem) string { return i.WorkOrderNo },
		func(i models.InspectionQueueItem) string { return i.ProductName },
		func(i models.InspectionQueueItem) string { return i.ProductSKU },
	},
	Filters: map[string]func(models.InspectionQueueItem) string{
		"status":   func(i models.InspectionQueueItem) string { return string(i.Status) },
		"priority": func(i models.InspectionQueueItem) string { return string(i.Priority) },
	},
}

var Approvals = Schema[models.ApprovalItem]{
	Searchable: []func(models.ApprovalItem) string{
		func(a models.ApprovalItem) string { return a.InspectionID },
		func(a models.ApprovalItem) string { return a.WorkOrder },
		func(a models.ApprovalItem) string { return a.ProductName },
		func(a models.ApprovalItem) string { return a.SKU },
	},
	Filters: map[string]func(models.ApprovalItem) string{
		"recommendation": func(a models.ApprovalItem) string { return string(a.Recommendation) },
	},
}

var InspectionRecords = Schema[models.InspectionRecord]{
	Searchable: []func(models.InspectionRecord) string{
		func(r models.InspectionRecord) string { return r.InspectionID },
		func(r models.InspectionRecord) string { return r.WorkOrder },
		func(r models.InspectionRecord) string { return r.ProductName },
		func(r models.InspectionRecord) string { return r.SKU },
		func(r models.InspectionRecord) string { return r.Inspector },
	},
	Filters: map[string]func(models.InspectionRecord) string{
		"result": func(r models.InspectionRecord) string { return string(r.Result) },
	},
}

var CAPAs = Schema[models.CAPA]{
	Searchable: []func(models.CAPA) string{
		func(c models.CAPA) string { return c.CAPAID },
		func(c models.CAPA) string { return c.LinkedInspection },
		func(c models.CAPA) string { return c.LinkedDefect },
		func(c models.CAPA) string { return c.RootCause },
		func(c models.CAPA) string { return c.AssignedTo },
	},
	Filters: map[string]func(models.CAPA) string{
		"status": func(c models.CAPA) string { return string(c.Status) },
		"dept":   func(c models.CAPA) string { return c.AssignedDept },
	},
}

var StockAdjustments = Schema[models.StockAdjustment]{
	Searchable: []func(models.StockAdjustment) string{
		func(a models.StockAdjustment) string { return a.AdjustmentID },
		func(a models.StockAdjustment) string { return a.ItemCode },
		func(a models.StockAdjustment) string { return a.ItemName },
	},
	Filters: map[string]func(models.StockAdjustment) string{
		"status":   func(a models.StockAdjustment) string { return string(a.ApprovalStatus) },
		"itemCode": func(a models.StockAdjustment) string { return a.ItemCode },
	},
}

var StockMovements = Schema[models.StockMovement]{
	Searchable: []func(models.StockMovement) string{
		func(m models.StockMovement) string { return m.MovementID },
		func(m models.StockMovement) string { return m.ItemCode },
		func(m models.StockMovement) string { return m.ItemName },
		func(m models.StockMovement) string { return m.ReferenceSource },
	},
	Filters: map[string]func(models.StockMovement) string{
		"type":    func(m models.StockMovement) string { return string(m.Type) },
		"refType": func(m models.StockMovement) string { return string(m.ReferenceType) },
	},
}

var ProductionIntakes = Schema[models.ProductionIntake]{
	Searchable: []func(models.ProductionIntake) string{
		func(p models.ProductionIntake) string { return p.WorkOrderNo },
		func(p models.ProductionIntake) string { return p.ProductSKU },
		func(p models.ProductionIntake) string { return p.ProductName },
	},
	Filters: map[string]func(models.ProductionIntake) string{
		"status": func(p models.ProductionIntake) string { return string(p.ReceiptStatus) },
	},
}
