package database

import (
	"context"
	"fmt"
	"time"

	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/store"

	"go.uber.org/zap"
)

// DefaultPassword is given to every seeded account.
const DefaultPassword = "Admin@2025"

// SeedEmail is the super admin account Seed creates.
const SeedEmail = "alex.hamilton@erp-admin.com"

func appendAll[T any](ctx context.Context, coll store.Collection[T], recs []T) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		saved, err := coll.Append(ctx, r)
		if err != nil {
			return out, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func feb(day, hour, minute int) time.Time {
	return time.Date(2026, time.February, day, hour, minute, 0, 0, time.UTC)
}

func resolved(results ...models.Result) []models.ChecklistItem {
	rows := models.DefaultChecklist()
	for i := range rows {
		if i < len(results) {
			rows[i].Result = results[i]
		} else {
			rows[i].Result = models.ResultPass
		}
	}
	return rows
}

// Seed loads the demo dataset unless the store already holds users.
// It reports whether anything was written.
func Seed(ctx context.Context, stores *store.Stores, log *zap.Logger) (bool, error) {
	users, err := stores.Users.List(ctx, store.All)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		log.Info("store already seeded, skipping")
		return false, nil
	}
	log.Info("seeding demo dataset")

	steps := []struct {
		name string
		run  func(context.Context, *store.Stores) error
	}{
		{"users", seedUsers},
		{"inspection queue", seedQueue},
		{"inspection records", seedRecords},
		{"capas", seedCAPAs},
		{"stock", seedStock},
		{"production intake", seedIntake},
	}
	for _, s := range steps {
		if err := s.run(ctx, stores); err != nil {
			return false, fmt.Errorf("seed %s: %w", s.name, err)
		}
	}
	log.Info("demo dataset seeded", zap.String("admin", SeedEmail))
	return true, nil
}

func seedUsers(ctx context.Context, stores *store.Stores) error {
	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return err
	}
	accounts := []models.User{
		{Email: SeedEmail, Name: "Alexandra Hamilton", Role: models.RoleSuperAdmin, Scope: "Global (All Branches)", JoinedDate: "2025-01-10"},
		{Email: "lorna.garcia@erp-admin.com", Name: "Lorna Garcia", Role: models.RoleQA, Scope: "Main Plant", JoinedDate: "2025-03-02"},
		{Email: "warehouse.manager@erp-admin.com", Name: "Warehouse Manager", Role: models.RoleWarehouse, Scope: "Main Plant", JoinedDate: "2025-04-15"},
	}
	for i := range accounts {
		accounts[i].Password = hash
		accounts[i].Status = "Active"
		accounts[i].Theme = "light"
	}
	saved, err := appendAll(ctx, stores.Users, accounts)
	if err != nil {
		return err
	}
	admin := saved[0].ID
	_, err = appendAll(ctx, stores.Sessions, []models.Session{
		{UserID: admin, Device: "Chrome on Windows", Location: "Davao City, PH", IP: "192.168.1.45", LastActive: feb(13, 9, 0)},
		{UserID: admin, Device: "Safari on iPhone 15", Location: "Davao City, PH", IP: "112.203.x.x", LastActive: feb(13, 7, 0)},
		{UserID: admin, Device: "Firefox on MacOS", Location: "Cebu City, PH", IP: "124.100.x.x", LastActive: feb(12, 18, 0)},
	})
	return err
}

func seedQueue(ctx context.Context, stores *store.Stores) error {
	item := func(id, wo, sku, name string, qty int, pr models.Priority, inspector, due string, st models.InspectionStatus) models.InspectionQueueItem {
		return models.InspectionQueueItem{
			InspectionID: id, WorkOrderNo: wo, ProductSKU: sku, ProductName: name, Quantity: qty,
			Priority: pr, AssignedInspector: inspector, DueDate: due, Status: st,
			Checklist: models.DefaultChecklist(), Defects: []models.DefectEntry{},
		}
	}
	const none = models.Unassigned
	queue := []models.InspectionQueueItem{
		item("INS-021", "WO-102", "SKU-001", "Basic Tee V2.0", 500, models.PriorityNormal, "Ana Reyes", "2026-02-13", models.InspectionPending),
		item("INS-022", "WO-107", "SKU-004", "Joggers V2.0", 400, models.PriorityNormal, "Ana Reyes", "2026-02-13", models.InspectionInProgress),
		item("INS-018", "WO-108", "SKU-007", "Cargo Pants V1.2", 350, models.PriorityUrgent, none, "2026-02-11", models.InspectionPending),
		item("INS-023", "WO-110", "SKU-001", "Basic Tee V2.0 (Batch 2)", 500, models.PriorityNormal, none, "2026-02-15", models.InspectionPending),
		item("INS-019", "WO-105", "SKU-005", "Denim Jacket V1.0", 200, models.PriorityUrgent, "Carlos Tan", "2026-02-12", models.InspectionForApproval),
		item("INS-020", "WO-099", "SKU-002", "Hoodie V1.1", 450, models.PriorityNormal, "Ana Reyes", "2026-02-13", models.InspectionForApproval),
		item("INS-024", "WO-111", "SKU-003", "Polo Shirt V1.3", 300, models.PriorityNormal, none, "2026-02-16", models.InspectionPending),
		item("INS-025", "WO-096", "SKU-004", "Joggers (Batch 1)", 600, models.PriorityNormal, "Carlos Tan", "2026-02-14", models.InspectionInProgress),
	}
	started := feb(12, 8, 0)
	queue[1].StartedAt, queue[7].StartedAt = &started, &started

	queue[4].Checklist = resolved(models.ResultPass, models.ResultFail, models.ResultPass, models.ResultPass, models.ResultPass, models.ResultPass, models.ResultFail)
	queue[4].Defects = []models.DefectEntry{{Type: "Fabric Defect", Count: 8, Severity: "High"}, {Type: "Stitching", Count: 2, Severity: "Medium"}}
	queue[4].DefectQuantity = 10
	queue[4].Notes = "Fabric tear on 8 units. Rework recommended. CAPA required."
	queue[5].Checklist = resolved()
	queue[5].Notes = "Clean batch. No issues."

	saved, err := appendAll(ctx, stores.Queue, queue)
	if err != nil {
		return err
	}
	denim, hoodie := saved[4], saved[5]
	_, err = appendAll(ctx, stores.Approvals, []models.ApprovalItem{
		{
			QueueItemID: denim.ID, InspectionID: denim.InspectionID, WorkOrder: denim.WorkOrderNo, SKU: denim.ProductSKU,
			ProductName: denim.ProductName, Quantity: denim.Quantity, DefectRate: 5.0, MajorDefects: 8, ChecklistScore: 58,
			SubmittedBy: "Carlos Tan", TimeSubmitted: feb(12, 8, 30), Recommendation: models.ResultFail,
			DefectBreakdown: denim.Defects, Attachments: 5, Notes: denim.Notes, Status: models.ApprovalForApproval,
		},
		{
			QueueItemID: hoodie.ID, InspectionID: hoodie.InspectionID, WorkOrder: hoodie.WorkOrderNo, SKU: hoodie.ProductSKU,
			ProductName: hoodie.ProductName, Quantity: hoodie.Quantity, DefectRate: 0, MajorDefects: 0, ChecklistScore: 100,
			SubmittedBy: "Ana Reyes", TimeSubmitted: feb(12, 8, 50), Recommendation: models.ResultPass,
			DefectBreakdown: []models.DefectEntry{}, Attachments: 2, Notes: hoodie.Notes, Status: models.ApprovalForApproval,
		},
	})
	return err
}

func seedRecords(ctx context.Context, stores *store.Stores) error {
	rec := func(id, wo, sku, name string, result models.RecordResult, count int, rate float64, inspector, date string, score float64, notes string, defects ...models.DefectEntry) models.InspectionRecord {
		if defects == nil {
			defects = []models.DefectEntry{}
		}
		return models.InspectionRecord{
			InspectionID: id, WorkOrder: wo, SKU: sku, ProductName: name, Result: result,
			DefectCount: count, DefectRate: rate, DefectTypes: defects, Inspector: inspector,
			QADecisionBy: "Lorna Garcia", DateCompleted: date, ChecklistScore: score, Notes: notes,
		}
	}
	_, err := appendAll(ctx, stores.Records, []models.InspectionRecord{
		rec("INS-015", "WO-095", "SKU-003", "Polo Shirt V1.2", models.RecordApproved, 1, 0.3, "Ana Reyes", "2026-02-10", 95, "Minor label offset on 1 unit.",
			models.DefectEntry{Type: "Label Placement", Count: 1, Severity: "Low"}),
		rec("INS-014", "WO-094", "SKU-001", "Basic Tee V1.5", models.RecordApproved, 0, 0, "Carlos Tan", "2026-02-09", 100, ""),
		rec("INS-013", "WO-093", "SKU-002", "Hoodie V1.0", models.RecordRejected, 18, 4.5, "Ana Reyes", "2026-02-08", 62, "Multiple stitching defects. CAPA required.",
			models.DefectEntry{Type: "Stitching", Count: 14, Severity: "High"}, models.DefectEntry{Type: "Loose Thread", Count: 4, Severity: "Low"}),
		rec("INS-012", "WO-092", "SKU-005", "Denim Jacket V1.0", models.RecordRejected, 15, 7.5, "Carlos Tan", "2026-02-07", 54, "Fabric tear detected on 15 units.",
			models.DefectEntry{Type: "Fabric Defect", Count: 15, Severity: "High"}),
		rec("INS-011", "WO-091", "SKU-004", "Joggers V1.8", models.RecordApproved, 2, 0.5, "Ana Reyes", "2026-02-06", 90, "Two units with minor color variation.",
			models.DefectEntry{Type: "Color Issue", Count: 2, Severity: "Low"}),
		rec("INS-010", "WO-090", "SKU-001", "Basic Tee V1.5 (B2)", models.RecordApproved, 0, 0, "Jessa Lim", "2026-02-05", 100, ""),
		rec("INS-009", "WO-089", "SKU-006", "Tank Top V1.0", models.RecordApproved, 3, 1.0, "Carlos Tan", "2026-02-04", 88, "Minor finishing defects.",
			models.DefectEntry{Type: "Finishing", Count: 3, Severity: "Low"}),
		rec("INS-008", "WO-088", "SKU-002", "Hoodie V1.0 (B2)", models.RecordRejected, 22, 5.5, "Ana Reyes", "2026-02-03", 48, "Recurring stitching issue. CAPA-003 created.",
			models.DefectEntry{Type: "Stitching", Count: 22, Severity: "High"}),
	})
	return err
}

func seedCAPAs(ctx context.Context, stores *store.Stores) error {
	_, err := appendAll(ctx, stores.CAPAs, []models.CAPA{
		{CAPAID: "CAPA-001", LinkedInspection: "INS-005", LinkedDefect: "DEF-001", RootCause: "Incorrect thread tension on machine #3",
			AssignedTo: "Maria Santos", AssignedDept: "Production", DueDate: "2026-02-08", Status: models.CAPAVerified,
			CorrectiveSteps: []string{"Recalibrated machine #3", "Updated maintenance schedule", "Retrained operator"},
			Evidence: 3, CreatedDate: "2026-01-28", Notes: "Verified, no recurrence in 14 days.", VerifiedBy: "Lorna Garcia"},
		{CAPAID: "CAPA-002", LinkedInspection: "INS-007", LinkedDefect: "DEF-003", RootCause: "Supplier fabric batch defective",
			AssignedTo: "Juan Cruz", AssignedDept: "Warehouse", DueDate: "2026-02-10", Status: models.CAPACompleted,
			CorrectiveSteps: []string{"Returned defective batch to supplier", "Updated incoming inspection checklist", "Added supplier quality audit"},
			Evidence: 2, CreatedDate: "2026-02-01", Notes: "Awaiting QA verification."},
		{CAPAID: "CAPA-003", LinkedInspection: "INS-008", LinkedDefect: "DEF-003", RootCause: "Recurring stitching defect, operator training gap",
			AssignedTo: "Maria Santos", AssignedDept: "Production", DueDate: "2026-02-15", Status: models.CAPAInProgress,
			CorrectiveSteps: []string{"Scheduled retraining for operators", "Updated SOP for stitching process"},
			Evidence: 1, CreatedDate: "2026-02-04", Notes: "Training session scheduled for Feb 14."},
		{CAPAID: "CAPA-004", LinkedInspection: "INS-010", LinkedDefect: "DEF-006", RootCause: "Mislabeled size tags from supplier",
			AssignedTo: "Jessa Lim", AssignedDept: "QA", DueDate: "2026-02-12", Status: models.CAPACompleted,
			CorrectiveSteps: []string{"Issued corrective notice to supplier", "Added label verification step to incoming QC"},
			Evidence: 2, CreatedDate: "2026-02-06", Notes: "Pending verification."},
		{CAPAID: "CAPA-005", LinkedInspection: "INS-012", LinkedDefect: "DEF-002", RootCause: "Fabric tear due to excessive tension in cutting process",
			AssignedTo: "Maria Santos", AssignedDept: "Production", DueDate: "2026-02-18", Status: models.CAPAOpen,
			CorrectiveSteps: []string{}, CreatedDate: "2026-02-08", Notes: "Root cause confirmed. Corrective steps pending."},
		{CAPAID: "CAPA-006", LinkedInspection: "INS-015", LinkedDefect: "DEF-007", RootCause: "Pattern grading error for polo collar",
			AssignedTo: "Ana Reyes", AssignedDept: "QA", DueDate: "2026-02-20", Status: models.CAPAOpen,
			CorrectiveSteps: []string{}, CreatedDate: "2026-02-11", Notes: "Investigation ongoing."},
	})
	return err
}

func seedStock(ctx context.Context, stores *store.Stores) error {
	level := func(code, name string, qty int) models.StockLevel {
		return models.StockLevel{Meta: models.Meta{ID: code}, ItemCode: code, ItemName: name, Quantity: qty}
	}
	_, err := appendAll(ctx, stores.Levels, []models.StockLevel{
		level("MAT-001", "Cotton Fabric", 120),
		level("MAT-002", "Denim Fabric", 85),
		level("MAT-003", "Polyester Thread", 120),
		level("MAT-004", "Silk Fabric", 250),
		level("MAT-005", "Elastic Band", 0),
		level("MAT-006", "Zipper (Metal)", 500),
		level("MAT-007", "Button (Shell)", 1200),
		level("SKU-001", "Basic Tee V2.0", 350),
		level("SKU-002", "Hoodie V1.1", 450),
	})
	if err != nil {
		return err
	}

	adj := func(id, code, name string, before, after int, reason, by, date string, st models.AdjustmentStatus) models.StockAdjustment {
		a := models.StockAdjustment{
			AdjustmentID: id, ItemCode: code, ItemName: name, OldQuantity: before, NewQuantity: after,
			Difference: after - before, Reason: reason, RequestedBy: by, RequestedDate: date, ApprovalStatus: st,
		}
		if st != models.AdjustmentPending {
			a.ApprovedBy, a.ApprovedDate = "Branch Admin", date
		}
		return a
	}
	_, err = appendAll(ctx, stores.Adjustments, []models.StockAdjustment{
		adj("ADJ-045", "MAT-002", "Denim Fabric", 90, 85, "Physical count discrepancy, 5 rolls missing from storage.", "Warehouse Staff A", "2026-02-13", models.AdjustmentApproved),
		adj("ADJ-046", "MAT-005", "Elastic Band", 0, 10, "Unreported return from production found during audit.", "Warehouse Staff B", "2026-02-13", models.AdjustmentPending),
		adj("ADJ-047", "MAT-002", "Denim Fabric", 85, 35, "Large discrepancy found during physical count. Investigation required.", "Warehouse Manager", "2026-02-12", models.AdjustmentPending),
		adj("ADJ-044", "MAT-003", "Polyester Thread", 100, 120, "Supplier delivered extra that was not recorded.", "Warehouse Staff A", "2026-02-11", models.AdjustmentApproved),
		adj("ADJ-043", "MAT-007", "Button (Shell)", 1250, 1200, "Inventory reconciliation, shrinkage during handling.", "Warehouse Staff B", "2026-02-10", models.AdjustmentApproved),
		adj("ADJ-042", "MAT-001", "Cotton Fabric", 120, 110, "Damaged material discarded.", "Warehouse Manager", "2026-02-09", models.AdjustmentRejected),
		adj("ADJ-041", "MAT-006", "Zipper (Metal)", 480, 500, "Found uncounted box during reorganization.", "Warehouse Staff A", "2026-02-08", models.AdjustmentApproved),
	})
	if err != nil {
		return err
	}

	mov := func(id, code, name string, t models.MovementType, qty int, ref string, rt models.ReferenceType, by string, at time.Time, notes string) models.StockMovement {
		return models.StockMovement{
			MovementID: id, ItemCode: code, ItemName: name, Type: t, Quantity: qty,
			ReferenceSource: ref, ReferenceType: rt, PerformedBy: by, DateTime: at, Notes: notes,
		}
	}
	transfer := mov("MOV-304", "MAT-004", "Silk Fabric", models.MovementTransfer, 30, "TRF-012", models.RefTransfer, "Warehouse Staff A", feb(13, 11, 45), "Storage A to Storage B")
	transfer.FromLocation, transfer.ToLocation = "Storage A - Section 1", "Storage B - Section 1"
	_, err = appendAll(ctx, stores.Movements, []models.StockMovement{
		mov("MOV-301", "MAT-001", "Cotton Fabric", models.MovementStockIn, 50, "PO-2045", models.RefPurchase, "Warehouse Staff A", feb(13, 9, 30), "Received from Supplier ABC"),
		mov("MOV-302", "SKU-001", "Basic Tee V2.0", models.MovementStockOut, -200, "SHP-089", models.RefShipment, "Warehouse Staff B", feb(13, 10, 15), "Shipment to Manila outlet"),
		mov("MOV-303", "MAT-002", "Denim Fabric", models.MovementAdjustment, -5, "ADJ-045", models.RefAdjustment, "Warehouse Manager", feb(13, 11, 0), "Approved correction from physical count"),
		transfer,
		mov("MOV-305", "SKU-002", "Hoodie V1.1", models.MovementStockIn, 450, "WO-099", models.RefWorkOrder, "Warehouse Manager", feb(12, 16, 30), "Production intake from QA-approved batch"),
		mov("MOV-306", "MAT-003", "Polyester Thread", models.MovementStockIn, 200, "PO-2046", models.RefPurchase, "Warehouse Staff B", feb(12, 14, 0), ""),
		mov("MOV-307", "SKU-001", "Basic Tee V2.0", models.MovementStockOut, -150, "WO-107", models.RefWorkOrder, "Warehouse Staff A", feb(12, 10, 30), "Material issued to production"),
		mov("MOV-308", "MAT-006", "Zipper (Metal)", models.MovementStockIn, 300, "PO-2044", models.RefPurchase, "Warehouse Staff B", feb(11, 9, 0), ""),
		mov("MOV-309", "MAT-005", "Elastic Band", models.MovementStockOut, -40, "WO-105", models.RefWorkOrder, "Warehouse Staff A", feb(10, 15, 30), "Used up last stock"),
		mov("MOV-310", "MAT-001", "Cotton Fabric", models.MovementStockIn, 100, "RTN-005", models.RefReturn, "Warehouse Manager", feb(10, 11, 0), "Returned from production, unused"),
	})
	return err
}

func seedIntake(ctx context.Context, stores *store.Stores) error {
	intake := func(wo, sku, name string, qty int, approved string) models.ProductionIntake {
		return models.ProductionIntake{
			WorkOrderNo: wo, ProductSKU: sku, ProductName: name, ApprovedQuantity: qty,
			QAApprovalDate: approved, ReceiptStatus: models.ReceiptPending,
		}
	}
	receivedAs := func(p models.ProductionIntake, qty int, date, loc, by, notes string) models.ProductionIntake {
		p.ReceivedQuantity = qty
		p.ReceivedDate = date
		p.StorageLocation = loc
		p.ReceivedBy = by
		p.Notes = notes
		p.ReceiptStatus = models.ReceiptReceived
		if qty < p.ApprovedQuantity {
			p.ReceiptStatus = models.ReceiptPartial
		}
		return p
	}
	_, err := appendAll(ctx, stores.Intakes, []models.ProductionIntake{
		intake("WO-102", "SKU-001", "Basic Tee V2.0", 500, "2026-02-11"),
		intake("WO-096", "SKU-004", "Joggers V2.0", 600, "2026-02-12"),
		intake("WO-101", "SKU-002", "Hoodie V1.1 (Rework)", 15, "2026-02-13"),
		receivedAs(intake("WO-099", "SKU-002", "Hoodie V1.1", 450, "2026-02-10"), 450, "2026-02-12", "Storage A - Section 2", "Warehouse Manager", "Full batch received. No discrepancy."),
		receivedAs(intake("WO-095", "SKU-003", "Polo Shirt V1.3", 300, "2026-02-08"), 300, "2026-02-09", "Storage A - Section 1", "Warehouse Staff A", ""),
		receivedAs(intake("WO-090", "SKU-005", "Denim Jacket V1.0", 200, "2026-02-05"), 200, "2026-02-06", "Storage B - Section 3", "Warehouse Staff B", ""),
		receivedAs(intake("WO-107", "SKU-004", "Joggers V2.0 (Batch 2)", 280, "2026-02-13"), 150, "2026-02-13", "Storage A - Section 3", "Warehouse Manager", "Partial receipt, remaining 130 to follow."),
	})
	return err
}
