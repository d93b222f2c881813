package workflow

import (
	"time"

	"qa-warehouse-api-server/internal/models"
)

// AdjustmentMachine: both decisions are terminal.
var AdjustmentMachine = NewMachine[models.AdjustmentStatus]("stock adjustment",
	Rule[models.AdjustmentStatus]{Action: ActionApprove, From: []models.AdjustmentStatus{models.AdjustmentPending}, To: models.AdjustmentApproved},
	Rule[models.AdjustmentStatus]{Action: ActionReject, From: []models.AdjustmentStatus{models.AdjustmentPending}, To: models.AdjustmentRejected},
)

// AdjustmentRequest is the create form. Quantities are pointers so that a
// missing value can be told apart from zero. Any client-sent difference is ignored.
type AdjustmentRequest struct {
	ItemCode    string `json:"itemCode"`
	ItemName    string `json:"itemName"`
	OldQuantity *int   `json:"oldQuantity"`
	NewQuantity *int   `json:"newQuantity"`
	Reason      string `json:"reason"`
	RequestedBy string `json:"-"`
}

func NewAdjustment(req AdjustmentRequest, adjustmentID, today string) (Outcome[models.StockAdjustment], error) {
	if blank(req.ItemCode) || req.OldQuantity == nil || req.NewQuantity == nil || blank(req.Reason) {
		return Outcome[models.StockAdjustment]{}, invalid("Please fill in all required fields including a reason.")
	}
	if *req.OldQuantity < 0 || *req.NewQuantity < 0 {
		return Outcome[models.StockAdjustment]{}, invalid("quantities cannot be negative")
	}
	a := models.StockAdjustment{
		AdjustmentID:   adjustmentID,
		ItemCode:       req.ItemCode,
		ItemName:       req.ItemName,
		OldQuantity:    *req.OldQuantity,
		NewQuantity:    *req.NewQuantity,
		Difference:     *req.NewQuantity - *req.OldQuantity,
		Reason:         req.Reason,
		RequestedBy:    req.RequestedBy,
		RequestedDate:  today,
		ApprovalStatus: models.AdjustmentPending,
	}
	return outcome(a, AdjustmentRequested{AdjustmentID: a.AdjustmentID, ItemCode: a.ItemCode, Difference: a.Difference}), nil
}

// ApproveAdjustment signs off the change. onHand is the current stock level of
// the item; the difference is applied to it and may not drive it negative.
func ApproveAdjustment(a models.StockAdjustment, onHand int, by, today string) (Outcome[models.StockAdjustment], error) {
	next, err := AdjustmentMachine.Next(a.ApprovalStatus, ActionApprove)
	if err != nil {
		return Outcome[models.StockAdjustment]{}, err
	}
	if onHand+a.Difference < 0 {
		return Outcome[models.StockAdjustment]{}, invalid("adjustment would leave %s at %d", a.ItemCode, onHand+a.Difference)
	}
	a.ApprovalStatus = next
	a.ApprovedBy = by
	a.ApprovedDate = today
	return outcome(a, AdjustmentApplied{AdjustmentID: a.AdjustmentID, ItemCode: a.ItemCode, Difference: a.Difference, ApprovedBy: by}), nil
}

func RejectAdjustment(a models.StockAdjustment, reason, by, today string) (Outcome[models.StockAdjustment], error) {
	next, err := AdjustmentMachine.Next(a.ApprovalStatus, ActionReject)
	if err != nil {
		return Outcome[models.StockAdjustment]{}, err
	}
	if blank(reason) {
		return Outcome[models.StockAdjustment]{}, invalid("remarks required")
	}
	a.ApprovalStatus = next
	a.ApprovedBy = by
	a.ApprovedDate = today
	a.RejectReason = reason
	return outcome(a, AdjustmentRejected{AdjustmentID: a.AdjustmentID, Reason: reason}), nil
}

// AdjustmentMovement is the ledger entry an approved adjustment appends.
func AdjustmentMovement(a models.StockAdjustment, movementID string, now time.Time) models.StockMovement {
	return models.StockMovement{
		MovementID:      movementID,
		ItemCode:        a.ItemCode,
		ItemName:        a.ItemName,
		Type:            models.MovementAdjustment,
		Quantity:        a.Difference,
		ReferenceSource: a.AdjustmentID,
		ReferenceType:   models.RefAdjustment,
		PerformedBy:     a.ApprovedBy,
		DateTime:        now,
		Notes:           a.Reason,
	}
}

// IntakeMachine: receive is legal until the batch is fully received.
// The resulting state depends on the quantity, see ReceiptStatusFor.
var IntakeMachine = NewMachine[models.ReceiptStatus]("production intake",
	Rule[models.ReceiptStatus]{Action: ActionReceive, From: []models.ReceiptStatus{models.ReceiptPending, models.ReceiptPartial}},
)

func ReceiptStatusFor(received, approved int) models.ReceiptStatus {
	switch {
	case received <= 0:
		return models.ReceiptPending
	case received < approved:
		return models.ReceiptPartial
	default:
		return models.ReceiptReceived
	}
}

// Receipt is one delivery of goods into a storage location.
type Receipt struct {
	Quantity   int
	Location   string
	ReceivedBy string
	Date       string
	Notes      string
}

func Receive(p models.ProductionIntake, r Receipt) (Outcome[models.ProductionIntake], error) {
	if _, err := IntakeMachine.Next(p.ReceiptStatus, ActionReceive); err != nil {
		return Outcome[models.ProductionIntake]{}, err
	}
	if blank(r.Location) {
		return Outcome[models.ProductionIntake]{}, invalid("Please fill in quantity received and storage location.")
	}
	if r.Quantity <= 0 {
		return Outcome[models.ProductionIntake]{}, invalid("Quantity must be greater than 0.")
	}
	if remaining := p.Remaining(); r.Quantity > remaining {
		return Outcome[models.ProductionIntake]{}, invalid("Cannot receive more than remaining quantity (%d).", remaining)
	}
	p.ReceivedQuantity += r.Quantity
	p.ReceiptStatus = ReceiptStatusFor(p.ReceivedQuantity, p.ApprovedQuantity)
	p.ReceivedDate = r.Date
	p.StorageLocation = r.Location
	p.ReceivedBy = r.ReceivedBy
	if r.Notes != "" {
		p.Notes = r.Notes
	}
	return outcome(p, GoodsReceived{
		WorkOrderNo: p.WorkOrderNo,
		ProductSKU:  p.ProductSKU,
		Quantity:    r.Quantity,
		Location:    r.Location,
		ReceivedBy:  r.ReceivedBy,
	}), nil
}

// IntakeFor is the pending intake an approved batch produces.
func IntakeFor(item models.ApprovalItem) models.ProductionIntake {
	approved := ""
	if item.DecidedAt != nil {
		approved = item.DecidedAt.Format(models.DateLayout)
	}
	return models.ProductionIntake{
		WorkOrderNo:      item.WorkOrder,
		ProductSKU:       item.SKU,
		ProductName:      item.ProductName,
		InspectionID:     item.InspectionID,
		ApprovedQuantity: item.Quantity,
		QAApprovalDate:   approved,
		ReceiptStatus:    models.ReceiptPending,
	}
}

// IntakeMovement is the stock-in entry of one receipt.
func IntakeMovement(p models.ProductionIntake, r Receipt, movementID string, now time.Time) models.StockMovement {
	return models.StockMovement{
		MovementID:      movementID,
		ItemCode:        p.ProductSKU,
		ItemName:        p.ProductName,
		Type:            models.MovementStockIn,
		Quantity:        r.Quantity,
		ReferenceSource: p.WorkOrderNo,
		ReferenceType:   models.RefWorkOrder,
		ToLocation:      r.Location,
		PerformedBy:     r.ReceivedBy,
		DateTime:        now,
		Notes:           "Production intake from QA-approved batch",
	}
}

// MovementRequest is a manually recorded movement. Quantity is the magnitude;
// the recorded sign follows the type. Override permits a stock-out larger
// than the quantity on hand.
type MovementRequest struct {
	Type            models.MovementType  `json:"type"`
	ItemCode        string               `json:"itemCode"`
	ItemName        string               `json:"itemName"`
	Quantity        int                  `json:"quantity"`
	ReferenceSource string               `json:"referenceSource"`
	ReferenceType   models.ReferenceType `json:"referenceType"`
	FromLocation    string               `json:"fromLocation"`
	ToLocation      string               `json:"toLocation"`
	Notes           string               `json:"notes"`
	Override        bool                 `json:"override"`
	PerformedBy     string               `json:"-"`
}

// NewMovement validates req against onHand and builds the ledger entry.
func NewMovement(req MovementRequest, onHand int, movementID string, now time.Time) (Outcome[models.StockMovement], error) {
	if req.Type == "" || blank(req.ItemCode) || req.Quantity == 0 {
		return Outcome[models.StockMovement]{}, invalid("Please fill in all required fields.")
	}
	if req.Quantity < 0 {
		return Outcome[models.StockMovement]{}, invalid("Quantity must be greater than 0.")
	}
	m := models.StockMovement{
		MovementID:      movementID,
		ItemCode:        req.ItemCode,
		ItemName:        req.ItemName,
		Type:            req.Type,
		Quantity:        req.Quantity,
		ReferenceSource: req.ReferenceSource,
		ReferenceType:   req.ReferenceType,
		FromLocation:    req.FromLocation,
		ToLocation:      req.ToLocation,
		PerformedBy:     req.PerformedBy,
		DateTime:        now,
		Notes:           req.Notes,
	}
	switch req.Type {
	case models.MovementStockIn:
		if m.ReferenceType == "" {
			m.ReferenceType = models.RefManual
		}
	case models.MovementStockOut:
		if onHand-req.Quantity < 0 && !req.Override {
			return Outcome[models.StockMovement]{}, invalid("insufficient stock for %s: %d on hand, %d requested", req.ItemCode, onHand, req.Quantity)
		}
		m.Quantity = -req.Quantity
		if m.ReferenceType == "" {
			m.ReferenceType = models.RefManual
		}
	case models.MovementTransfer:
		if blank(req.FromLocation) || blank(req.ToLocation) {
			return Outcome[models.StockMovement]{}, invalid("Both origin and destination locations are required for transfers.")
		}
		if req.FromLocation == req.ToLocation {
			return Outcome[models.StockMovement]{}, invalid("origin and destination must differ")
		}
		m.ReferenceType = models.RefTransfer
	case models.MovementAdjustment:
		return Outcome[models.StockMovement]{}, invalid("adjustments are recorded by approving a stock adjustment")
	default:
		return Outcome[models.StockMovement]{}, invalid("unknown movement type %q", req.Type)
	}
	return outcome(m, MovementRecorded{MovementID: m.MovementID, Type: string(m.Type), ItemCode: m.ItemCode, Quantity: m.Quantity}), nil
}

// StockDelta is the change a movement makes to the item's on-hand total.
// Transfers relocate stock and leave the total unchanged.
func StockDelta(m models.StockMovement) int {
	if m.Type == models.MovementTransfer {
		return 0
	}
	return m.Quantity
}
