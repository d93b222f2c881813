package models

import "time"

// AdjustmentStatus of a stock adjustment request.
type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "Pending"
	AdjustmentApproved AdjustmentStatus = "Approved"
	AdjustmentRejected AdjustmentStatus = "Rejected"
)

// StockAdjustment is a controlled correction request to an inventory quantity.
// Difference is always NewQuantity - OldQuantity.
type StockAdjustment struct {
	Meta           `bson:",inline"`
	AdjustmentID   string           `bson:"adjustmentId" json:"adjustmentId"`
	ItemCode       string           `bson:"itemCode" json:"itemCode"`
	ItemName       string           `bson:"itemName" json:"itemName"`
	OldQuantity    int              `bson:"oldQuantity" json:"oldQuantity"`
	NewQuantity    int              `bson:"newQuantity" json:"newQuantity"`
	Difference     int              `bson:"difference" json:"difference"`
	Reason         string           `bson:"reason" json:"reason"`
	RequestedBy    string           `bson:"requestedBy" json:"requestedBy"`
	RequestedDate  string           `bson:"requestedDate" json:"requestedDate"`
	ApprovalStatus AdjustmentStatus `bson:"approvalStatus" json:"approvalStatus"`
	ApprovedBy     string           `bson:"approvedBy" json:"approvedBy"`
	ApprovedDate   string           `bson:"approvedDate" json:"approvedDate"`
	RejectReason   string           `bson:"rejectReason,omitempty" json:"rejectReason,omitempty"`
}

// MovementType is the direction class of a stock movement.
type MovementType string

const (
	MovementStockIn    MovementType = "Stock-In"
	MovementStockOut   MovementType = "Stock-Out"
	MovementTransfer   MovementType = "Transfer"
	MovementAdjustment MovementType = "Adjustment"
)

// ReferenceType names what caused a movement.
type ReferenceType string

const (
	RefPurchase   ReferenceType = "Purchase"
	RefWorkOrder  ReferenceType = "Work Order"
	RefManual     ReferenceType = "Manual"
	RefReturn     ReferenceType = "Return"
	RefShipment   ReferenceType = "Shipment"
	RefTransfer   ReferenceType = "Transfer"
	RefAdjustment ReferenceType = "Adjustment"
)

// StockMovement is an append-only audit entry of a quantity change.
// The sign of Quantity encodes direction.
type StockMovement struct {
	Meta            `bson:",inline"`
	MovementID      string        `bson:"movementId" json:"movementId"`
	ItemCode        string        `bson:"itemCode" json:"itemCode"`
	ItemName        string        `bson:"itemName" json:"itemName"`
	Type            MovementType  `bson:"type" json:"type"`
	Quantity        int           `bson:"quantity" json:"quantity"`
	ReferenceSource string        `bson:"referenceSource" json:"referenceSource"`
	ReferenceType   ReferenceType `bson:"referenceType" json:"referenceType"`
	FromLocation    string        `bson:"fromLocation,omitempty" json:"fromLocation,omitempty"`
	ToLocation      string        `bson:"toLocation,omitempty" json:"toLocation,omitempty"`
	PerformedBy     string        `bson:"performedBy" json:"performedBy"`
	DateTime        time.Time     `bson:"dateTime" json:"dateTime"`
	Notes           string        `bson:"notes" json:"notes"`
}

// StockLevel is the on-hand quantity of one item code.
type StockLevel struct {
	Meta     `bson:",inline"`
	ItemCode string `bson:"itemCode" json:"itemCode"`
	ItemName string `bson:"itemName" json:"itemName"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// ReceiptStatus of a production intake, derived from received vs approved quantity.
type ReceiptStatus string

const (
	ReceiptPending  ReceiptStatus = "Pending"
	ReceiptPartial  ReceiptStatus = "Partial"
	ReceiptReceived ReceiptStatus = "Received"
)

// ProductionIntake tracks receipt of QA-approved goods into warehouse stock.
type ProductionIntake struct {
	Meta             `bson:",inline"`
	WorkOrderNo      string        `bson:"workOrderNo" json:"workOrderNo"`
	ProductSKU       string        `bson:"productSku" json:"productSku"`
	ProductName      string        `bson:"productName" json:"productName"`
	InspectionID     string        `bson:"inspectionId" json:"inspectionId"`
	ApprovedQuantity int           `bson:"approvedQuantity" json:"approvedQuantity"`
	QAApprovalDate   string        `bson:"qaApprovalDate" json:"qaApprovalDate"`
	ReceiptStatus    ReceiptStatus `bson:"receiptStatus" json:"receiptStatus"`
	ReceivedQuantity int           `bson:"receivedQuantity" json:"receivedQuantity"`
	ReceivedDate     string        `bson:"receivedDate" json:"receivedDate"`
	StorageLocation  string        `bson:"storageLocation" json:"storageLocation"`
	ReceivedBy       string        `bson:"receivedBy" json:"receivedBy"`
	Notes            string        `bson:"notes" json:"notes"`
}

// Remaining is the quantity still to be received.
func (p ProductionIntake) Remaining() int {
	return p.ApprovedQuantity - p.ReceivedQuantity
}
