package workflow

import "fmt"

// Event is emitted by a successful transition. Message is the user-facing
// confirmation text; downstream consumers key off Name.
type Event interface {
	Name() string
	Message() string
}

const (
	EventInspectorAssigned     = "inspection.assigned"
	EventInspectionStarted     = "inspection.started"
	EventDraftSaved            = "inspection.draft_saved"
	EventInspectionSubmitted   = "inspection.submitted"
	EventBatchApproved         = "approval.approved"
	EventBatchRejected         = "approval.rejected"
	EventReinspectionRequested = "approval.reinspect"
	EventInspectionReopened    = "record.reopened"
	EventCAPACreated           = "capa.created"
	EventCAPAUpdated           = "capa.updated"
	EventCAPAStarted           = "capa.started"
	EventCAPACompleted         = "capa.completed"
	EventCAPAVerified          = "capa.verified"
	EventAdjustmentRequested   = "adjustment.requested"
	EventAdjustmentApplied     = "adjustment.applied"
	EventAdjustmentRejected    = "adjustment.rejected"
	EventGoodsReceived         = "intake.received"
	EventMovementRecorded      = "movement.recorded"
)

type InspectorAssigned struct {
	InspectionID string `json:"inspectionId"`
	Inspector    string `json:"inspector"`
}

func (InspectorAssigned) Name() string { return EventInspectorAssigned }
func (e InspectorAssigned) Message() string {
	return fmt.Sprintf("%s assigned to %s.", e.InspectionID, e.Inspector)
}

type InspectionStarted struct {
	InspectionID string `json:"inspectionId"`
}

func (InspectionStarted) Name() string { return EventInspectionStarted }
func (e InspectionStarted) Message() string {
	return fmt.Sprintf("%s: inspection started.", e.InspectionID)
}

type DraftSaved struct {
	InspectionID string `json:"inspectionId"`
}

func (DraftSaved) Name() string { return EventDraftSaved }
func (e DraftSaved) Message() string {
	return fmt.Sprintf("%s: draft saved.", e.InspectionID)
}

type InspectionSubmitted struct {
	InspectionID   string  `json:"inspectionId"`
	Recommendation string  `json:"recommendation"`
	DefectRate     float64 `json:"defectRate"`
}

func (InspectionSubmitted) Name() string { return EventInspectionSubmitted }
func (e InspectionSubmitted) Message() string {
	return fmt.Sprintf("%s: inspection submitted for QA approval.", e.InspectionID)
}

// BatchApproved releases the batch to warehouse intake.
type BatchApproved struct {
	InspectionID string `json:"inspectionId"`
	WorkOrder    string `json:"workOrder"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	DecidedBy    string `json:"decidedBy"`
}

func (BatchApproved) Name() string { return EventBatchApproved }
func (e BatchApproved) Message() string {
	return fmt.Sprintf("%s: batch APPROVED. Sent to warehouse intake.", e.InspectionID)
}

// BatchRejected requires a CAPA to be raised for the batch.
type BatchRejected struct {
	InspectionID string `json:"inspectionId"`
	WorkOrder    string `json:"workOrder"`
	Remarks      string `json:"remarks"`
	DecidedBy    string `json:"decidedBy"`
}

func (BatchRejected) Name() string { return EventBatchRejected }
func (e BatchRejected) Message() string {
	return fmt.Sprintf("%s: batch REJECTED. CAPA required.", e.InspectionID)
}

type ReinspectionRequested struct {
	InspectionID string `json:"inspectionId"`
}

func (ReinspectionRequested) Name() string { return EventReinspectionRequested }
func (e ReinspectionRequested) Message() string {
	return fmt.Sprintf("%s sent back for re-inspection.", e.InspectionID)
}

type InspectionReopened struct {
	InspectionID string `json:"inspectionId"`
	Reason       string `json:"reason"`
}

func (InspectionReopened) Name() string { return EventInspectionReopened }
func (e InspectionReopened) Message() string {
	return fmt.Sprintf("%s reopened for re-inspection.", e.InspectionID)
}

type CAPACreated struct {
	CAPAID           string `json:"capaId"`
	LinkedInspection string `json:"linkedInspection"`
}

func (CAPACreated) Name() string { return EventCAPACreated }
func (CAPACreated) Message() string { return "CAPA created successfully." }

type CAPAUpdated struct {
	CAPAID string `json:"capaId"`
}

func (CAPAUpdated) Name() string { return EventCAPAUpdated }
func (CAPAUpdated) Message() string { return "CAPA updated successfully." }

type CAPAStarted struct {
	CAPAID string `json:"capaId"`
}

func (CAPAStarted) Name() string { return EventCAPAStarted }
func (e CAPAStarted) Message() string {
	return fmt.Sprintf("%s moved to In Progress.", e.CAPAID)
}

type CAPACompleted struct {
	CAPAID string `json:"capaId"`
}

func (CAPACompleted) Name() string { return EventCAPACompleted }
func (e CAPACompleted) Message() string {
	return fmt.Sprintf("%s marked as Completed. Awaiting QA verification.", e.CAPAID)
}

type CAPAVerified struct {
	CAPAID     string `json:"capaId"`
	VerifiedBy string `json:"verifiedBy"`
}

func (CAPAVerified) Name() string { return EventCAPAVerified }
func (e CAPAVerified) Message() string {
	return fmt.Sprintf("%s verified. CAPA closed successfully.", e.CAPAID)
}

type AdjustmentRequested struct {
	AdjustmentID string `json:"adjustmentId"`
	ItemCode     string `json:"itemCode"`
	Difference   int    `json:"difference"`
}

func (AdjustmentRequested) Name() string { return EventAdjustmentRequested }
func (AdjustmentRequested) Message() string {
	return "Adjustment request created. Pending approval."
}

// AdjustmentApplied changes the on-hand quantity of ItemCode by Difference.
type AdjustmentApplied struct {
	AdjustmentID string `json:"adjustmentId"`
	ItemCode     string `json:"itemCode"`
	Difference   int    `json:"difference"`
	ApprovedBy   string `json:"approvedBy"`
}

func (AdjustmentApplied) Name() string { return EventAdjustmentApplied }
func (e AdjustmentApplied) Message() string {
	return fmt.Sprintf("%s approved. Quantity updated and audit log recorded.", e.AdjustmentID)
}

type AdjustmentRejected struct {
	AdjustmentID string `json:"adjustmentId"`
	Reason       string `json:"reason"`
}

func (AdjustmentRejected) Name() string { return EventAdjustmentRejected }
func (e AdjustmentRejected) Message() string {
	return fmt.Sprintf("%s rejected.", e.AdjustmentID)
}

// GoodsReceived adds finished goods to inventory and triggers finance costing.
type GoodsReceived struct {
	WorkOrderNo string `json:"workOrderNo"`
	ProductSKU  string `json:"productSku"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	ReceivedBy  string `json:"receivedBy"`
}

func (GoodsReceived) Name() string { return EventGoodsReceived }
func (e GoodsReceived) Message() string {
	return fmt.Sprintf("%s: %d pcs received into %s. Finished goods inventory updated. Finance costing triggered.",
		e.WorkOrderNo, e.Quantity, e.Location)
}

type MovementRecorded struct {
	MovementID string `json:"movementId"`
	Type       string `json:"type"`
	ItemCode   string `json:"itemCode"`
	Quantity   int    `json:"quantity"`
}

func (MovementRecorded) Name() string { return EventMovementRecorded }
func (e MovementRecorded) Message() string {
	switch e.Type {
	case "Stock-In":
		return "Stock-in recorded. Inventory increased."
	case "Stock-Out":
		return "Stock-out recorded. Inventory decreased."
	case "Transfer":
		return "Transfer recorded successfully."
	default:
		return fmt.Sprintf("%s recorded.", e.MovementID)
	}
}
