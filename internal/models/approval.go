package models

import "time"

// ApprovalStatus tracks the QA sign-off on a submitted inspection.
type ApprovalStatus string

const (
	ApprovalForApproval ApprovalStatus = "For Approval"
	ApprovalApproved    ApprovalStatus = "Approved"
	ApprovalRejected    ApprovalStatus = "Rejected"
	ApprovalReinspect   ApprovalStatus = "Reinspect"
)

// ApprovalItem is an inspection submitted for QA decision.
// Recommendation is advisory; the decision is recorded separately.
type ApprovalItem struct {
	Meta            `bson:",inline"`
	QueueItemID     string         `bson:"queueItemId" json:"queueItemId"`
	InspectionID    string         `bson:"inspectionId" json:"inspectionId"`
	WorkOrder       string         `bson:"workOrder" json:"workOrder"`
	SKU             string         `bson:"sku" json:"sku"`
	ProductName     string         `bson:"productName" json:"productName"`
	Quantity        int            `bson:"quantity" json:"quantity"`
	DefectRate      float64        `bson:"defectRate" json:"defectRate"`
	MajorDefects    int            `bson:"majorDefects" json:"majorDefects"`
	ChecklistScore  float64        `bson:"checklistScore" json:"checklistScore"`
	SubmittedBy     string         `bson:"submittedBy" json:"submittedBy"`
	TimeSubmitted   time.Time      `bson:"timeSubmitted" json:"timeSubmitted"`
	Recommendation  Result         `bson:"recommendation" json:"recommendation"`
	DefectBreakdown []DefectEntry  `bson:"defectBreakdown" json:"defectBreakdown"`
	Attachments     int            `bson:"attachments" json:"attachments"`
	Notes           string         `bson:"notes" json:"notes"`
	Status          ApprovalStatus `bson:"status" json:"status"`
	DecidedBy       string         `bson:"decidedBy,omitempty" json:"decidedBy,omitempty"`
	DecidedAt       *time.Time     `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
	Remarks         string         `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// RecordResult is the final QA decision kept in the inspection history.
type RecordResult string

const (
	RecordApproved RecordResult = "Approved"
	RecordRejected RecordResult = "Rejected"
)

// InspectionRecord is a completed inspection with its final decision.
type InspectionRecord struct {
	Meta           `bson:",inline"`
	QueueItemID    string        `bson:"queueItemId" json:"queueItemId"`
	InspectionID   string        `bson:"inspectionId" json:"inspectionId"`
	WorkOrder      string        `bson:"workOrder" json:"workOrder"`
	SKU            string        `bson:"sku" json:"sku"`
	ProductName    string        `bson:"productName" json:"productName"`
	Result         RecordResult  `bson:"result" json:"result"`
	DefectCount    int           `bson:"defectCount" json:"defectCount"`
	DefectRate     float64       `bson:"defectRate" json:"defectRate"`
	DefectTypes    []DefectEntry `bson:"defectTypes" json:"defectTypes"`
	Inspector      string        `bson:"inspector" json:"inspector"`
	QADecisionBy   string        `bson:"qaDecisionBy" json:"qaDecisionBy"`
	DateCompleted  string        `bson:"dateCompleted" json:"dateCompleted"`
	ChecklistScore float64       `bson:"checklistScore" json:"checklistScore"`
	Notes          string        `bson:"notes" json:"notes"`
	Reopened       bool          `bson:"reopened" json:"reopened"`
	ReopenReason   string        `bson:"reopenReason,omitempty" json:"reopenReason,omitempty"`
}
