package models

import "time"

// InspectionStatus is the lifecycle state of a queue item.
type InspectionStatus string

const (
	InspectionPending     InspectionStatus = "Pending"
	InspectionInProgress  InspectionStatus = "In Progress"
	InspectionForApproval InspectionStatus = "For Approval"
)

// Priority of a queue item.
type Priority string

const (
	PriorityNormal Priority = "Normal"
	PriorityUrgent Priority = "Urgent"
)

// Unassigned is the sentinel shown when no inspector has been picked yet.
const Unassigned = "—"

// ChecklistItem is one pass/fail criterion on the inspection form.
type ChecklistItem struct {
	ID       string `bson:"id" json:"id"`
	Criteria string `bson:"criteria" json:"criteria"`
	Result   Result `bson:"result" json:"result"`
}

// InspectionQueueItem is a production output waiting for quality inspection.
type InspectionQueueItem struct {
	Meta              `bson:",inline"`
	InspectionID      string           `bson:"inspectionId" json:"inspectionId"`
	WorkOrderNo       string           `bson:"workOrderNo" json:"workOrderNo"`
	ProductSKU        string           `bson:"productSku" json:"productSku"`
	ProductName       string           `bson:"productName" json:"productName"`
	Quantity          int              `bson:"quantity" json:"quantity"`
	Priority          Priority         `bson:"priority" json:"priority"`
	AssignedInspector string           `bson:"assignedInspector" json:"assignedInspector"`
	DueDate           string           `bson:"dueDate" json:"dueDate"`
	Status            InspectionStatus `bson:"status" json:"status"`
	Checklist         []ChecklistItem  `bson:"checklist" json:"checklist"`
	Defects           []DefectEntry    `bson:"defects" json:"defects"`
	DefectQuantity    int              `bson:"defectQuantity" json:"defectQuantity"`
	Notes             string           `bson:"notes" json:"notes"`
	StartedAt         *time.Time       `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
}

// HasInspector reports whether an inspector has been assigned.
func (i InspectionQueueItem) HasInspector() bool {
	return i.AssignedInspector != "" && i.AssignedInspector != Unassigned
}

// Overdue reports whether the item is still open past its due date.
func (i InspectionQueueItem) Overdue(today string) bool {
	return i.Status != InspectionForApproval && i.DueDate != "" && i.DueDate < today
}

var defaultChecklist = []ChecklistItem{
	{ID: "c1", Criteria: "Fabric weight within tolerance"},
	{ID: "c2", Criteria: "Stitching straight and even"},
	{ID: "c3", Criteria: "No loose threads"},
	{ID: "c4", Criteria: "Color matches approved swatch"},
	{ID: "c5", Criteria: "Label placement correct"},
	{ID: "c6", Criteria: "Size measurements within spec"},
	{ID: "c7", Criteria: "No stains or marks"},
	{ID: "c8", Criteria: "Zipper/button function correct"},
}

// DefaultChecklist returns a fresh, unresolved copy of the standard garment checklist.
func DefaultChecklist() []ChecklistItem {
	out := make([]ChecklistItem, len(defaultChecklist))
	copy(out, defaultChecklist)
	return out
}
