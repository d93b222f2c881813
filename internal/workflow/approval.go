package workflow

import (
	"time"

	"qa-warehouse-api-server/internal/models"
)

// ApprovalMachine: every decision is terminal.
var ApprovalMachine = NewMachine[models.ApprovalStatus]("approval",
	Rule[models.ApprovalStatus]{Action: ActionApprove, From: []models.ApprovalStatus{models.ApprovalForApproval}, To: models.ApprovalApproved},
	Rule[models.ApprovalStatus]{Action: ActionReject, From: []models.ApprovalStatus{models.ApprovalForApproval}, To: models.ApprovalRejected},
	Rule[models.ApprovalStatus]{Action: ActionReinspect, From: []models.ApprovalStatus{models.ApprovalForApproval}, To: models.ApprovalReinspect},
)

// ApprovalPolicy tunes QA decisions. With RequireOverrideRemarks set, a
// decision that contradicts the system recommendation must carry remarks.
type ApprovalPolicy struct {
	RequireOverrideRemarks bool
}

// Decision is who decided, when, and why.
type Decision struct {
	By      string
	Remarks string
	At      time.Time
}

func decide(item models.ApprovalItem, status models.ApprovalStatus, d Decision) models.ApprovalItem {
	at := d.At
	item.Status = status
	item.DecidedBy = d.By
	item.DecidedAt = &at
	item.Remarks = d.Remarks
	return item
}

func (p ApprovalPolicy) Approve(item models.ApprovalItem, d Decision) (Outcome[models.ApprovalItem], error) {
	next, err := ApprovalMachine.Next(item.Status, ActionApprove)
	if err != nil {
		return Outcome[models.ApprovalItem]{}, err
	}
	if p.RequireOverrideRemarks && item.Recommendation == models.ResultFail && blank(d.Remarks) {
		return Outcome[models.ApprovalItem]{}, invalid("remarks required to approve against a Fail recommendation")
	}
	item = decide(item, next, d)
	return outcome(item, BatchApproved{
		InspectionID: item.InspectionID,
		WorkOrder:    item.WorkOrder,
		SKU:          item.SKU,
		Quantity:     item.Quantity,
		DecidedBy:    d.By,
	}), nil
}

func (p ApprovalPolicy) Reject(item models.ApprovalItem, d Decision) (Outcome[models.ApprovalItem], error) {
	next, err := ApprovalMachine.Next(item.Status, ActionReject)
	if err != nil {
		return Outcome[models.ApprovalItem]{}, err
	}
	if blank(d.Remarks) {
		return Outcome[models.ApprovalItem]{}, invalid("remarks required")
	}
	item = decide(item, next, d)
	return outcome(item, BatchRejected{
		InspectionID: item.InspectionID,
		WorkOrder:    item.WorkOrder,
		Remarks:      d.Remarks,
		DecidedBy:    d.By,
	}), nil
}

func (p ApprovalPolicy) Reinspect(item models.ApprovalItem, d Decision) (Outcome[models.ApprovalItem], error) {
	next, err := ApprovalMachine.Next(item.Status, ActionReinspect)
	if err != nil {
		return Outcome[models.ApprovalItem]{}, err
	}
	item = decide(item, next, d)
	return outcome(item, ReinspectionRequested{InspectionID: item.InspectionID}), nil
}

// RecordFor builds the history entry of a decided approval.
func RecordFor(item models.ApprovalItem, queued models.InspectionQueueItem) models.InspectionRecord {
	result := models.RecordApproved
	if item.Status == models.ApprovalRejected {
		result = models.RecordRejected
	}
	completed := ""
	if item.DecidedAt != nil {
		completed = item.DecidedAt.Format(models.DateLayout)
	}
	return models.InspectionRecord{
		QueueItemID:    item.QueueItemID,
		InspectionID:   item.InspectionID,
		WorkOrder:      item.WorkOrder,
		SKU:            item.SKU,
		ProductName:    item.ProductName,
		Result:         result,
		DefectCount:    queued.DefectQuantity,
		DefectRate:     item.DefectRate,
		DefectTypes:    item.DefectBreakdown,
		Inspector:      item.SubmittedBy,
		QADecisionBy:   item.DecidedBy,
		DateCompleted:  completed,
		ChecklistScore: item.ChecklistScore,
		Notes:          item.Remarks,
	}
}

// RecordReopened is the state of a record sent back to the queue.
const RecordReopened models.RecordResult = "Reopened"

var RecordMachine = NewMachine[models.RecordResult]("inspection record",
	Rule[models.RecordResult]{Action: ActionReopen, From: []models.RecordResult{models.RecordApproved, models.RecordRejected}, To: RecordReopened},
)

// RecordState folds the reopened flag into the decision result.
func RecordState(r models.InspectionRecord) models.RecordResult {
	if r.Reopened {
		return RecordReopened
	}
	return r.Result
}

// Reopen flags a completed record for re-inspection. A reason is mandatory.
func Reopen(r models.InspectionRecord, reason string) (Outcome[models.InspectionRecord], error) {
	if _, err := RecordMachine.Next(RecordState(r), ActionReopen); err != nil {
		return Outcome[models.InspectionRecord]{}, err
	}
	if blank(reason) {
		return Outcome[models.InspectionRecord]{}, invalid("remarks required")
	}
	r.Reopened = true
	r.ReopenReason = reason
	return outcome(r, InspectionReopened{InspectionID: r.InspectionID, Reason: reason}), nil
}
