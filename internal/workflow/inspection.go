package workflow

import (
	"slices"
	"time"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
)

// QueueMachine: Pending -> In Progress -> For Approval. Requeue is applied
// when an approval is sent back or a completed record is reopened.
var QueueMachine = NewMachine[models.InspectionStatus]("inspection",
	Rule[models.InspectionStatus]{Action: ActionAssign, From: []models.InspectionStatus{models.InspectionPending}},
	Rule[models.InspectionStatus]{Action: ActionStart, From: []models.InspectionStatus{models.InspectionPending}, To: models.InspectionInProgress},
	Rule[models.InspectionStatus]{Action: ActionSaveDraft, From: []models.InspectionStatus{models.InspectionInProgress}},
	Rule[models.InspectionStatus]{Action: ActionSubmit, From: []models.InspectionStatus{models.InspectionInProgress}, To: models.InspectionForApproval},
	Rule[models.InspectionStatus]{Action: ActionRequeue, From: []models.InspectionStatus{models.InspectionForApproval}, To: models.InspectionPending, System: true},
)

// QueueActions is what the queue page may offer for item. Start is only
// offered once an inspector is assigned.
func QueueActions(item models.InspectionQueueItem) []Action {
	actions := QueueMachine.Allowed(item.Status)
	if !item.HasInspector() {
		actions = slices.DeleteFunc(actions, func(a Action) bool { return a == ActionStart })
	}
	return actions
}

// AssignInspector sets the inspector without changing state.
func AssignInspector(item models.InspectionQueueItem, inspector string) (Outcome[models.InspectionQueueItem], error) {
	if _, err := QueueMachine.Next(item.Status, ActionAssign); err != nil {
		return Outcome[models.InspectionQueueItem]{}, err
	}
	if blank(inspector) || inspector == models.Unassigned {
		return Outcome[models.InspectionQueueItem]{}, invalid("inspector required")
	}
	item.AssignedInspector = inspector
	return outcome(item, InspectorAssigned{InspectionID: item.InspectionID, Inspector: inspector}), nil
}

// StartInspection moves an assigned item into In Progress and opens a fresh checklist.
func StartInspection(item models.InspectionQueueItem, now time.Time) (Outcome[models.InspectionQueueItem], error) {
	next, err := QueueMachine.Next(item.Status, ActionStart)
	if err != nil {
		return Outcome[models.InspectionQueueItem]{}, err
	}
	if !item.HasInspector() {
		return Outcome[models.InspectionQueueItem]{}, invalid("inspector required")
	}
	item.Status = next
	item.StartedAt = &now
	if len(item.Checklist) == 0 {
		item.Checklist = models.DefaultChecklist()
	}
	return outcome(item, InspectionStarted{InspectionID: item.InspectionID}), nil
}

// InspectionForm is the inspector's input. Checklist rows are matched by ID;
// rows not mentioned keep their current result.
type InspectionForm struct {
	Checklist      []models.ChecklistItem `json:"checklist"`
	Defects        []models.DefectEntry   `json:"defects"`
	DefectQuantity int                    `json:"defectQuantity"`
	Notes          string                 `json:"notes"`
}

func applyForm(item models.InspectionQueueItem, form InspectionForm) (models.InspectionQueueItem, error) {
	checklist := slices.Clone(item.Checklist)
	if len(checklist) == 0 {
		checklist = models.DefaultChecklist()
	}
	for _, row := range form.Checklist {
		switch row.Result {
		case models.ResultPending, models.ResultPass, models.ResultFail:
		default:
			return item, invalid("checklist result must be Pass or Fail, got %q", row.Result)
		}
		i := slices.IndexFunc(checklist, func(c models.ChecklistItem) bool { return c.ID == row.ID })
		if i < 0 {
			return item, invalid("unknown checklist item %q", row.ID)
		}
		checklist[i].Result = row.Result
	}
	if form.DefectQuantity < 0 || form.DefectQuantity > item.Quantity {
		return item, invalid("defect quantity must be between 0 and %d", item.Quantity)
	}
	for _, d := range form.Defects {
		if blank(d.Type) || d.Count < 0 {
			return item, invalid("defect entries need a type and a non-negative count")
		}
	}
	item.Checklist = checklist
	item.Defects = slices.Clone(form.Defects)
	item.DefectQuantity = form.DefectQuantity
	item.Notes = form.Notes
	return item, nil
}

// Unresolved counts checklist rows without a Pass or Fail result.
func Unresolved(checklist []models.ChecklistItem) int {
	n := 0
	for _, c := range checklist {
		if c.Result == models.ResultPending {
			n++
		}
	}
	return n
}

// SaveDraft stores partial results while the inspection stays In Progress.
func SaveDraft(item models.InspectionQueueItem, form InspectionForm) (Outcome[models.InspectionQueueItem], error) {
	if _, err := QueueMachine.Next(item.Status, ActionSaveDraft); err != nil {
		return Outcome[models.InspectionQueueItem]{}, err
	}
	item, err := applyForm(item, form)
	if err != nil {
		return Outcome[models.InspectionQueueItem]{}, err
	}
	return outcome(item, DraftSaved{InspectionID: item.InspectionID}), nil
}

// SubmitInspection hands the inspection to QA. Every checklist row must be resolved.
func SubmitInspection(item models.InspectionQueueItem, form InspectionForm) (Outcome[models.InspectionQueueItem], error) {
	next, err := QueueMachine.Next(item.Status, ActionSubmit)
	if err != nil {
		return Outcome[models.InspectionQueueItem]{}, err
	}
	item, err = applyForm(item, form)
	if err != nil {
		return Outcome[models.InspectionQueueItem]{}, err
	}
	if n := Unresolved(item.Checklist); n > 0 {
		return Outcome[models.InspectionQueueItem]{}, invalid("Please complete all checklist items. %d remaining.", n)
	}
	item.Status = next
	s := Summarize(item)
	return outcome(item, InspectionSubmitted{
		InspectionID:   item.InspectionID,
		Recommendation: string(s.Recommendation),
		DefectRate:     s.DefectRate,
	}), nil
}

// Summary is the figures QA sees for a submitted inspection.
type Summary struct {
	DefectRate     float64
	MajorDefects   int
	ChecklistScore float64
	Recommendation models.Result
}

func Summarize(item models.InspectionQueueItem) Summary {
	pass, fail := 0, 0
	for _, c := range item.Checklist {
		switch c.Result {
		case models.ResultPass:
			pass++
		case models.ResultFail:
			fail++
		}
	}
	major := 0
	for _, d := range item.Defects {
		if d.Major() {
			major += d.Count
		}
	}
	return Summary{
		DefectRate:     kpi.DefectRate(item.DefectQuantity, item.Quantity),
		MajorDefects:   major,
		ChecklistScore: kpi.ChecklistScore(pass, len(item.Checklist)),
		Recommendation: kpi.SuggestedResult(fail, item.DefectQuantity),
	}
}

// ApprovalFor builds the approval item created when item is submitted.
func ApprovalFor(item models.InspectionQueueItem, attachments int, now time.Time) models.ApprovalItem {
	s := Summarize(item)
	return models.ApprovalItem{
		QueueItemID:     item.ID,
		InspectionID:    item.InspectionID,
		WorkOrder:       item.WorkOrderNo,
		SKU:             item.ProductSKU,
		ProductName:     item.ProductName,
		Quantity:        item.Quantity,
		DefectRate:      s.DefectRate,
		MajorDefects:    s.MajorDefects,
		ChecklistScore:  s.ChecklistScore,
		SubmittedBy:     item.AssignedInspector,
		TimeSubmitted:   now,
		Recommendation:  s.Recommendation,
		DefectBreakdown: slices.Clone(item.Defects),
		Attachments:     attachments,
		Notes:           item.Notes,
		Status:          models.ApprovalForApproval,
	}
}

// Requeue returns a For Approval item to Pending with a cleared checklist.
// The assigned inspector is kept.
func Requeue(item models.InspectionQueueItem) (models.InspectionQueueItem, error) {
	next, err := QueueMachine.Next(item.Status, ActionRequeue)
	if err != nil {
		return item, err
	}
	item.Status = next
	item.Checklist = models.DefaultChecklist()
	item.Defects = nil
	item.DefectQuantity = 0
	item.StartedAt = nil
	return item, nil
}

// QueueRequest is a production batch entering the inspection queue.
type QueueRequest struct {
	WorkOrderNo       string          `json:"workOrderNo"`
	ProductSKU        string          `json:"productSku"`
	ProductName       string          `json:"productName"`
	Quantity          int             `json:"quantity"`
	Priority          models.Priority `json:"priority"`
	AssignedInspector string          `json:"assignedInspector"`
	DueDate           string          `json:"dueDate"`
}

func NewQueueItem(req QueueRequest, inspectionID string) (models.InspectionQueueItem, error) {
	if blank(req.WorkOrderNo) || blank(req.ProductSKU) || blank(req.DueDate) {
		return models.InspectionQueueItem{}, invalid("work order, SKU and due date are required")
	}
	if req.Quantity <= 0 {
		return models.InspectionQueueItem{}, invalid("Quantity must be greater than 0.")
	}
	if _, err := time.Parse(models.DateLayout, req.DueDate); err != nil {
		return models.InspectionQueueItem{}, invalid("due date must be YYYY-MM-DD, got %q", req.DueDate)
	}
	switch req.Priority {
	case "":
		req.Priority = models.PriorityNormal
	case models.PriorityNormal, models.PriorityUrgent:
	default:
		return models.InspectionQueueItem{}, invalid("priority must be Normal or Urgent, got %q", req.Priority)
	}
	inspector := req.AssignedInspector
	if blank(inspector) {
		inspector = models.Unassigned
	}
	return models.InspectionQueueItem{
		InspectionID:      inspectionID,
		WorkOrderNo:       req.WorkOrderNo,
		ProductSKU:        req.ProductSKU,
		ProductName:       req.ProductName,
		Quantity:          req.Quantity,
		Priority:          req.Priority,
		AssignedInspector: inspector,
		DueDate:           req.DueDate,
		Status:            models.InspectionPending,
		Checklist:         models.DefaultChecklist(),
		Defects:           []models.DefectEntry{},
	}, nil
}
