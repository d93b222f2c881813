package workflow

import (
	"strings"
	"time"

	"qa-warehouse-api-server/internal/models"
)

// CAPAMachine moves strictly forward. Verified is terminal.
var CAPAMachine = NewMachine[models.CAPAStatus]("capa",
	Rule[models.CAPAStatus]{Action: ActionEdit, From: []models.CAPAStatus{models.CAPAOpen, models.CAPAInProgress}},
	Rule[models.CAPAStatus]{Action: ActionStart, From: []models.CAPAStatus{models.CAPAOpen}, To: models.CAPAInProgress},
	Rule[models.CAPAStatus]{Action: ActionComplete, From: []models.CAPAStatus{models.CAPAInProgress}, To: models.CAPACompleted},
	Rule[models.CAPAStatus]{Action: ActionVerify, From: []models.CAPAStatus{models.CAPACompleted}, To: models.CAPAVerified},
)

// CAPADraft is the create/edit form of a CAPA.
type CAPADraft struct {
	LinkedInspection string   `json:"linkedInspection"`
	LinkedDefect     string   `json:"linkedDefect"`
	RootCause        string   `json:"rootCause"`
	AssignedTo       string   `json:"assignedTo"`
	AssignedDept     string   `json:"assignedDept"`
	DueDate          string   `json:"dueDate"`
	CorrectiveSteps  []string `json:"correctiveSteps"`
	Notes            string   `json:"notes"`
}

func (d CAPADraft) validate() error {
	if blank(d.RootCause) || blank(d.AssignedTo) || blank(d.DueDate) {
		return invalid("root cause, assignee and due date are required")
	}
	if _, err := time.Parse(models.DateLayout, d.DueDate); err != nil {
		return invalid("due date must be YYYY-MM-DD, got %q", d.DueDate)
	}
	return nil
}

func (d CAPADraft) apply(c models.CAPA) models.CAPA {
	c.LinkedInspection = d.LinkedInspection
	c.LinkedDefect = d.LinkedDefect
	c.RootCause = d.RootCause
	c.AssignedTo = d.AssignedTo
	c.AssignedDept = d.AssignedDept
	c.DueDate = d.DueDate
	c.CorrectiveSteps = make([]string, 0, len(d.CorrectiveSteps))
	for _, s := range d.CorrectiveSteps {
		if !blank(s) {
			c.CorrectiveSteps = append(c.CorrectiveSteps, strings.TrimSpace(s))
		}
	}
	c.Notes = d.Notes
	return c
}

// NewCAPA opens a CAPA from a validated draft.
func NewCAPA(d CAPADraft, capaID, today string) (Outcome[models.CAPA], error) {
	if err := d.validate(); err != nil {
		return Outcome[models.CAPA]{}, err
	}
	c := d.apply(models.CAPA{CAPAID: capaID, Status: models.CAPAOpen, CreatedDate: today})
	return outcome(c, CAPACreated{CAPAID: capaID, LinkedInspection: c.LinkedInspection}), nil
}

// EditCAPA replaces the editable fields. Only Open and In Progress CAPAs are editable.
func EditCAPA(c models.CAPA, d CAPADraft) (Outcome[models.CAPA], error) {
	if _, err := CAPAMachine.Next(c.Status, ActionEdit); err != nil {
		return Outcome[models.CAPA]{}, err
	}
	if err := d.validate(); err != nil {
		return Outcome[models.CAPA]{}, err
	}
	c = d.apply(c)
	return outcome(c, CAPAUpdated{CAPAID: c.CAPAID}), nil
}

func StartCAPA(c models.CAPA) (Outcome[models.CAPA], error) {
	next, err := CAPAMachine.Next(c.Status, ActionStart)
	if err != nil {
		return Outcome[models.CAPA]{}, err
	}
	c.Status = next
	return outcome(c, CAPAStarted{CAPAID: c.CAPAID}), nil
}

func CompleteCAPA(c models.CAPA) (Outcome[models.CAPA], error) {
	next, err := CAPAMachine.Next(c.Status, ActionComplete)
	if err != nil {
		return Outcome[models.CAPA]{}, err
	}
	c.Status = next
	return outcome(c, CAPACompleted{CAPAID: c.CAPAID}), nil
}

func VerifyCAPA(c models.CAPA, by string) (Outcome[models.CAPA], error) {
	next, err := CAPAMachine.Next(c.Status, ActionVerify)
	if err != nil {
		return Outcome[models.CAPA]{}, err
	}
	c.Status = next
	c.VerifiedBy = by
	return outcome(c, CAPAVerified{CAPAID: c.CAPAID, VerifiedBy: by}), nil
}

// CAPADueIn is how long a CAPA raised by a batch rejection has to close.
const CAPADueIn = 7 * 24 * time.Hour

// CAPAForRejection raises the CAPA a rejected batch requires. It starts Open,
// assigned to the QA decision maker, linked to the heaviest defect type.
func CAPAForRejection(item models.ApprovalItem, capaID string, now time.Time) models.CAPA {
	defect := ""
	top := -1
	for _, d := range item.DefectBreakdown {
		if d.Count > top {
			defect, top = d.Type, d.Count
		}
	}
	return models.CAPA{
		CAPAID:           capaID,
		LinkedInspection: item.InspectionID,
		LinkedDefect:     defect,
		RootCause:        item.Remarks,
		AssignedTo:       item.DecidedBy,
		AssignedDept:     "QA",
		DueDate:          now.Add(CAPADueIn).Format(models.DateLayout),
		Status:           models.CAPAOpen,
		CorrectiveSteps:  []string{},
		CreatedDate:      now.Format(models.DateLayout),
		Notes:            "Raised on rejection of " + item.WorkOrder + ".",
	}
}
