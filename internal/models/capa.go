package models

// CAPAStatus moves strictly forward: Open, In Progress, Completed, Verified.
type CAPAStatus string

const (
	CAPAOpen       CAPAStatus = "Open"
	CAPAInProgress CAPAStatus = "In Progress"
	CAPACompleted  CAPAStatus = "Completed"
	CAPAVerified   CAPAStatus = "Verified"
)

// CAPA is a Corrective and Preventive Action linked to a quality defect.
type CAPA struct {
	Meta             `bson:",inline"`
	CAPAID           string     `bson:"capaId" json:"capaId"`
	LinkedInspection string     `bson:"linkedInspection" json:"linkedInspection"`
	LinkedDefect     string     `bson:"linkedDefect" json:"linkedDefect"`
	RootCause        string     `bson:"rootCause" json:"rootCause"`
	AssignedTo       string     `bson:"assignedTo" json:"assignedTo"`
	AssignedDept     string     `bson:"assignedDept" json:"assignedDept"`
	DueDate          string     `bson:"dueDate" json:"dueDate"`
	Status           CAPAStatus `bson:"status" json:"status"`
	CorrectiveSteps  []string   `bson:"correctiveSteps" json:"correctiveSteps"`
	Evidence         int        `bson:"evidence" json:"evidence"`
	CreatedDate      string     `bson:"createdDate" json:"createdDate"`
	Notes            string     `bson:"notes" json:"notes"`
	VerifiedBy       string     `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
}
