package models

import "time"

// DateLayout is the calendar-date format used for due dates and report ranges.
const DateLayout = "2006-01-02"

// Meta holds the bookkeeping fields every stored record carries.
// Version is bumped on each successful write and is the optimistic-concurrency token.
type Meta struct {
	ID        string    `bson:"_id" json:"id"`
	Seq       int64     `bson:"seq" json:"-"`
	Version   int64     `bson:"version" json:"version"`
	Archived  bool      `bson:"archived" json:"archived"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Base exposes the embedded Meta to generic store code.
func (m *Meta) Base() *Meta { return m }

// Result is a pass/fail outcome, used for checklist rows and system recommendations.
type Result string

const (
	ResultPending Result = ""
	ResultPass    Result = "Pass"
	ResultFail    Result = "Fail"
)

// DefectEntry is one row of a defect breakdown.
type DefectEntry struct {
	Type     string `bson:"type" json:"type"`
	Count    int    `bson:"count" json:"count"`
	Severity string `bson:"severity" json:"severity"` // Low, Medium, High
}

// Major reports whether the defect counts toward the "major defects" figure.
func (d DefectEntry) Major() bool {
	return d.Severity == "High"
}
