package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qa-warehouse-api-server/internal/models"
)

// Submitter is satisfied by *gateway.Contract.
type Submitter interface {
	SubmitTransaction(name string, args ...string) ([]byte, error)
}

// ledgerEntry is the chaincode payload of one movement.
type ledgerEntry struct {
	MovementID      string `json:"movementID"`
	ItemCode        string `json:"itemCode"`
	Type            string `json:"type"`
	Quantity        int    `json:"quantity"`
	ReferenceSource string `json:"referenceSource"`
	ReferenceType   string `json:"referenceType"`
	FromLocation    string `json:"fromLocation,omitempty"`
	ToLocation      string `json:"toLocation,omitempty"`
	PerformedBy     string `json:"performedBy"`
	Timestamp       string `json:"timestamp"`
}

// Ledger submits every recorded movement to the RecordMovement chaincode function.
type Ledger struct {
	Contract Submitter
}

func NewLedger(fs *FabricSetup) *Ledger {
	return &Ledger{Contract: fs.Contract}
}

func (l *Ledger) RecordMovement(ctx context.Context, m models.StockMovement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ledgerEntry{
		MovementID:      m.MovementID,
		ItemCode:        m.ItemCode,
		Type:            string(m.Type),
		Quantity:        m.Quantity,
		ReferenceSource: m.ReferenceSource,
		ReferenceType:   string(m.ReferenceType),
		FromLocation:    m.FromLocation,
		ToLocation:      m.ToLocation,
		PerformedBy:     m.PerformedBy,
		Timestamp:       m.DateTime.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if _, err := l.Contract.SubmitTransaction("RecordMovement", m.MovementID, string(payload)); err != nil {
		return fmt.Errorf("ledger: record movement %s: %w", m.MovementID, err)
	}
	return nil
}
