package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"qa-warehouse-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContract struct {
	name string
	args []string
	err  error
}

func (f *fakeContract) SubmitTransaction(name string, args ...string) ([]byte, error) {
	f.name, f.args = name, args
	return nil, f.err
}

func TestLedgerRecordMovement(t *testing.T) {
	fake := &fakeContract{}
	l := &Ledger{Contract: fake}
	m := models.StockMovement{
		MovementID: "MOV-311", ItemCode: "SKU-001", Type: models.MovementStockIn, Quantity: 130,
		ReferenceSource: "WO-107", ReferenceType: models.RefWorkOrder,
		DateTime: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, l.RecordMovement(context.Background(), m))
	assert.Equal(t, "RecordMovement", fake.name)
	require.Len(t, fake.args, 2)
	assert.Equal(t, "MOV-311", fake.args[0])

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.args[1]), &entry))
	assert.Equal(t, "Stock-In", entry["type"])
	assert.Equal(t, float64(130), entry["quantity"])
	assert.Equal(t, "2025-03-10T09:30:00Z", entry["timestamp"])
}

func TestLedgerErrors(t *testing.T) {
	l := &Ledger{Contract: &fakeContract{err: errors.New("endorsement failed")}}
	err := l.RecordMovement(context.Background(), models.StockMovement{MovementID: "MOV-1"})
	assert.ErrorContains(t, err, "MOV-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.RecordMovement(ctx, models.StockMovement{}), context.Canceled)
}
