package notify

import (
	"context"
	"encoding/json"
	"testing"

	"qa-warehouse-api-server/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type captureHub struct{ payloads [][]byte }

func (c *captureHub) Broadcast(message []byte) int {
	c.payloads = append(c.payloads, message)
	return 1
}

func TestPublishFansOut(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	hub := &captureHub{}
	rec := &Recorder{}
	n := Multi{LogNotifier{Log: zap.New(core)}, HubNotifier{Hub: hub}, rec}

	Publish(context.Background(), n,
		workflow.GoodsReceived{WorkOrderNo: "WO-107", ProductSKU: "SKU-001", Quantity: 130, Location: "Storage A - Section 1"},
	)

	require.Len(t, rec.Messages(), 1)
	last := rec.Last()
	assert.Equal(t, LevelSuccess, last.Level)
	assert.Equal(t, workflow.EventGoodsReceived, last.Event)
	assert.Contains(t, last.Text, "Finance costing triggered.")
	assert.Equal(t, []string{workflow.EventGoodsReceived}, rec.Events())

	require.Len(t, hub.payloads, 1)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(hub.payloads[0], &decoded))
	assert.Equal(t, "intake.received", decoded["event"])

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, last.Text, logs.All()[0].Message)
}

func TestRecorderEmpty(t *testing.T) {
	rec := &Recorder{}
	assert.Equal(t, Message{}, rec.Last())
	assert.Empty(t, rec.Events())

	rec.Notify(context.Background(), Message{Text: "plain", Level: LevelInfo})
	assert.Empty(t, rec.Events())
	assert.Len(t, rec.Messages(), 1)
}
