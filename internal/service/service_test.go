package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/notify"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)

func init() {
	auth.Cost = bcrypt.MinCost
}

type fakeLedger struct {
	mu    sync.Mutex
	err   error
	moves []models.StockMovement
}

func (l *fakeLedger) RecordMovement(_ context.Context, m models.StockMovement) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.moves = append(l.moves, m)
	return nil
}

type fakeUploader struct {
	key, contentType string
	body             []byte
}

func (u *fakeUploader) UploadFile(_ context.Context, r io.Reader, key, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	u.key, u.contentType, u.body = key, contentType, buf.Bytes()
	return "https://cdn.example.com/" + key, nil
}

type fixture struct {
	svc      *Services
	stores   *store.Stores
	rec      *notify.Recorder
	ledger   *fakeLedger
	uploader *fakeUploader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	f := &fixture{
		stores:   store.NewMemoryStores(),
		rec:      &notify.Recorder{},
		ledger:   &fakeLedger{},
		uploader: &fakeUploader{},
	}
	f.svc = New(Deps{
		Stores:       f.stores,
		Notifier:     f.rec,
		Issuer:       issuer,
		Ledger:       f.ledger,
		Uploader:     f.uploader,
		ReportPrefix: "reports",
		Now:          func() time.Time { return fixedNow },
	})
	return f
}

func allPass() []models.ChecklistItem {
	rows := models.DefaultChecklist()
	for i := range rows {
		rows[i].Result = models.ResultPass
	}
	return rows
}

// submitted walks a fresh batch through the queue up to For Approval.
func (f *fixture) submitted(t *testing.T, qty, defects int) (models.InspectionQueueItem, models.ApprovalItem) {
	t.Helper()
	ctx := context.Background()
	item, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{
		WorkOrderNo:       "WO-102",
		ProductSKU:        "SKU-001",
		ProductName:       "Basic Tee V2.0",
		Quantity:          qty,
		AssignedInspector: "Ana Reyes",
		DueDate:           "2026-02-13",
	})
	require.NoError(t, err)
	item, err = f.svc.Queue.Start(ctx, item.ID, item.Version)
	require.NoError(t, err)

	form := workflow.InspectionForm{Checklist: allPass(), DefectQuantity: defects}
	if defects > 0 {
		form.Defects = []models.DefectEntry{{Type: "Fabric Defect", Count: defects, Severity: "High"}}
	}
	item, approval, err := f.svc.Queue.Submit(ctx, item.ID, item.Version, form, 2)
	require.NoError(t, err)
	return item, approval
}

func isTransition(err error) bool {
	return errors.Is(err, workflow.ErrInvalidTransition)
}

func TestCodeFormat(t *testing.T) {
	c := code("MOV")
	assert.Regexp(t, `^MOV-[0-9A-F]{8}$`, c)
	assert.NotEqual(t, c, code("MOV"))
}

func TestListingPagesAndActions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		_, err := f.svc.Queue.Enqueue(ctx, workflow.QueueRequest{WorkOrderNo: "WO-1", ProductSKU: "SKU-001", Quantity: 10, DueDate: "2026-02-20"})
		require.NoError(t, err)
	}

	page, err := f.svc.Queue.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 8, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 6)
	for _, it := range page.Items {
		assert.Equal(t, []workflow.Action{workflow.ActionAssign}, page.AllowedActions[it.ID])
	}

	page, err = f.svc.Queue.List(ctx, ListQuery{Page: 9, Clamp: true})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page.Page)
	assert.Len(t, page.Items, 2)
}

func TestDefaultLookups(t *testing.T) {
	l := DefaultLookups(PageSizes{})
	assert.Equal(t, 6, l.PageSizes.InspectionQueue)
	assert.Equal(t, 7, l.PageSizes.StockMovements)
	assert.Len(t, l.StorageLocations, 6)
	assert.Equal(t, Option{Value: "Urgent", Label: "Urgent"}, l.Priorities[1])
	assert.Equal(t, "Elastic Band", itemName("MAT-005"))
	assert.Equal(t, "MAT-999", displayName("MAT-999"))
}
