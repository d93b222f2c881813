package service

import (
	"context"
	"testing"

	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draft() workflow.CAPADraft {
	return workflow.CAPADraft{
		LinkedInspection: "INS-012",
		LinkedDefect:     "Stitching",
		RootCause:        "Needle tension drift on line 3",
		AssignedTo:       "Maria Santos",
		AssignedDept:     "Production",
		DueDate:          "2026-02-10",
		CorrectiveSteps:  []string{"Recalibrate machines", " ", "Retrain operators"},
	}
}

func TestCAPALifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.CAPA.Create(ctx, draft())
	require.NoError(t, err)
	assert.Regexp(t, `^CAPA-`, c.CAPAID)
	assert.Equal(t, models.CAPAOpen, c.Status)
	assert.Equal(t, "2026-02-12", c.CreatedDate)
	assert.Equal(t, []string{"Recalibrate machines", "Retrain operators"}, c.CorrectiveSteps)

	c, err = f.svc.CAPA.Start(ctx, c.ID, c.Version)
	require.NoError(t, err)
	assert.Equal(t, models.CAPAInProgress, c.Status)

	_, err = f.svc.CAPA.Verify(ctx, c.ID, c.Version, "Lorna Garcia")
	assert.True(t, isTransition(err))

	c, err = f.svc.CAPA.Complete(ctx, c.ID, c.Version)
	require.NoError(t, err)
	_, err = f.svc.CAPA.Edit(ctx, c.ID, c.Version, draft())
	assert.True(t, isTransition(err))

	c, err = f.svc.CAPA.Verify(ctx, c.ID, c.Version, "Lorna Garcia")
	require.NoError(t, err)
	assert.Equal(t, models.CAPAVerified, c.Status)
	assert.Equal(t, "Lorna Garcia", c.VerifiedBy)

	page, err := f.svc.CAPA.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.AllowedActions[c.ID])
	assert.NotNil(t, page.AllowedActions[c.ID])

	assert.Equal(t, []string{
		workflow.EventCAPACreated,
		workflow.EventCAPAStarted,
		workflow.EventCAPACompleted,
		workflow.EventCAPAVerified,
	}, f.rec.Events())
}

func TestCAPACreateValidation(t *testing.T) {
	f := newFixture(t)
	d := draft()
	d.RootCause = ""
	_, err := f.svc.CAPA.Create(context.Background(), d)
	assert.True(t, workflow.IsValidation(err))

	d = draft()
	d.DueDate = "10/02/2026"
	_, err = f.svc.CAPA.Create(context.Background(), d)
	assert.True(t, workflow.IsValidation(err))
}

func TestCAPAEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.svc.CAPA.Create(ctx, draft())
	require.NoError(t, err)

	d := draft()
	d.AssignedTo = "Juan Cruz"
	d.AssignedDept = "Warehouse"
	c, err = f.svc.CAPA.Edit(ctx, c.ID, c.Version, d)
	require.NoError(t, err)
	assert.Equal(t, "Juan Cruz", c.AssignedTo)
	assert.Equal(t, models.CAPAOpen, c.Status)
	assert.Equal(t, "CAPA updated successfully.", f.rec.Last().Text)
}

func TestCAPAKPIs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	overdue, err := f.svc.CAPA.Create(ctx, draft())
	require.NoError(t, err)

	later := draft()
	later.DueDate = "2026-03-01"
	c, err := f.svc.CAPA.Create(ctx, later)
	require.NoError(t, err)
	c, err = f.svc.CAPA.Start(ctx, c.ID, c.Version)
	require.NoError(t, err)
	_, err = f.svc.CAPA.Complete(ctx, c.ID, c.Version)
	require.NoError(t, err)

	k, err := f.svc.CAPA.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, CAPAKPIs{Total: 2, Open: 1, Completed: 1, Overdue: 1}, k)

	_, err = f.svc.CAPA.Archive(ctx, overdue.ID, overdue.Version)
	require.NoError(t, err)
	k, err = f.svc.CAPA.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, k.Total)
	assert.Zero(t, k.Overdue)
}
