package query

import (
	"fmt"
	"testing"

	"qa-warehouse-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueFixture() []models.InspectionQueueItem {
	mk := func(id, wo, sku, name string, p models.Priority, s models.InspectionStatus) models.InspectionQueueItem {
		return models.InspectionQueueItem{
			Meta:         models.Meta{ID: id},
			InspectionID: id, WorkOrderNo: wo, ProductSKU: sku, ProductName: name,
			Priority: p, Status: s, Quantity: 100,
		}
	}
	return []models.InspectionQueueItem{
		mk("INS-021", "WO-2024-0156", "SKU-TSH-001", "Cotton T-Shirt Basic", models.PriorityUrgent, models.InspectionPending),
		mk("INS-022", "WO-2024-0157", "SKU-POL-002", "Polo Shirt Premium", models.PriorityNormal, models.InspectionInProgress),
		mk("INS-023", "WO-2024-0158", "SKU-DNM-003", "Denim Jeans Slim", models.PriorityNormal, models.InspectionPending),
		mk("INS-024", "WO-2024-0159", "SKU-HOD-004", "Hoodie Fleece", models.PriorityUrgent, models.InspectionForApproval),
		mk("INS-025", "WO-2024-0160", "SKU-TSH-005", "V-Neck T-Shirt", models.PriorityNormal, models.InspectionPending),
		mk("INS-026", "WO-2024-0161", "SKU-JKT-006", "Denim Jacket", models.PriorityNormal, models.InspectionInProgress),
		mk("INS-027", "WO-2024-0162", "SKU-SHR-007", "Cargo Shorts", models.PriorityUrgent, models.InspectionPending),
	}
}

func ids(items []models.InspectionQueueItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.InspectionID
	}
	return out
}

func TestMatchSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	items := queueFixture()

	got := InspectionQueue.Match(items, "DENIM", nil)
	assert.Equal(t, []string{"INS-023", "INS-026"}, ids(got))

	got = InspectionQueue.Match(items, "wo-2024-0159", nil)
	assert.Equal(t, []string{"INS-024"}, ids(got))

	got = InspectionQueue.Match(items, "sku-tsh", nil)
	assert.Equal(t, []string{"INS-021", "INS-025"}, ids(got))
}

func TestMatchFiltersAreExactAndANDed(t *testing.T) {
	items := queueFixture()

	got := InspectionQueue.Match(items, "", map[string]string{"status": "Pending", "priority": "Urgent"})
	assert.Equal(t, []string{"INS-021", "INS-027"}, ids(got))

	// enum equality is case-sensitive
	got = InspectionQueue.Match(items, "", map[string]string{"status": "pending"})
	assert.Empty(t, got)

	got = InspectionQueue.Match(items, "t-shirt", map[string]string{"priority": "Normal"})
	assert.Equal(t, []string{"INS-025"}, ids(got))
}

func TestMatchIgnoresEmptyAndUnknownFilters(t *testing.T) {
	items := queueFixture()

	got := InspectionQueue.Match(items, "", map[string]string{"status": "", "colour": "Red"})
	assert.Equal(t, ids(items), ids(got))

	got = InspectionQueue.Match(items, "", nil)
	assert.Len(t, got, len(items))
}

func TestMatchCountNeverExceedsCollection(t *testing.T) {
	items := queueFixture()
	for _, q := range []string{"", "a", "INS", "zzz", "o"} {
		for _, st := range []string{"", "Pending", "In Progress", "For Approval"} {
			got := InspectionQueue.Match(items, q, map[string]string{"status": st})
			assert.LessOrEqual(t, len(got), len(items))
		}
	}
}

func TestPagesConcatenateToMatchedSet(t *testing.T) {
	items := queueFixture()
	cases := []struct {
		search  string
		filters map[string]string
	}{
		{"", nil},
		{"shirt", nil},
		{"", map[string]string{"status": "Pending"}},
		{"zzz", nil},
	}
	for _, tc := range cases {
		matched := InspectionQueue.Match(items, tc.search, tc.filters)
		for pageSize := 1; pageSize <= 8; pageSize++ {
			name := fmt.Sprintf("%q/%v/%d", tc.search, tc.filters, pageSize)
			first, err := InspectionQueue.Run(items, Request{Search: tc.search, Filters: tc.filters, Page: 1, PageSize: pageSize})
			require.NoError(t, err, name)

			var all []models.InspectionQueueItem
			for page := 1; page <= first.TotalPages; page++ {
				p, err := InspectionQueue.Run(items, Request{Search: tc.search, Filters: tc.filters, Page: page, PageSize: pageSize})
				require.NoError(t, err, name)
				assert.LessOrEqual(t, len(p.Items), pageSize, name)
				all = append(all, p.Items...)
			}
			assert.Equal(t, ids(matched), ids(all), name)
		}
	}
}

func TestPaginateMetadata(t *testing.T) {
	items := queueFixture()

	p, err := Paginate(items, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.StartIndex)
	assert.Equal(t, 6, p.EndIndex)
	assert.Equal(t, []string{"INS-024", "INS-025", "INS-026"}, ids(p.Items))

	p, err = Paginate(items, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"INS-027"}, ids(p.Items))
	assert.Equal(t, 7, p.EndIndex)
}

func TestPaginateEmptyAndOutOfRange(t *testing.T) {
	p, err := Paginate([]models.InspectionQueueItem{}, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)

	p, err = Paginate(queueFixture(), 5, 6)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 5, p.Page)
}

func TestPaginateRejectsBadArguments(t *testing.T) {
	_, err := Paginate(queueFixture(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Paginate(queueFixture(), 1, -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = InspectionQueue.Run(queueFixture(), Request{Page: 0, PageSize: 6})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 3, Clamp(9, 3))
	assert.Equal(t, 1, Clamp(4, 0))
	assert.Equal(t, 1, TotalPages(0, 7))
	assert.Equal(t, 2, TotalPages(8, 7))
}

func TestMovementSchemaFilters(t *testing.T) {
	moves := []models.StockMovement{
		{MovementID: "MOV-001", ItemCode: "FG-TSH-001", Type: models.MovementStockIn, ReferenceType: models.RefWorkOrder, ReferenceSource: "WO-2024-0150"},
		{MovementID: "MOV-002", ItemCode: "RM-FAB-001", Type: models.MovementStockOut, ReferenceType: models.RefWorkOrder},
		{MovementID: "MOV-003", ItemCode: "FG-POL-002", Type: models.MovementTransfer, ReferenceType: models.RefTransfer},
	}
	got := StockMovements.Match(moves, "", map[string]string{"refType": "Work Order"})
	require.Len(t, got, 2)
	got = StockMovements.Match(moves, "wo-2024-0150", map[string]string{"type": "Stock-In"})
	require.Len(t, got, 1)
	assert.Equal(t, "MOV-001", got[0].MovementID)
}
