// Package service holds one service per dashboard page. Every mutating call
// follows the same path: load the record, ask the workflow guard, persist with
// a version check, apply side effects, then notify.
package service

import (
	"context"
	"strings"
	"time"

	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/notify"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger mirrors recorded stock movements to an external system.
type Ledger interface {
	RecordMovement(ctx context.Context, m models.StockMovement) error
}

// Deps are the collaborators shared by every service. ReportPrefix is the
// object key prefix of published reports.
type Deps struct {
	Stores       *store.Stores
	Notifier     notify.Notifier
	Log          *zap.Logger
	Pages        PageSizes
	Policy       workflow.ApprovalPolicy
	Issuer       *auth.Issuer
	Ledger       Ledger
	Uploader     Uploader
	ReportPrefix string
	Now          func() time.Time
}

type Services struct {
	Queue       *QueueService
	Approvals   *ApprovalService
	Records     *RecordService
	CAPA        *CAPAService
	Adjustments *AdjustmentService
	Movements   *MovementService
	Intake      *IntakeService
	Reports     *ReportService
	Profile     *ProfileService
	Lookups     Lookups
}

func New(d Deps) *Services {
	b := newBase(d)
	return &Services{
		Queue:       &QueueService{base: b},
		Approvals:   &ApprovalService{base: b, policy: d.Policy},
		Records:     &RecordService{base: b},
		CAPA:        &CAPAService{base: b},
		Adjustments: &AdjustmentService{base: b},
		Movements:   &MovementService{base: b},
		Intake:      &IntakeService{base: b},
		Reports:     &ReportService{base: b, uploader: d.Uploader, prefix: d.ReportPrefix},
		Profile:     &ProfileService{base: b, issuer: d.Issuer},
		Lookups:     DefaultLookups(b.pages),
	}
}

type base struct {
	stores   *store.Stores
	notifier notify.Notifier
	log      *zap.Logger
	pages    PageSizes
	ledger   Ledger
	now      func() time.Time
}

func newBase(d Deps) base {
	b := base{
		stores:   d.Stores,
		notifier: d.Notifier,
		log:      d.Log,
		pages:    d.Pages.withDefaults(),
		ledger:   d.Ledger,
		now:      d.Now,
	}
	if b.notifier == nil {
		b.notifier = notify.Multi{}
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.now == nil {
		b.now = func() time.Time { return time.Now().UTC() }
	}
	return b
}

func (b base) today() string { return b.now().Format(models.DateLayout) }

func (b base) publish(ctx context.Context, events ...workflow.Event) {
	notify.Publish(ctx, b.notifier, events...)
}

// warn reports a failed side effect. The primary write has already
// committed, so the caller still succeeds.
func (b base) warn(ctx context.Context, msg string, err error, fields ...zap.Field) {
	b.log.Warn(msg, append(fields, zap.Error(err))...)
	b.notifier.Notify(ctx, notify.Message{Text: msg, Level: notify.LevelWarning, At: b.now()})
}

// code derives a human-readable identifier such as CAPA-1A2B3C4D.
func code(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// ListQuery is a list-view request. Page and PageSize default to 1 and the
// page's configured size. With Clamp set, a page past the end is brought
// back to the last page instead of coming back empty.
type ListQuery struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
	Scope    store.Scope
	Clamp    bool
}

// Listing is one page of a list view with the actions each row may offer.
type Listing[T any] struct {
	query.Page[T]
	AllowedActions map[string][]workflow.Action `json:"allowedActions"`
}

func listing[T any, P store.Record[T]](ctx context.Context, coll store.Collection[T], schema query.Schema[T], q ListQuery, pageSize int, actions func(T) []workflow.Action) (Listing[T], error) {
	records, err := coll.List(ctx, q.Scope)
	if err != nil {
		return Listing[T]{}, err
	}
	if q.PageSize == 0 {
		q.PageSize = pageSize
	}
	if q.Page == 0 {
		q.Page = 1
	}
	matched := schema.Match(records, q.Search, q.Filters)
	if q.Clamp && q.PageSize > 0 {
		q.Page = query.Clamp(q.Page, query.TotalPages(len(matched), q.PageSize))
	}
	page, err := query.Paginate(matched, q.Page, q.PageSize)
	if err != nil {
		return Listing[T]{}, err
	}
	allowed := make(map[string][]workflow.Action, len(page.Items))
	for i := range page.Items {
		allowed[P(&page.Items[i]).Base().ID] = actions(page.Items[i])
	}
	return Listing[T]{Page: page, AllowedActions: allowed}, nil
}

func noActions[T any](T) []workflow.Action { return []workflow.Action{} }
