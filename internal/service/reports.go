package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"qa-warehouse-api-server/internal/kpi"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/report"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrUploadDisabled is returned by Publish when no object store is configured.
var ErrUploadDisabled = errors.New("report upload is not configured")

// TopDefectLimit caps the defect types listed in a summary.
const TopDefectLimit = 5

// Uploader stores a rendered report and returns its public URL.
type Uploader interface {
	UploadFile(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error)
}

type ReportService struct {
	base
	uploader Uploader
	prefix   string
}

// dateRange validates an inclusive YYYY-MM-DD range. Either end may be empty.
func dateRange(from, to string) error {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return &workflow.ValidationError{Message: fmt.Sprintf("date must be YYYY-MM-DD, got %q", d)}
		}
	}
	if from != "" && to != "" && from > to {
		return &workflow.ValidationError{Message: "start date must not be after end date"}
	}
	return nil
}

func inRange(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}

// Summary computes the QA report figures over records completed and CAPAs
// created between from and to inclusive.
func (s *ReportService) Summary(ctx context.Context, from, to string) (report.QASummary, error) {
	if err := dateRange(from, to); err != nil {
		return report.QASummary{}, err
	}
	records, err := s.stores.Records.List(ctx, store.Active)
	if err != nil {
		return report.QASummary{}, err
	}
	capas, err := s.stores.CAPAs.List(ctx, store.Active)
	if err != nil {
		return report.QASummary{}, err
	}
	queue, err := s.stores.Queue.List(ctx, store.Active)
	if err != nil {
		return report.QASummary{}, err
	}

	out := report.QASummary{
		From:         from,
		To:           to,
		CAPAByStatus: map[models.CAPAStatus]int{},
		Overdue:      []models.InspectionQueueItem{},
		GeneratedAt:  s.now(),
	}
	defects := map[string]int{}
	for _, r := range records {
		if !inRange(r.DateCompleted, from, to) {
			continue
		}
		out.Inspections++
		switch r.Result {
		case models.RecordApproved:
			out.Approved++
		case models.RecordRejected:
			out.Rejected++
		}
		for _, d := range r.DefectTypes {
			defects[d.Type] += d.Count
		}
	}
	out.RejectionRate = kpi.RejectionRate(out.Approved, out.Rejected)
	out.TopDefects = kpi.Ranked(defects)
	if len(out.TopDefects) > TopDefectLimit {
		out.TopDefects = out.TopDefects[:TopDefectLimit]
	}

	total, closed := 0, 0
	for _, c := range capas {
		if !inRange(c.CreatedDate, from, to) {
			continue
		}
		total++
		out.CAPAByStatus[c.Status]++
		if c.Status == models.CAPACompleted || c.Status == models.CAPAVerified {
			closed++
		}
	}
	out.CAPAClosed = kpi.Share(closed, total)

	today := s.today()
	for _, q := range queue {
		if q.Overdue(today) {
			out.Overdue = append(out.Overdue, q)
		}
	}
	return out, nil
}

// Export renders the summary of the range as a workbook.
func (s *ReportService) Export(ctx context.Context, from, to string) (*excelize.File, string, error) {
	sum, err := s.Summary(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	f, err := report.Summary(sum)
	if err != nil {
		return nil, "", err
	}
	return f, report.Filename("qa-report", sum.GeneratedAt), nil
}

// Publish exports the summary and uploads it to the object store.
func (s *ReportService) Publish(ctx context.Context, from, to string) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadDisabled
	}
	f, name, err := s.Export(ctx, from, to)
	if err != nil {
		return "", err
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	key := name
	if p := strings.Trim(s.prefix, "/"); p != "" {
		key = p + "/" + name
	}
	url, err := s.uploader.UploadFile(ctx, buf, key, report.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	s.log.Info("report published", zap.String("key", key), zap.String("url", url))
	return url, nil
}
