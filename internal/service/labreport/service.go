package labreport

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

// Bootstrapper guarantees the owning profile row exists before a write.
type Bootstrapper interface {
	Ensure(ctx context.Context, userID string) (bool, error)
}

type LabReportService interface {
	List(ctx context.Context, userID string) ([]*model.LabReport, error)
	Add(ctx context.Context, userID string, req model.NewLabReportRequest) (*model.LabReport, error)
	AddResult(ctx context.Context, userID string, reportID uuid.UUID, req model.NewLabResultRequest) (*model.LabReport, error)
	Remove(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo     repository.LabReportRepository
	profiles Bootstrapper
	notifier notifier.Notifier
}

func NewService(repo repository.LabReportRepository, profiles Bootstrapper, n notifier.Notifier) *Service {
	return &Service{repo: repo, profiles: profiles, notifier: n}
}

// List returns the user's reports sorted ascending by date. A testresults
// column that fails its guard folds to an empty result set and is logged; a
// data-quality issue never fails the read.
func (s *Service) List(ctx context.Context, userID string) ([]*model.LabReport, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("lab report list", err)
	}
	reports := make([]*model.LabReport, 0, len(rows))
	for _, row := range rows {
		report, ok := model.LabReportFromRow(row)
		if !ok {
			log.Warn().Str("report_id", row.ID.String()).Msg("lab report testresults failed shape guard, using empty set")
		}
		reports = append(reports, report)
	}
	model.SortReportsByDate(reports)
	return reports, nil
}

// Add persists a new report. Result abnormality flags are recomputed from
// each result's reference range, and the report status is derived: abnormal
// if any result is abnormal, pending if empty, else the explicit value.
func (s *Service) Add(ctx context.Context, userID string, req model.NewLabReportRequest) (*model.LabReport, error) {
	if err := s.bootstrap(ctx, userID); err != nil {
		return nil, s.fail(ctx, userID, "add", err)
	}

	results := make([]model.LabTestResult, len(req.TestResults))
	copy(results, req.TestResults)
	for i := range results {
		results[i].Flag()
	}

	report := &model.LabReport{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        req.Date,
		Status:      model.DeriveReportStatus(req.Status, results),
		FileURL:     req.FileURL,
		TestResults: results,
	}
	if err := s.repo.Insert(ctx, report.Row(userID, time.Now())); err != nil {
		return nil, s.fail(ctx, userID, "add", apperrors.Persistence("lab report insert", err))
	}

	s.notify(ctx, userID, notifier.Success("lab_report", "add"))
	return report, nil
}

// AddResult appends a measured analyte to an existing report, recomputing its
// abnormality from the reference range and re-deriving the report status.
func (s *Service) AddResult(ctx context.Context, userID string, reportID uuid.UUID, req model.NewLabResultRequest) (*model.LabReport, error) {
	row, err := s.repo.Get(ctx, userID, reportID)
	if err != nil {
		return nil, s.fail(ctx, userID, "add_result", apperrors.Persistence("lab report lookup", err))
	}
	if row == nil {
		return nil, s.fail(ctx, userID, "add_result", apperrors.NotFound("lab report", nil))
	}

	report, ok := model.LabReportFromRow(row)
	if !ok {
		log.Warn().Str("report_id", reportID.String()).Msg("lab report testresults failed shape guard, using empty set")
	}

	result := model.LabTestResult{
		TestID:         req.TestID,
		TestName:       req.TestName,
		Value:          req.Value,
		Unit:           req.Unit,
		ReferenceRange: req.ReferenceRange,
		CodingSystem:   req.CodingSystem,
	}
	result.Flag()

	report.TestResults = append(report.TestResults, result)
	// A pending status only meant the report had no results yet; re-derive
	// from scratch once it has some.
	explicit := report.Status
	if explicit == model.ReportStatusPending {
		explicit = ""
	}
	report.Status = model.DeriveReportStatus(explicit, report.TestResults)

	updated := report.Row(userID, row.CreatedAt)
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, s.fail(ctx, userID, "add_result", apperrors.Persistence("lab report update", err))
	}

	s.notify(ctx, userID, notifier.Success("lab_report", "add_result"))
	return report, nil
}

func (s *Service) Remove(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.fail(ctx, userID, "remove", apperrors.Persistence("lab report delete", err))
	}
	s.notify(ctx, userID, notifier.Success("lab_report", "remove"))
	return nil
}

func (s *Service) bootstrap(ctx context.Context, userID string) error {
	ok, err := s.profiles.Ensure(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Persistence("profile bootstrap", errors.New("profile row could not be created"))
	}
	return nil
}

func (s *Service) notify(ctx context.Context, userID string, n notifier.Notification) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, userID, n)
	}
}

func (s *Service) fail(ctx context.Context, userID, action string, err error) error {
	s.notify(ctx, userID, notifier.Failure("lab_report", action, err.Error()))
	return err
}
