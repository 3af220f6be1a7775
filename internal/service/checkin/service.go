package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/domain/qrcode"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
	"github.com/buildforce/attendance-backend-go/internal/pkg/keymutex"
	"github.com/buildforce/attendance-backend-go/internal/pkg/sse"
	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type CheckinService interface {
	// CreateCheckin processes a direct GPS check-in identified by public
	// employee and worksite codes.
	CreateCheckin(ctx context.Context, req checkin.CreateCheckinRequest) (checkin.CheckinResponse, error)

	// CreateQRCheckin processes a check-in initiated by scanning a site QR
	// code. The token resolves the worksite; the request's worksite code is
	// ignored.
	CreateQRCheckin(ctx context.Context, token string, req checkin.CreateCheckinRequest) (checkin.CheckinResponse, error)

	GetCheckin(ctx context.Context, id string) (checkin.CheckinResponse, error)

	ListCheckins(ctx context.Context, filter checkin.CheckinFilter) (checkin.ListCheckinsResponse, error)

	// ReviewCheckin lets an admin override a record's status after the fact.
	ReviewCheckin(ctx context.Context, req checkin.ReviewCheckinRequest) (checkin.CheckinResponse, error)

	// Stats returns per-status counts for one calendar day, defaulting to
	// today in the reporting timezone.
	Stats(ctx context.Context, date string) (checkin.CheckinStatsResponse, error)
}

type CheckinServiceImpl struct {
	checkinRepo  checkin.CheckinRepository
	employeeRepo employee.EmployeeRepository
	worksiteRepo worksite.WorksiteRepository
	qrcodeRepo   qrcode.QRCodeRepository

	// locks serializes the read-evaluate-insert sequence per employee. The
	// unique index on (employee_id, checkin_type, date) is the backstop for
	// requests landing on different instances.
	locks *keymutex.KeyMutex
	hub   *sse.Hub

	// location is the company's reporting timezone, used for day boundaries
	// in aggregate views. Per-record dates still follow the worksite's clock.
	location *time.Location

	now func() time.Time
}

func NewCheckinService(
	checkinRepo checkin.CheckinRepository,
	employeeRepo employee.EmployeeRepository,
	worksiteRepo worksite.WorksiteRepository,
	qrcodeRepo qrcode.QRCodeRepository,
	hub *sse.Hub,
	location *time.Location,
) CheckinService {
	return &CheckinServiceImpl{
		checkinRepo:  checkinRepo,
		employeeRepo: employeeRepo,
		worksiteRepo: worksiteRepo,
		qrcodeRepo:   qrcodeRepo,
		locks:        keymutex.New(),
		hub:          hub,
		location:     location,
		now:          time.Now,
	}
}

func (s *CheckinServiceImpl) CreateCheckin(ctx context.Context, req checkin.CreateCheckinRequest) (checkin.CheckinResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.CheckinResponse{}, err
	}

	site, err := s.worksiteRepo.GetByCode(ctx, req.WorksiteID)
	if err != nil {
		if errors.Is(err, worksite.ErrWorksiteNotFound) {
			return checkin.CheckinResponse{}, checkin.ErrWorksiteUnknown
		}
		return checkin.CheckinResponse{}, fmt.Errorf("failed to resolve worksite: %w", err)
	}

	return s.process(ctx, req, site, checkin.VerificationGPS, nil, site.AllowCheckinAnytime)
}

func (s *CheckinServiceImpl) CreateQRCheckin(ctx context.Context, token string, req checkin.CreateCheckinRequest) (checkin.CheckinResponse, error) {
	code, err := s.qrcodeRepo.GetByToken(ctx, token)
	if err != nil {
		return checkin.CheckinResponse{}, err
	}
	if !code.Usable(s.now()) {
		return checkin.CheckinResponse{}, qrcode.ErrQRCodeExpired
	}

	site, err := s.worksiteRepo.GetByID(ctx, code.WorksiteID)
	if err != nil {
		if errors.Is(err, worksite.ErrWorksiteNotFound) {
			return checkin.CheckinResponse{}, checkin.ErrWorksiteUnknown
		}
		return checkin.CheckinResponse{}, fmt.Errorf("failed to resolve worksite: %w", err)
	}

	// The scanned token is authoritative for the worksite.
	req.WorksiteID = site.WorksiteID
	if err := req.Validate(); err != nil {
		return checkin.CheckinResponse{}, err
	}

	allowAnytime := site.AllowCheckinAnytime || code.AllowCheckinAnytime
	resp, err := s.process(ctx, req, site, checkin.VerificationQR, &code.ID, allowAnytime)

	// Scan counters are best effort and never fail the check-in.
	if scanErr := s.qrcodeRepo.RecordScan(ctx, code.ID, err == nil); scanErr != nil {
		slog.Error("Failed to record qr scan", "qr_code_id", code.ID, "error", scanErr)
	}

	return resp, err
}

// process runs the shared evaluation and persistence path for both the GPS
// and QR flows. The worksite has already been resolved and the request
// validated.
func (s *CheckinServiceImpl) process(
	ctx context.Context,
	req checkin.CreateCheckinRequest,
	site worksite.Worksite,
	method checkin.VerificationMethod,
	qrCodeID *string,
	allowAnytime bool,
) (checkin.CheckinResponse, error) {
	if site.Status != worksite.StatusActive {
		return checkin.CheckinResponse{}, checkin.ErrWorksiteUnknown
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeID)
	if err != nil {
		return checkin.CheckinResponse{}, err
	}

	loc := site.Location()
	now := s.now()

	s.locks.Lock(emp.ID)
	defer s.locks.Unlock(emp.ID)

	date := LocalDate(now, loc)
	existing, err := s.checkinRepo.ListForEmployeeOnDate(ctx, emp.ID, date)
	if err != nil {
		return checkin.CheckinResponse{}, fmt.Errorf("failed to load today's check-ins: %w", err)
	}

	result, err := Evaluate(Input{
		Employee:     emp,
		Worksite:     site,
		Existing:     existing,
		Type:         checkin.Type(strings.ToLower(req.Type)),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		GPSAccuracy:  req.GPSAccuracy,
		AllowAnytime: allowAnytime,
		Now:          now,
		Location:     loc,
	})
	if err != nil {
		return checkin.CheckinResponse{}, err
	}

	record := checkin.CheckIn{
		ID:                   uuid.New().String(),
		EmployeeID:           emp.ID,
		WorksiteID:           site.ID,
		Type:                 checkin.Type(strings.ToLower(req.Type)),
		Status:               result.Status,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		GPSAccuracy:          req.GPSAccuracy,
		IsWithinWorksite:     result.IsWithinWorksite,
		DistanceFromWorksite: result.DistanceMeters,
		IsSuspicious:         result.IsSuspicious,
		SuspiciousReasons:    result.Reasons,
		VerificationMethod:   method,
		QRCodeID:             qrCodeID,
		CheckinTime:          now,
		Date:                 date,
		PhotoURL:             req.PhotoURL,
		DeviceID:             req.DeviceID,
		IPAddress:            req.IPAddress,
		UserAgent:            req.UserAgent,
	}

	created, err := s.checkinRepo.Create(ctx, record)
	if err != nil {
		return checkin.CheckinResponse{}, err
	}

	resp := toResponse(created, emp.FullName(), site.Name, loc)

	s.hub.Publish(sse.Event{Event: "checkin_created", Data: resp})

	return resp, nil
}

func (s *CheckinServiceImpl) GetCheckin(ctx context.Context, id string) (checkin.CheckinResponse, error) {
	c, err := s.checkinRepo.GetByID(ctx, id)
	if err != nil {
		return checkin.CheckinResponse{}, err
	}
	return s.enrich(ctx, c)
}

func (s *CheckinServiceImpl) ListCheckins(ctx context.Context, filter checkin.CheckinFilter) (checkin.ListCheckinsResponse, error) {
	if err := filter.Validate(); err != nil {
		return checkin.ListCheckinsResponse{}, err
	}

	checkins, total, err := s.checkinRepo.List(ctx, filter)
	if err != nil {
		return checkin.ListCheckinsResponse{}, fmt.Errorf("failed to list check-ins: %w", err)
	}

	responses := make([]checkin.CheckinResponse, 0, len(checkins))
	for _, c := range checkins {
		resp, err := s.enrich(ctx, c)
		if err != nil {
			return checkin.ListCheckinsResponse{}, err
		}
		responses = append(responses, resp)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return checkin.ListCheckinsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Checkins:   responses,
	}, nil
}

func (s *CheckinServiceImpl) ReviewCheckin(ctx context.Context, req checkin.ReviewCheckinRequest) (checkin.CheckinResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.CheckinResponse{}, err
	}

	c, err := s.checkinRepo.GetByID(ctx, req.ID)
	if err != nil {
		return checkin.CheckinResponse{}, err
	}

	status := checkin.Status(req.Status)
	if err := s.checkinRepo.UpdateStatus(ctx, c.ID, status, req.AdminNotes); err != nil {
		return checkin.CheckinResponse{}, fmt.Errorf("failed to update check-in status: %w", err)
	}

	c.Status = status
	c.AdminNotes = req.AdminNotes

	resp, err := s.enrich(ctx, c)
	if err != nil {
		return checkin.CheckinResponse{}, err
	}

	s.hub.Publish(sse.Event{Event: "checkin_reviewed", Data: resp})

	return resp, nil
}

func (s *CheckinServiceImpl) Stats(ctx context.Context, date string) (checkin.CheckinStatsResponse, error) {
	day, err := s.resolveDay(date)
	if err != nil {
		return checkin.CheckinStatsResponse{}, err
	}

	counts, err := s.checkinRepo.CountByStatus(ctx, day)
	if err != nil {
		return checkin.CheckinStatsResponse{}, err
	}

	suspicious, err := s.checkinRepo.CountSuspiciousForDate(ctx, day)
	if err != nil {
		return checkin.CheckinStatsResponse{}, err
	}

	resp := checkin.CheckinStatsResponse{
		Date:       day.Format("2006-01-02"),
		Approved:   counts[checkin.StatusApproved],
		Flagged:    counts[checkin.StatusFlagged],
		Rejected:   counts[checkin.StatusRejected],
		Suspicious: suspicious,
	}
	resp.Total = resp.Approved + resp.Flagged + resp.Rejected

	return resp, nil
}

// resolveDay parses the requested date or defaults to today, truncated to
// midnight in the reporting timezone so it matches stored record dates.
func (s *CheckinServiceImpl) resolveDay(date string) (time.Time, error) {
	if date == "" {
		return LocalDate(s.now(), s.location), nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return day, nil
}

// enrich joins employee and worksite display fields onto a stored record.
func (s *CheckinServiceImpl) enrich(ctx context.Context, c checkin.CheckIn) (checkin.CheckinResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, c.EmployeeID)
	if err != nil {
		return checkin.CheckinResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}
	site, err := s.worksiteRepo.GetByID(ctx, c.WorksiteID)
	if err != nil {
		return checkin.CheckinResponse{}, fmt.Errorf("failed to resolve worksite: %w", err)
	}
	return toResponse(c, emp.FullName(), site.Name, site.Location()), nil
}

func toResponse(c checkin.CheckIn, employeeName, worksiteName string, loc *time.Location) checkin.CheckinResponse {
	return checkin.CheckinResponse{
		ID:                   c.ID,
		EmployeeID:           c.EmployeeID,
		EmployeeName:         employeeName,
		WorksiteID:           c.WorksiteID,
		WorksiteName:         worksiteName,
		Type:                 string(c.Type),
		Status:               string(c.Status),
		Latitude:             c.Latitude,
		Longitude:            c.Longitude,
		GPSAccuracy:          c.GPSAccuracy,
		IsWithinWorksite:     c.IsWithinWorksite,
		DistanceFromWorksite: c.DistanceFromWorksite,
		IsSuspicious:         c.IsSuspicious,
		SuspiciousReasons:    c.SuspiciousReasons,
		VerificationMethod:   string(c.VerificationMethod),
		CheckinTime:          c.CheckinTime.In(loc).Format(time.RFC3339),
		Date:                 c.Date.Format("2006-01-02"),
		AdminNotes:           c.AdminNotes,
		CreatedAt:            c.CreatedAt.Format(time.RFC3339),
	}
}
