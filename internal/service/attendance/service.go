package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildforce/attendance-backend-go/internal/domain/attendance"
	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
)

type AttendanceService interface {
	// DailyAttendance classifies every active employee for one calendar day
	// and returns the per-employee records plus dashboard summary counts.
	DailyAttendance(ctx context.Context, req attendance.DailyAttendanceRequest) (attendance.DailyAttendanceResponse, error)

	// RangeAttendance classifies one employee across a date range.
	RangeAttendance(ctx context.Context, req attendance.RangeAttendanceRequest) (attendance.RangeAttendanceResponse, error)

	CreateLeave(ctx context.Context, req attendance.CreateLeaveRequest) (attendance.LeaveResponse, error)

	DeleteLeave(ctx context.Context, id string) error
}

type AttendanceServiceImpl struct {
	checkinRepo  checkin.CheckinRepository
	employeeRepo employee.EmployeeRepository
	worksiteRepo worksite.WorksiteRepository
	leaveRepo    attendance.LeaveRepository

	// location is the company's reporting timezone, used for the daily late
	// threshold and day boundaries in aggregate views.
	location *time.Location

	now func() time.Time
}

func NewAttendanceService(
	checkinRepo checkin.CheckinRepository,
	employeeRepo employee.EmployeeRepository,
	worksiteRepo worksite.WorksiteRepository,
	leaveRepo attendance.LeaveRepository,
	location *time.Location,
) AttendanceService {
	return &AttendanceServiceImpl{
		checkinRepo:  checkinRepo,
		employeeRepo: employeeRepo,
		worksiteRepo: worksiteRepo,
		leaveRepo:    leaveRepo,
		location:     location,
		now:          time.Now,
	}
}

func (s *AttendanceServiceImpl) DailyAttendance(ctx context.Context, req attendance.DailyAttendanceRequest) (attendance.DailyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	day := s.resolveDay(req.Date)

	filter := employee.EmployeeFilter{Page: 1, Limit: 100}
	status := string(employee.StatusActive)
	filter.Status = &status

	var employees []employee.Employee
	for {
		page, total, err := s.employeeRepo.List(ctx, filter)
		if err != nil {
			return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
		employees = append(employees, page...)
		if int64(len(employees)) >= total || len(page) == 0 {
			break
		}
		filter.Page++
	}

	checkins, err := s.checkinRepo.ListForDate(ctx, day)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to load check-ins: %w", err)
	}

	leaves, err := s.leaveRepo.ListForDate(ctx, day)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to load leave entries: %w", err)
	}

	onLeave := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		onLeave[l.EmployeeID] = true
	}

	byEmployee := make(map[string][]checkin.CheckIn)
	for _, c := range checkins {
		if req.WorksiteID != nil && c.WorksiteID != *req.WorksiteID {
			continue
		}
		byEmployee[c.EmployeeID] = append(byEmployee[c.EmployeeID], c)
	}

	suspicious, err := s.checkinRepo.CountSuspiciousForDate(ctx, day)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to count suspicious check-ins: %w", err)
	}

	resp := attendance.DailyAttendanceResponse{
		Date: day.Format("2006-01-02"),
		Summary: attendance.DailySummary{
			TotalEmployees: int64(len(employees)),
			Suspicious:     suspicious,
		},
	}

	siteNames := make(map[string]string)
	for _, emp := range employees {
		outcome := ClassifyDay(day, byEmployee[emp.ID], onLeave[emp.ID], s.location)

		switch outcome.Status {
		case attendance.StatusPresent:
			resp.Summary.Present++
		case attendance.StatusLate:
			resp.Summary.Late++
		case attendance.StatusAbsent:
			resp.Summary.Absent++
		case attendance.StatusLeave:
			resp.Summary.OnLeave++
		}

		record := attendance.DailyRecordResponse{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.FullName(),
			Date:         resp.Date,
			Status:       string(outcome.Status),
			WorkedHours:  outcome.WorkedHours,
		}
		if outcome.FirstCheckin != nil {
			v := outcome.FirstCheckin.In(s.location).Format(time.RFC3339)
			record.FirstCheckin = &v
		}
		if outcome.LastCheckout != nil {
			v := outcome.LastCheckout.In(s.location).Format(time.RFC3339)
			record.LastCheckout = &v
		}
		if outcome.WorksiteID != nil {
			name, ok := siteNames[*outcome.WorksiteID]
			if !ok {
				site, err := s.worksiteRepo.GetByID(ctx, *outcome.WorksiteID)
				if err != nil {
					return attendance.DailyAttendanceResponse{}, fmt.Errorf("failed to resolve worksite: %w", err)
				}
				name = site.Name
				siteNames[*outcome.WorksiteID] = name
			}
			record.WorksiteName = &name
		}

		resp.Records = append(resp.Records, record)
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) RangeAttendance(ctx context.Context, req attendance.RangeAttendanceRequest) (attendance.RangeAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RangeAttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RangeAttendanceResponse{}, err
	}

	from, _ := time.ParseInLocation("2006-01-02", req.DateFrom, s.location)
	to, _ := time.ParseInLocation("2006-01-02", req.DateTo, s.location)

	leaves, err := s.leaveRepo.ListForEmployeeInRange(ctx, emp.ID, from, to)
	if err != nil {
		return attendance.RangeAttendanceResponse{}, fmt.Errorf("failed to load leave entries: %w", err)
	}

	resp := attendance.RangeAttendanceResponse{
		EmployeeID: emp.EmployeeID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		checkins, err := s.checkinRepo.ListForEmployeeOnDate(ctx, emp.ID, day)
		if err != nil {
			return attendance.RangeAttendanceResponse{}, fmt.Errorf("failed to load check-ins: %w", err)
		}

		var leaveDay bool
		for _, l := range leaves {
			if l.Covers(day) {
				leaveDay = true
				break
			}
		}

		outcome := ClassifyDay(day, checkins, leaveDay, s.location)

		switch outcome.Status {
		case attendance.StatusPresent:
			resp.DaysPresent++
		case attendance.StatusLate:
			resp.DaysLate++
		case attendance.StatusAbsent:
			resp.DaysAbsent++
		case attendance.StatusLeave:
			resp.DaysOnLeave++
		}
		resp.TotalWorkedHours += outcome.WorkedHours

		record := attendance.DailyRecordResponse{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.FullName(),
			Date:         day.Format("2006-01-02"),
			Status:       string(outcome.Status),
			WorkedHours:  outcome.WorkedHours,
		}
		if outcome.FirstCheckin != nil {
			v := outcome.FirstCheckin.In(s.location).Format(time.RFC3339)
			record.FirstCheckin = &v
		}
		if outcome.LastCheckout != nil {
			v := outcome.LastCheckout.In(s.location).Format(time.RFC3339)
			record.LastCheckout = &v
		}

		resp.Records = append(resp.Records, record)
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) CreateLeave(ctx context.Context, req attendance.CreateLeaveRequest) (attendance.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LeaveResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeID)
	if err != nil {
		return attendance.LeaveResponse{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.location)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.location)

	entry, err := s.leaveRepo.Create(ctx, attendance.LeaveEntry{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		StartDate:  start,
		EndDate:    end,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
	})
	if err != nil {
		return attendance.LeaveResponse{}, err
	}

	return attendance.LeaveResponse{
		ID:         entry.ID,
		EmployeeID: emp.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		LeaveType:  entry.LeaveType,
		Reason:     entry.Reason,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *AttendanceServiceImpl) DeleteLeave(ctx context.Context, id string) error {
	return s.leaveRepo.Delete(ctx, id)
}

// resolveDay parses the requested date or defaults to today in the reporting
// timezone.
func (s *AttendanceServiceImpl) resolveDay(date string) time.Time {
	if date != "" {
		if d, err := time.ParseInLocation("2006-01-02", date, s.location); err == nil {
			return d
		}
	}
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}
