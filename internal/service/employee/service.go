package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildforce/attendance-backend-go/internal/domain/employee"
	"github.com/buildforce/attendance-backend-go/internal/pkg/validator"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error)
	UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,

		Position:     req.Position,
		DepartmentID: req.DepartmentID,

		EmploymentType: employee.EmploymentTypeFullTime,
		Status:         employee.StatusActive,
		CanCheckin:     req.CanCheckin,

		WhiteCardNumber:          req.WhiteCardNumber,
		SafetyInductionCompleted: req.SafetyInductionCompleted,

		Notes: req.Notes,
	}

	if req.EmploymentType != "" {
		emp.EmploymentType = employee.EmploymentType(req.EmploymentType)
	}

	if req.HourlyRate != nil && *req.HourlyRate != "" {
		rate, err := decimal.NewFromString(*req.HourlyRate)
		if err != nil {
			return employee.EmployeeResponse{}, validator.ValidationErrors{{
				Field:   "hourly_rate",
				Message: "hourly_rate must be a decimal number",
			}}
		}
		emp.HourlyRate = &rate
	}

	if req.StartDate != nil && *req.StartDate != "" {
		if d, ok := validator.IsValidDate(*req.StartDate); ok {
			emp.StartDate = &d
		}
	}
	if req.WhiteCardExpiry != nil && *req.WhiteCardExpiry != "" {
		if d, ok := validator.IsValidDate(*req.WhiteCardExpiry); ok {
			emp.WhiteCardExpiry = &d
		}
	}
	if req.SafetyInductionDate != nil && *req.SafetyInductionDate != "" {
		if d, ok := validator.IsValidDate(*req.SafetyInductionDate); ok {
			emp.SafetyInductionDate = &d
		}
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = req.DepartmentID
	}
	if req.HourlyRate != nil {
		rate, err := decimal.NewFromString(*req.HourlyRate)
		if err != nil {
			return employee.EmployeeResponse{}, validator.ValidationErrors{{
				Field:   "hourly_rate",
				Message: "hourly_rate must be a decimal number",
			}}
		}
		emp.HourlyRate = &rate
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}
	if req.CanCheckin != nil {
		emp.CanCheckin = *req.CanCheckin
	}
	if req.WhiteCardNumber != nil {
		emp.WhiteCardNumber = req.WhiteCardNumber
	}
	if req.WhiteCardExpiry != nil {
		if d, ok := validator.IsValidDate(*req.WhiteCardExpiry); ok {
			emp.WhiteCardExpiry = &d
		}
	}
	if req.SafetyInductionCompleted != nil {
		emp.SafetyInductionCompleted = *req.SafetyInductionCompleted
	}
	if req.Notes != nil {
		emp.Notes = req.Notes
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(emp), nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		FullName:   emp.FullName(),
		Email:      emp.Email,
		Phone:      emp.Phone,

		Position:     emp.Position,
		DepartmentID: emp.DepartmentID,

		EmploymentType: string(emp.EmploymentType),

		Status:     string(emp.Status),
		CanCheckin: emp.CanCheckin,

		WhiteCardNumber:          emp.WhiteCardNumber,
		SafetyInductionCompleted: emp.SafetyInductionCompleted,

		CreatedAt: emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: emp.UpdatedAt.Format(time.RFC3339),
	}

	if emp.HourlyRate != nil {
		v := emp.HourlyRate.String()
		resp.HourlyRate = &v
	}
	if emp.StartDate != nil {
		v := emp.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if emp.WhiteCardExpiry != nil {
		v := emp.WhiteCardExpiry.Format("2006-01-02")
		resp.WhiteCardExpiry = &v
	}

	return resp
}
