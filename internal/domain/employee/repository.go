package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByCode resolves a public EMP0001-style code. Returns
	// ErrEmployeeNotFound when the code does not resolve.
	GetByCode(ctx context.Context, employeeID string) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// CountActive returns the number of active employees, used as the
	// denominator for daily attendance statistics.
	CountActive(ctx context.Context) (int64, error)

	Update(ctx context.Context, emp Employee) error

	Delete(ctx context.Context, id string) error
}
