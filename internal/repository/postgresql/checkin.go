package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type checkinRepository struct {
	db *database.DB
}

func NewCheckinRepository(db *database.DB) checkin.CheckinRepository {
	return &checkinRepository{db: db}
}

const checkinColumns = `
	id, employee_id, worksite_id, checkin_type, status,
	latitude, longitude, gps_accuracy,
	is_within_worksite, distance_from_worksite,
	is_suspicious, suspicious_reasons,
	verification_method, qr_code_id,
	checkin_time, date,
	photo_url, device_id, ip_address, user_agent, admin_notes,
	created_at, updated_at
`

// Create implements checkin.CheckinRepository. The checkins table carries a
// unique index on (employee_id, checkin_type, date); a violation means a
// concurrent request already recorded the same scan type for the day.
func (r *checkinRepository) Create(ctx context.Context, c checkin.CheckIn) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checkins (
			id, employee_id, worksite_id, checkin_type, status,
			latitude, longitude, gps_accuracy,
			is_within_worksite, distance_from_worksite,
			is_suspicious, suspicious_reasons,
			verification_method, qr_code_id,
			checkin_time, date,
			photo_url, device_id, ip_address, user_agent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID,
		c.EmployeeID,
		c.WorksiteID,
		c.Type,
		c.Status,
		c.Latitude,
		c.Longitude,
		c.GPSAccuracy,
		c.IsWithinWorksite,
		c.DistanceFromWorksite,
		c.IsSuspicious,
		c.SuspiciousReasons,
		c.VerificationMethod,
		c.QRCodeID,
		c.CheckinTime,
		c.Date,
		c.PhotoURL,
		c.DeviceID,
		c.IPAddress,
		c.UserAgent,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return checkin.CheckIn{}, checkin.ErrDuplicateCheckin
		}
		return checkin.CheckIn{}, fmt.Errorf("failed to create checkin: %w", err)
	}

	return c, nil
}

// GetByID implements checkin.CheckinRepository.
func (r *checkinRepository) GetByID(ctx context.Context, id string) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + checkinColumns + `FROM checkins WHERE id = $1`

	c, err := scanCheckin(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.CheckIn{}, checkin.ErrCheckinNotFound
		}
		return checkin.CheckIn{}, fmt.Errorf("failed to get checkin: %w", err)
	}

	return c, nil
}

// ListForEmployeeOnDate implements checkin.CheckinRepository.
func (r *checkinRepository) ListForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + checkinColumns + `
		FROM checkins
		WHERE employee_id = $1 AND date = $2
		ORDER BY checkin_time ASC`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	return collectCheckins(rows)
}

// List implements checkin.CheckinRepository.
func (r *checkinRepository) List(ctx context.Context, filter checkin.CheckinFilter) ([]checkin.CheckIn, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.EmployeeID != nil {
		addCondition("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.WorksiteID != nil {
		addCondition("worksite_id = $%d", *filter.WorksiteID)
	}
	if filter.Type != nil {
		addCondition("checkin_type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		addCondition("status = $%d", *filter.Status)
	}
	if filter.DateFrom != nil {
		addCondition("date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("date <= $%d", *filter.DateTo)
	}
	if filter.Suspicious != nil {
		addCondition("is_suspicious = $%d", *filter.Suspicious)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM checkins` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count checkins: %w", err)
	}

	query := fmt.Sprintf(`SELECT`+checkinColumns+`
		FROM checkins%s
		ORDER BY checkin_time DESC
		LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	checkins, err := collectCheckins(rows)
	if err != nil {
		return nil, 0, err
	}

	return checkins, total, nil
}

// ListForDate implements checkin.CheckinRepository.
func (r *checkinRepository) ListForDate(ctx context.Context, date time.Time) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + checkinColumns + `
		FROM checkins
		WHERE date = $1
		ORDER BY checkin_time ASC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	return collectCheckins(rows)
}

// UpdateStatus implements checkin.CheckinRepository.
func (r *checkinRepository) UpdateStatus(ctx context.Context, id string, status checkin.Status, adminNotes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE checkins
		SET status = $1, admin_notes = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, status, adminNotes, id)
	if err != nil {
		return fmt.Errorf("failed to update checkin status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return checkin.ErrCheckinNotFound
	}

	return nil
}

// CountByStatus implements checkin.CheckinRepository.
func (r *checkinRepository) CountByStatus(ctx context.Context, date time.Time) (map[checkin.Status]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT status, COUNT(*) FROM checkins WHERE date = $1 GROUP BY status`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count checkins by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[checkin.Status]int64)
	for rows.Next() {
		var status checkin.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status counts: %w", err)
	}

	return counts, nil
}

// CountSuspiciousForDate implements checkin.CheckinRepository.
func (r *checkinRepository) CountSuspiciousForDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM checkins WHERE date = $1 AND is_suspicious = TRUE`
	if err := q.QueryRow(ctx, query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count suspicious checkins: %w", err)
	}

	return count, nil
}

func scanCheckin(row pgx.Row) (checkin.CheckIn, error) {
	var c checkin.CheckIn
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.WorksiteID, &c.Type, &c.Status,
		&c.Latitude, &c.Longitude, &c.GPSAccuracy,
		&c.IsWithinWorksite, &c.DistanceFromWorksite,
		&c.IsSuspicious, &c.SuspiciousReasons,
		&c.VerificationMethod, &c.QRCodeID,
		&c.CheckinTime, &c.Date,
		&c.PhotoURL, &c.DeviceID, &c.IPAddress, &c.UserAgent, &c.AdminNotes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func collectCheckins(rows pgx.Rows) ([]checkin.CheckIn, error) {
	var checkins []checkin.CheckIn
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checkins: %w", err)
	}
	return checkins, nil
}
