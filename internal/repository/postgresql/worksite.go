package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
	"github.com/buildforce/attendance-backend-go/internal/pkg/database"
)

type worksiteRepository struct {
	db *database.DB
}

func NewWorksiteRepository(db *database.DB) worksite.WorksiteRepository {
	return &worksiteRepository{db: db}
}

const worksiteColumns = `
	id, worksite_id, name, description,
	center_latitude, center_longitude, radius_meters,
	street_address, suburb, state, postcode, country,
	standard_work_start, standard_work_end,
	early_checkin_buffer, late_checkin_tolerance, timezone,
	max_gps_accuracy, allow_remote_checkin, allow_checkin_anytime,
	require_photo, require_white_card, require_safety_induction,
	project_manager, status,
	created_at, updated_at
`

// Create implements worksite.WorksiteRepository.
func (r *worksiteRepository) Create(ctx context.Context, site worksite.Worksite) (worksite.Worksite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO worksites (
			id, worksite_id, name, description,
			center_latitude, center_longitude, radius_meters,
			street_address, suburb, state, postcode, country,
			standard_work_start, standard_work_end,
			early_checkin_buffer, late_checkin_tolerance, timezone,
			max_gps_accuracy, allow_remote_checkin, allow_checkin_anytime,
			require_photo, require_white_card, require_safety_induction,
			project_manager, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		site.ID, site.WorksiteID, site.Name, site.Description,
		site.CenterLatitude, site.CenterLongitude, site.RadiusMeters,
		site.StreetAddress, site.Suburb, site.State, site.Postcode, site.Country,
		site.StandardWorkStart, site.StandardWorkEnd,
		site.EarlyCheckinBuffer, site.LateCheckinTolerance, site.Timezone,
		site.MaxGPSAccuracy, site.AllowRemoteCheckin, site.AllowCheckinAnytime,
		site.RequirePhoto, site.RequireWhiteCard, site.RequireSafetyInduction,
		site.ProjectManager, site.Status,
	).Scan(&site.CreatedAt, &site.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return worksite.Worksite{}, worksite.ErrWorksiteCodeExists
		}
		return worksite.Worksite{}, fmt.Errorf("failed to create worksite: %w", err)
	}

	return site, nil
}

// GetByCode implements worksite.WorksiteRepository.
func (r *worksiteRepository) GetByCode(ctx context.Context, worksiteID string) (worksite.Worksite, error) {
	return r.getOne(ctx, `worksite_id = $1`, worksiteID)
}

// GetByID implements worksite.WorksiteRepository.
func (r *worksiteRepository) GetByID(ctx context.Context, id string) (worksite.Worksite, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *worksiteRepository) getOne(ctx context.Context, where string, arg interface{}) (worksite.Worksite, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + worksiteColumns + `FROM worksites WHERE ` + where

	site, err := scanWorksite(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksite.Worksite{}, worksite.ErrWorksiteNotFound
		}
		return worksite.Worksite{}, fmt.Errorf("failed to get worksite: %w", err)
	}

	return site, nil
}

// List implements worksite.WorksiteRepository.
func (r *worksiteRepository) List(ctx context.Context, filter worksite.WorksiteFilter) ([]worksite.Worksite, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR worksite_id ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM worksites` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count worksites: %w", err)
	}

	query := fmt.Sprintf(`SELECT`+worksiteColumns+`
		FROM worksites%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list worksites: %w", err)
	}
	defer rows.Close()

	var worksites []worksite.Worksite
	for rows.Next() {
		site, err := scanWorksite(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan worksite: %w", err)
		}
		worksites = append(worksites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read worksites: %w", err)
	}

	return worksites, total, nil
}

// Update implements worksite.WorksiteRepository.
func (r *worksiteRepository) Update(ctx context.Context, site worksite.Worksite) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE worksites
		SET name = $1, description = $2,
			center_latitude = $3, center_longitude = $4, radius_meters = $5,
			standard_work_start = $6, standard_work_end = $7,
			early_checkin_buffer = $8, late_checkin_tolerance = $9, timezone = $10,
			max_gps_accuracy = $11, allow_remote_checkin = $12, allow_checkin_anytime = $13,
			status = $14, updated_at = NOW()
		WHERE id = $15
	`

	tag, err := q.Exec(ctx, query,
		site.Name, site.Description,
		site.CenterLatitude, site.CenterLongitude, site.RadiusMeters,
		site.StandardWorkStart, site.StandardWorkEnd,
		site.EarlyCheckinBuffer, site.LateCheckinTolerance, site.Timezone,
		site.MaxGPSAccuracy, site.AllowRemoteCheckin, site.AllowCheckinAnytime,
		site.Status, site.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update worksite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksite.ErrWorksiteNotFound
	}

	return nil
}

// Delete implements worksite.WorksiteRepository.
func (r *worksiteRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM worksites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worksite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksite.ErrWorksiteNotFound
	}

	return nil
}

func scanWorksite(row pgx.Row) (worksite.Worksite, error) {
	var site worksite.Worksite
	err := row.Scan(
		&site.ID, &site.WorksiteID, &site.Name, &site.Description,
		&site.CenterLatitude, &site.CenterLongitude, &site.RadiusMeters,
		&site.StreetAddress, &site.Suburb, &site.State, &site.Postcode, &site.Country,
		&site.StandardWorkStart, &site.StandardWorkEnd,
		&site.EarlyCheckinBuffer, &site.LateCheckinTolerance, &site.Timezone,
		&site.MaxGPSAccuracy, &site.AllowRemoteCheckin, &site.AllowCheckinAnytime,
		&site.RequirePhoto, &site.RequireWhiteCard, &site.RequireSafetyInduction,
		&site.ProjectManager, &site.Status,
		&site.CreatedAt, &site.UpdatedAt,
	)
	return site, err
}
