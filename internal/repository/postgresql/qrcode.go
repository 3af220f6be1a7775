package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/qrcode"
	"github.com/buildforce/attendance-backend-go/internal/pkg/database"
)

type qrcodeRepository struct {
	db *database.DB
}

func NewQRCodeRepository(db *database.DB) qrcode.QRCodeRepository {
	return &qrcodeRepository{db: db}
}

const qrcodeColumns = `
	id, token, worksite_id, allow_checkin_anytime,
	expires_at, is_active, scan_count, successful_checkins,
	created_by, created_at, updated_at
`

// Create implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) Create(ctx context.Context, code qrcode.QRCode) (qrcode.QRCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO qr_codes (
			id, token, worksite_id, allow_checkin_anytime,
			expires_at, is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		code.ID, code.Token, code.WorksiteID, code.AllowCheckinAnytime,
		code.ExpiresAt, code.IsActive, code.CreatedBy,
	).Scan(&code.CreatedAt, &code.UpdatedAt)

	if err != nil {
		return qrcode.QRCode{}, fmt.Errorf("failed to create qr code: %w", err)
	}

	return code, nil
}

// GetByToken implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) GetByToken(ctx context.Context, token string) (qrcode.QRCode, error) {
	return r.getOne(ctx, `token = $1`, token)
}

// GetByID implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) GetByID(ctx context.Context, id string) (qrcode.QRCode, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *qrcodeRepository) getOne(ctx context.Context, where string, arg interface{}) (qrcode.QRCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + qrcodeColumns + `FROM qr_codes WHERE ` + where

	code, err := scanQRCode(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return qrcode.QRCode{}, qrcode.ErrQRCodeNotFound
		}
		return qrcode.QRCode{}, fmt.Errorf("failed to get qr code: %w", err)
	}

	return code, nil
}

// ListForWorksite implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) ListForWorksite(ctx context.Context, worksiteID string) ([]qrcode.QRCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + qrcodeColumns + `
		FROM qr_codes
		WHERE worksite_id = $1
		ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, worksiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	defer rows.Close()

	var codes []qrcode.QRCode
	for rows.Next() {
		code, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qr code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read qr codes: %w", err)
	}

	return codes, nil
}

// RecordScan implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) RecordScan(ctx context.Context, id string, successful bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE qr_codes
		SET scan_count = scan_count + 1,
			successful_checkins = successful_checkins + CASE WHEN $1 THEN 1 ELSE 0 END,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, successful, id)
	if err != nil {
		return fmt.Errorf("failed to record qr scan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return qrcode.ErrQRCodeNotFound
	}

	return nil
}

// Deactivate implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE qr_codes SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate qr code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return qrcode.ErrQRCodeNotFound
	}

	return nil
}

// DeactivateExpired implements qrcode.QRCodeRepository.
func (r *qrcodeRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE qr_codes
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND expires_at IS NOT NULL AND expires_at < $1
	`

	tag, err := q.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired qr codes: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanQRCode(row pgx.Row) (qrcode.QRCode, error) {
	var code qrcode.QRCode
	err := row.Scan(
		&code.ID, &code.Token, &code.WorksiteID, &code.AllowCheckinAnytime,
		&code.ExpiresAt, &code.IsActive, &code.ScanCount, &code.SuccessfulCheckins,
		&code.CreatedBy, &code.CreatedAt, &code.UpdatedAt,
	)
	return code, err
}
