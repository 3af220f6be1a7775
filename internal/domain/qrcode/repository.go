package qrcode

import (
	"context"
	"time"
)

type QRCodeRepository interface {
	Create(ctx context.Context, code QRCode) (QRCode, error)

	GetByToken(ctx context.Context, token string) (QRCode, error)

	GetByID(ctx context.Context, id string) (QRCode, error)

	ListForWorksite(ctx context.Context, worksiteID string) ([]QRCode, error)

	// RecordScan increments scan_count, and successful_checkins too when the
	// scan produced an attendance record.
	RecordScan(ctx context.Context, id string, successful bool) error

	Deactivate(ctx context.Context, id string) error

	// DeactivateExpired flips is_active off for every code whose expires_at
	// has passed. Returns the number of rows changed. Run by the scheduler.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
