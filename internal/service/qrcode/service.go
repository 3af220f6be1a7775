package qrcode

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildforce/attendance-backend-go/internal/domain/qrcode"
	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
)

type QRCodeService interface {
	CreateQRCode(ctx context.Context, req qrcode.CreateQRCodeRequest) (qrcode.QRCodeResponse, error)
	ListForWorksite(ctx context.Context, worksiteID string) ([]qrcode.QRCodeResponse, error)
	DeactivateQRCode(ctx context.Context, id string) error

	// ResolveToken returns the reduced worksite view for the unauthenticated
	// QR landing page.
	ResolveToken(ctx context.Context, token string) (qrcode.PublicWorksiteResponse, error)

	// DeactivateExpired flips off every code past its expiry. Called by the
	// scheduler.
	DeactivateExpired(ctx context.Context) (int64, error)
}

type QRCodeServiceImpl struct {
	qrcodeRepo   qrcode.QRCodeRepository
	worksiteRepo worksite.WorksiteRepository

	now func() time.Time
}

func NewQRCodeService(qrcodeRepo qrcode.QRCodeRepository, worksiteRepo worksite.WorksiteRepository) QRCodeService {
	return &QRCodeServiceImpl{
		qrcodeRepo:   qrcodeRepo,
		worksiteRepo: worksiteRepo,
		now:          time.Now,
	}
}

func (s *QRCodeServiceImpl) CreateQRCode(ctx context.Context, req qrcode.CreateQRCodeRequest) (qrcode.QRCodeResponse, error) {
	if err := req.Validate(); err != nil {
		return qrcode.QRCodeResponse{}, err
	}

	if _, err := s.worksiteRepo.GetByID(ctx, req.WorksiteID); err != nil {
		return qrcode.QRCodeResponse{}, err
	}

	token, err := newToken()
	if err != nil {
		return qrcode.QRCodeResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	code := qrcode.QRCode{
		ID:                  uuid.New().String(),
		Token:               token,
		WorksiteID:          req.WorksiteID,
		AllowCheckinAnytime: req.AllowCheckinAnytime,
		IsActive:            true,
		CreatedBy:           req.CreatedBy,
	}

	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return qrcode.QRCodeResponse{}, fmt.Errorf("expires_at must be an RFC 3339 timestamp: %w", err)
		}
		code.ExpiresAt = &expires
	}

	created, err := s.qrcodeRepo.Create(ctx, code)
	if err != nil {
		return qrcode.QRCodeResponse{}, err
	}

	return toResponse(created), nil
}

func (s *QRCodeServiceImpl) ListForWorksite(ctx context.Context, worksiteID string) ([]qrcode.QRCodeResponse, error) {
	codes, err := s.qrcodeRepo.ListForWorksite(ctx, worksiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}

	responses := make([]qrcode.QRCodeResponse, 0, len(codes))
	for _, code := range codes {
		responses = append(responses, toResponse(code))
	}
	return responses, nil
}

func (s *QRCodeServiceImpl) DeactivateQRCode(ctx context.Context, id string) error {
	if _, err := s.qrcodeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.qrcodeRepo.Deactivate(ctx, id)
}

func (s *QRCodeServiceImpl) ResolveToken(ctx context.Context, token string) (qrcode.PublicWorksiteResponse, error) {
	code, err := s.qrcodeRepo.GetByToken(ctx, token)
	if err != nil {
		return qrcode.PublicWorksiteResponse{}, err
	}
	if !code.Usable(s.now()) {
		return qrcode.PublicWorksiteResponse{}, qrcode.ErrQRCodeExpired
	}

	site, err := s.worksiteRepo.GetByID(ctx, code.WorksiteID)
	if err != nil {
		return qrcode.PublicWorksiteResponse{}, err
	}

	return qrcode.PublicWorksiteResponse{
		WorksiteName:        site.Name,
		RequirePhoto:        site.RequirePhoto,
		AllowCheckinAnytime: site.AllowCheckinAnytime || code.AllowCheckinAnytime,
	}, nil
}

func (s *QRCodeServiceImpl) DeactivateExpired(ctx context.Context) (int64, error) {
	return s.qrcodeRepo.DeactivateExpired(ctx, s.now())
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func toResponse(code qrcode.QRCode) qrcode.QRCodeResponse {
	resp := qrcode.QRCodeResponse{
		ID:                  code.ID,
		Token:               code.Token,
		WorksiteID:          code.WorksiteID,
		AllowCheckinAnytime: code.AllowCheckinAnytime,
		IsActive:            code.IsActive,
		ScanCount:           code.ScanCount,
		SuccessfulCheckins:  code.SuccessfulCheckins,
		CreatedAt:           code.CreatedAt.Format(time.RFC3339),
	}
	if code.ExpiresAt != nil {
		v := code.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &v
	}
	return resp
}
