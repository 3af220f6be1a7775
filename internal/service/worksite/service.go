package worksite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
)

// Registration defaults applied when a create request leaves them out.
const (
	defaultRadiusMeters         = 100.0
	defaultWorkStart            = "07:00:00"
	defaultWorkEnd              = "15:30:00"
	defaultEarlyCheckinBuffer   = 30
	defaultLateCheckinTolerance = 15
	defaultMaxGPSAccuracy       = 20.0
	defaultTimezone             = "Australia/Perth"
	defaultCountry              = "Australia"
)

type WorksiteService interface {
	CreateWorksite(ctx context.Context, req worksite.CreateWorksiteRequest) (worksite.WorksiteResponse, error)
	GetWorksite(ctx context.Context, id string) (worksite.WorksiteResponse, error)
	ListWorksites(ctx context.Context, filter worksite.WorksiteFilter) (worksite.ListWorksitesResponse, error)
	UpdateWorksite(ctx context.Context, req worksite.UpdateWorksiteRequest) (worksite.WorksiteResponse, error)
	DeleteWorksite(ctx context.Context, id string) error
}

type WorksiteServiceImpl struct {
	worksiteRepo worksite.WorksiteRepository
}

func NewWorksiteService(worksiteRepo worksite.WorksiteRepository) WorksiteService {
	return &WorksiteServiceImpl{worksiteRepo: worksiteRepo}
}

func (s *WorksiteServiceImpl) CreateWorksite(ctx context.Context, req worksite.CreateWorksiteRequest) (worksite.WorksiteResponse, error) {
	if err := req.Validate(); err != nil {
		return worksite.WorksiteResponse{}, err
	}

	site := worksite.Worksite{
		ID:          uuid.New().String(),
		WorksiteID:  req.WorksiteID,
		Name:        req.Name,
		Description: req.Description,

		CenterLatitude:  req.CenterLatitude,
		CenterLongitude: req.CenterLongitude,
		RadiusMeters:    req.RadiusMeters,

		StreetAddress: req.StreetAddress,
		Suburb:        req.Suburb,
		State:         req.State,
		Postcode:      req.Postcode,
		Country:       req.Country,

		StandardWorkStart:    req.StandardWorkStart,
		StandardWorkEnd:      req.StandardWorkEnd,
		EarlyCheckinBuffer:   defaultEarlyCheckinBuffer,
		LateCheckinTolerance: defaultLateCheckinTolerance,
		Timezone:             req.Timezone,

		MaxGPSAccuracy:      defaultMaxGPSAccuracy,
		AllowRemoteCheckin:  req.AllowRemoteCheckin,
		AllowCheckinAnytime: req.AllowCheckinAnytime,

		RequirePhoto:           false,
		RequireWhiteCard:       true,
		RequireSafetyInduction: true,

		ProjectManager: req.ProjectManager,
		Status:         worksite.StatusActive,
	}

	if site.RadiusMeters == 0 {
		site.RadiusMeters = defaultRadiusMeters
	}
	if site.StandardWorkStart == "" {
		site.StandardWorkStart = defaultWorkStart
	}
	if site.StandardWorkEnd == "" {
		site.StandardWorkEnd = defaultWorkEnd
	}
	if site.Timezone == "" {
		site.Timezone = defaultTimezone
	}
	if site.Country == "" {
		site.Country = defaultCountry
	}
	if req.EarlyCheckinBuffer != nil {
		site.EarlyCheckinBuffer = *req.EarlyCheckinBuffer
	}
	if req.LateCheckinTolerance != nil {
		site.LateCheckinTolerance = *req.LateCheckinTolerance
	}
	if req.MaxGPSAccuracy != nil {
		site.MaxGPSAccuracy = *req.MaxGPSAccuracy
	}
	if req.RequirePhoto != nil {
		site.RequirePhoto = *req.RequirePhoto
	}
	if req.RequireWhiteCard != nil {
		site.RequireWhiteCard = *req.RequireWhiteCard
	}
	if req.RequireSafetyInduction != nil {
		site.RequireSafetyInduction = *req.RequireSafetyInduction
	}

	created, err := s.worksiteRepo.Create(ctx, site)
	if err != nil {
		return worksite.WorksiteResponse{}, err
	}

	return toResponse(created), nil
}

func (s *WorksiteServiceImpl) GetWorksite(ctx context.Context, id string) (worksite.WorksiteResponse, error) {
	site, err := s.worksiteRepo.GetByID(ctx, id)
	if err != nil {
		return worksite.WorksiteResponse{}, err
	}
	return toResponse(site), nil
}

func (s *WorksiteServiceImpl) ListWorksites(ctx context.Context, filter worksite.WorksiteFilter) (worksite.ListWorksitesResponse, error) {
	if err := filter.Validate(); err != nil {
		return worksite.ListWorksitesResponse{}, err
	}

	worksites, total, err := s.worksiteRepo.List(ctx, filter)
	if err != nil {
		return worksite.ListWorksitesResponse{}, fmt.Errorf("failed to list worksites: %w", err)
	}

	responses := make([]worksite.WorksiteResponse, 0, len(worksites))
	for _, site := range worksites {
		responses = append(responses, toResponse(site))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return worksite.ListWorksitesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Worksites:  responses,
	}, nil
}

func (s *WorksiteServiceImpl) UpdateWorksite(ctx context.Context, req worksite.UpdateWorksiteRequest) (worksite.WorksiteResponse, error) {
	if err := req.Validate(); err != nil {
		return worksite.WorksiteResponse{}, err
	}

	site, err := s.worksiteRepo.GetByID(ctx, req.ID)
	if err != nil {
		return worksite.WorksiteResponse{}, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Description != nil {
		site.Description = req.Description
	}
	if req.CenterLatitude != nil {
		site.CenterLatitude = *req.CenterLatitude
	}
	if req.CenterLongitude != nil {
		site.CenterLongitude = *req.CenterLongitude
	}
	if req.RadiusMeters != nil {
		site.RadiusMeters = *req.RadiusMeters
	}
	if req.StandardWorkStart != nil {
		site.StandardWorkStart = *req.StandardWorkStart
	}
	if req.StandardWorkEnd != nil {
		site.StandardWorkEnd = *req.StandardWorkEnd
	}
	if req.EarlyCheckinBuffer != nil {
		site.EarlyCheckinBuffer = *req.EarlyCheckinBuffer
	}
	if req.LateCheckinTolerance != nil {
		site.LateCheckinTolerance = *req.LateCheckinTolerance
	}
	if req.Timezone != nil {
		site.Timezone = *req.Timezone
	}
	if req.MaxGPSAccuracy != nil {
		site.MaxGPSAccuracy = *req.MaxGPSAccuracy
	}
	if req.AllowRemoteCheckin != nil {
		site.AllowRemoteCheckin = *req.AllowRemoteCheckin
	}
	if req.AllowCheckinAnytime != nil {
		site.AllowCheckinAnytime = *req.AllowCheckinAnytime
	}
	if req.Status != nil {
		site.Status = worksite.Status(*req.Status)
	}

	if err := s.worksiteRepo.Update(ctx, site); err != nil {
		return worksite.WorksiteResponse{}, err
	}

	return toResponse(site), nil
}

func (s *WorksiteServiceImpl) DeleteWorksite(ctx context.Context, id string) error {
	if _, err := s.worksiteRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.worksiteRepo.Delete(ctx, id)
}

func toResponse(site worksite.Worksite) worksite.WorksiteResponse {
	return worksite.WorksiteResponse{
		ID:          site.ID,
		WorksiteID:  site.WorksiteID,
		Name:        site.Name,
		Description: site.Description,

		CenterLatitude:  site.CenterLatitude,
		CenterLongitude: site.CenterLongitude,
		RadiusMeters:    site.RadiusMeters,

		StreetAddress: site.StreetAddress,
		Suburb:        site.Suburb,
		State:         site.State,
		Postcode:      site.Postcode,
		Country:       site.Country,

		StandardWorkStart:    site.StandardWorkStart,
		StandardWorkEnd:      site.StandardWorkEnd,
		EarlyCheckinBuffer:   site.EarlyCheckinBuffer,
		LateCheckinTolerance: site.LateCheckinTolerance,
		Timezone:             site.Timezone,

		MaxGPSAccuracy:      site.MaxGPSAccuracy,
		AllowRemoteCheckin:  site.AllowRemoteCheckin,
		AllowCheckinAnytime: site.AllowCheckinAnytime,

		RequirePhoto:           site.RequirePhoto,
		RequireWhiteCard:       site.RequireWhiteCard,
		RequireSafetyInduction: site.RequireSafetyInduction,

		ProjectManager: site.ProjectManager,
		Status:         string(site.Status),

		CreatedAt: site.CreatedAt.Format(time.RFC3339),
		UpdatedAt: site.UpdatedAt.Format(time.RFC3339),
	}
}
