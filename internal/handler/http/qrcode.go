package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/domain/qrcode"
	"github.com/buildforce/attendance-backend-go/internal/handler/http/response"
	checkinService "github.com/buildforce/attendance-backend-go/internal/service/checkin"
	qrcodeService "github.com/buildforce/attendance-backend-go/internal/service/qrcode"
)

type QRCodeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListForWorksite(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)

	// Public endpoints reached from the QR landing page, no auth.
	Resolve(w http.ResponseWriter, r *http.Request)
	Checkin(w http.ResponseWriter, r *http.Request)
}

type qrcodeHandlerImpl struct {
	qrcodeService  qrcodeService.QRCodeService
	checkinService checkinService.CheckinService
}

func NewQRCodeHandler(qrSvc qrcodeService.QRCodeService, checkinSvc checkinService.CheckinService) QRCodeHandler {
	return &qrcodeHandlerImpl{
		qrcodeService:  qrSvc,
		checkinService: checkinSvc,
	}
}

// Create implements QRCodeHandler.
func (h *qrcodeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req qrcode.CreateQRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}
	req.WorksiteID = chi.URLParam(r, "id")

	result, err := h.qrcodeService.CreateQRCode(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "QR code generated", result)
}

// ListForWorksite implements QRCodeHandler.
func (h *qrcodeHandlerImpl) ListForWorksite(w http.ResponseWriter, r *http.Request) {
	worksiteID := chi.URLParam(r, "id")

	result, err := h.qrcodeService.ListForWorksite(r.Context(), worksiteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Deactivate implements QRCodeHandler.
func (h *qrcodeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.qrcodeService.DeactivateQRCode(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "QR code deactivated", nil)
}

// Resolve implements QRCodeHandler.
func (h *qrcodeHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	result, err := h.qrcodeService.ResolveToken(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Checkin implements QRCodeHandler.
func (h *qrcodeHandlerImpl) Checkin(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req checkin.CreateCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}

	attachClientInfo(&req, r)

	result, err := h.checkinService.CreateQRCheckin(r.Context(), token, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}
