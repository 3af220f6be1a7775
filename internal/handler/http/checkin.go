package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/checkin"
	"github.com/buildforce/attendance-backend-go/internal/handler/http/response"
	checkinService "github.com/buildforce/attendance-backend-go/internal/service/checkin"
)

type CheckinHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	checkinService checkinService.CheckinService
}

func NewCheckinHandler(svc checkinService.CheckinService) CheckinHandler {
	return &checkinHandlerImpl{checkinService: svc}
}

// Create implements CheckinHandler.
func (h *checkinHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req checkin.CreateCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}

	attachClientInfo(&req, r)

	result, err := h.checkinService.CreateCheckin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// Get implements CheckinHandler.
func (h *checkinHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.checkinService.GetCheckin(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements CheckinHandler.
func (h *checkinHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseCheckinFilter(r)

	result, err := h.checkinService.ListCheckins(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Checkins, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Review implements CheckinHandler.
func (h *checkinHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req checkin.ReviewCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.checkinService.ReviewCheckin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in reviewed", result)
}

// Stats implements CheckinHandler. The service resolves an empty date to
// today in the reporting timezone.
func (h *checkinHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkinService.Stats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func attachClientInfo(req *checkin.CreateCheckinRequest, r *http.Request) {
	ip := r.RemoteAddr
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}
	req.IPAddress = &ip

	if ua := r.UserAgent(); ua != "" {
		req.UserAgent = &ua
	}
}

func parseCheckinFilter(r *http.Request) checkin.CheckinFilter {
	var filter checkin.CheckinFilter
	q := r.URL.Query()

	for key, dst := range map[string]**string{
		"employee_id":  &filter.EmployeeID,
		"worksite_id":  &filter.WorksiteID,
		"checkin_type": &filter.Type,
		"status":       &filter.Status,
		"date_from":    &filter.DateFrom,
		"date_to":      &filter.DateTo,
	} {
		if v := q.Get(key); v != "" {
			value := v
			*dst = &value
		}
	}

	if v := q.Get("suspicious"); v != "" {
		suspicious := v == "true"
		filter.Suspicious = &suspicious
	}

	filter.Page = parseIntQuery(r, "page")
	filter.Limit = parseIntQuery(r, "limit")

	return filter
}
