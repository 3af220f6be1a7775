package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/worksite"
	"github.com/buildforce/attendance-backend-go/internal/handler/http/response"
	worksiteService "github.com/buildforce/attendance-backend-go/internal/service/worksite"
)

type WorksiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type worksiteHandlerImpl struct {
	worksiteService worksiteService.WorksiteService
}

func NewWorksiteHandler(svc worksiteService.WorksiteService) WorksiteHandler {
	return &worksiteHandlerImpl{worksiteService: svc}
}

// Create implements WorksiteHandler.
func (h *worksiteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worksite.CreateWorksiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}

	result, err := h.worksiteService.CreateWorksite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worksite registered", result)
}

// Get implements WorksiteHandler.
func (h *worksiteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.worksiteService.GetWorksite(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorksiteHandler.
func (h *worksiteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter worksite.WorksiteFilter
	q := r.URL.Query()

	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page = parseIntQuery(r, "page")
	filter.Limit = parseIntQuery(r, "limit")

	result, err := h.worksiteService.ListWorksites(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Worksites, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Update implements WorksiteHandler.
func (h *worksiteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worksite.UpdateWorksiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.worksiteService.UpdateWorksite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksite updated", result)
}

// Delete implements WorksiteHandler.
func (h *worksiteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.worksiteService.DeleteWorksite(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worksite removed", nil)
}
