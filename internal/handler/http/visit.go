package http

import (
	"encoding/json"
	"net/http"

	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/handler/http/middleware"
	"github.com/carebridge/evv-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VisitHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	ListByShift(w http.ResponseWriter, r *http.Request)
}

type visitHandlerImpl struct {
	visitService visit.VisitService
}

func NewVisitHandler(visitService visit.VisitService) VisitHandler {
	return &visitHandlerImpl{
		visitService: visitService,
	}
}

// Start implements VisitHandler.
func (h *visitHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	caregiverID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req visit.RecordVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.visitService.RecordStart(r.Context(), caregiverID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, map[string]interface{}{"visit": result})
}

// End implements VisitHandler.
func (h *visitHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	caregiverID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req visit.RecordVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.visitService.RecordEnd(r.Context(), caregiverID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, map[string]interface{}{"visit": result})
}

// ListByShift implements VisitHandler.
func (h *visitHandlerImpl) ListByShift(w http.ResponseWriter, r *http.Request) {
	caregiverID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	shiftID := chi.URLParam(r, "shiftID")
	skip, limit, sortBy, sortOrder := parseListQuery(r)

	result, err := h.visitService.ListShiftVisits(r.Context(), caregiverID, shiftID, visit.ListFilter{
		Skip:      skip,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{"visits": result})
}
