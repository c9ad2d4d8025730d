package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"spacebook/internal/spaces/service"
	httputil "spacebook/pkg/http"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

type SpaceHandler struct {
	service service.SpaceService
	log     *logger.Logger
}

func NewSpaceHandler(service service.SpaceService, log *logger.Logger) *SpaceHandler {
	return &SpaceHandler{
		service: service,
		log:     log,
	}
}

func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.SpaceInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	space, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, space); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	spaces, err := h.service.List(r.Context(), r.URL.Query().Get("institution_id"))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, spaces); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpaceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	space, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, space); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpaceHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.SpaceUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	space, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, space); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SpaceHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SpaceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/spaces", h.Create)
	router.GET("/api/v1/spaces", h.List)
	router.GET("/api/v1/spaces/id/:id", h.GetByID)
	router.PATCH("/api/v1/spaces/id/:id", h.Update)
	router.DELETE("/api/v1/spaces/id/:id", h.Delete)
}
