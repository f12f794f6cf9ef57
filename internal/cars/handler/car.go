package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"carcloud/internal/auth"
	"carcloud/internal/cars/repository"
	"carcloud/internal/cars/service"
	apperrors "carcloud/pkg/errors"
	"carcloud/pkg/httputil"
	"carcloud/pkg/logger"
	"carcloud/pkg/model"
)

type CarHandler struct {
	service service.CarService
	guard   *auth.Guard
	log     *logger.Logger
}

func NewCarHandler(service service.CarService, guard *auth.Guard, log *logger.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var car model.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Add(r.Context(), &car); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, car); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CarHandler) Latest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cars, err := h.service.Latest(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Latest", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "Latest", "error", err)
	}
}

func (h *CarHandler) MyCars(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cars, err := h.service.ByOwner(r.Context(), ps.ByName("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MyCars", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "MyCars", "error", err)
	}
}

func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	car, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	// Absent car: 200 with a null body, matching the stored contract.
	if err := httputil.WriteSuccess(w, car); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := listQueryFromRequest(r)

	cars, err := h.service.List(r.Context(), query)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *CarHandler) Upsert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var car model.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	result, err := h.service.Upsert(r.Context(), ps.ByName("id"), &car)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "error", err)
	}
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Delete(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

// listQueryFromRequest parses sort, search, and limit. A non-numeric
// or non-positive limit means "return all matches", not an error.
func listQueryFromRequest(r *http.Request) repository.ListQuery {
	params := r.URL.Query()

	var limit int64
	if s := params.Get("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	return repository.ListQuery{
		Sort:   params.Get("sort"),
		Search: params.Get("search"),
		Limit:  limit,
	}
}

func (h *CarHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/add-car", h.Create)
	router.GET("/latest-cars", h.Latest)
	router.GET("/my-cars/:email", h.guard.RequireOwner("email", h.MyCars))
	router.GET("/car/:id", h.GetByID)
	router.GET("/all-cars", h.List)
	router.PUT("/update/:id", h.Upsert)
	router.DELETE("/car/:id", h.Delete)
}
