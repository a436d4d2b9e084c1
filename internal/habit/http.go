// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/habitrack/internal/platform/middleware"
	requestutil "github.com/taibuivan/habitrack/internal/platform/request"
	"github.com/taibuivan/habitrack/internal/platform/respond"
	"github.com/taibuivan/habitrack/internal/platform/validate"
)

// Handler implements the habit and dashboard HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /habits router. Every endpoint requires a session.
//
// # Endpoints
//   - GET    /                          : List habits with stats.
//   - POST   /                          : Create a habit.
//   - GET    /{habitID}                 : One habit with stats.
//   - PUT    /{habitID}                 : Partial update.
//   - DELETE /{habitID}                 : Delete with completions.
//   - POST   /{habitID}/completions     : Record a day (body date optional).
//   - DELETE /{habitID}/completions     : Remove a day (?date= required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listHabits)
	router.Post("/", handler.createHabit)

	router.Route("/{"+FieldHabitID+"}", func(habitRoute chi.Router) {
		habitRoute.Get("/", handler.getHabit)
		habitRoute.Put("/", handler.updateHabit)
		habitRoute.Delete("/", handler.deleteHabit)

		habitRoute.Post("/completions", handler.recordCompletion)
		habitRoute.Delete("/completions", handler.deleteCompletion)
	})

	return router
}

// DashboardRoutes returns the /dashboard router.
func (handler *Handler) DashboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.dashboard)
	return router
}

func (handler *Handler) listHabits(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.ListHabits(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, views)
}

func (handler *Handler) createHabit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input HabitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.CreateHabit(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

func (handler *Handler) getHabit(writer http.ResponseWriter, request *http.Request) {
	userID, habitID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetHabit(request.Context(), userID, habitID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) updateHabit(writer http.ResponseWriter, request *http.Request) {
	userID, habitID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input HabitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.UpdateHabit(request.Context(), userID, habitID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) deleteHabit(writer http.ResponseWriter, request *http.Request) {
	userID, habitID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteHabit(request.Context(), userID, habitID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// completionRequest is the optional body of POST /completions.
type completionRequest struct {
	Date string `json:"date"`
}

func (handler *Handler) recordCompletion(writer http.ResponseWriter, request *http.Request) {
	userID, habitID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input completionRequest
	if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	completion, err := handler.service.RecordCompletion(request.Context(), userID, habitID, input.Date)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, completion)
}

func (handler *Handler) deleteCompletion(writer http.ResponseWriter, request *http.Request) {
	userID, habitID, err := identify(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.DeleteCompletion(request.Context(), userID, habitID, request.URL.Query().Get(FieldDate)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Completion removed")
}

func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := 0
	if raw := request.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respond.Error(writer, request, validate.FieldErr("limit", "Must be a non-negative integer"))
			return
		}
	}

	dashboard, err := handler.service.Dashboard(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dashboard)
}

// identify extracts the session user and the habit path parameter.
func identify(request *http.Request) (string, string, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return "", "", err
	}
	habitID, err := requestutil.ID(request, FieldHabitID)
	if err != nil {
		return "", "", err
	}
	return userID, habitID, nil
}
