package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/core/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/core/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type UserController struct {
	app         application.Application
	userService *services.UserService
	basePath    string
}

func NewUserController(app application.Application) application.Controller {
	return &UserController{
		app:         app,
		userService: app.Service(services.UserService{}).(*services.UserService),
		basePath:    "/core/api/users",
	}
}

func (c *UserController) Key() string {
	return c.basePath
}

func (c *UserController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	users, total, err := c.userService.GetPaginated(r.Context(), &user.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, dtos.UserToResponse(u))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.Page[dtos.UserResponse]{
		Data:  data,
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed user id", serrors.ErrValidation))
		return
	}
	u, err := c.userService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.UserToResponse(u))
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		_ = httpapi.RespondError(w, serrors.ErrNotAuthenticated)
		return
	}
	created, err := c.userService.Create(r.Context(), user.New(tenantID, req.Email, req.FirstName, req.LastName))
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.UserToResponse(created))
}
