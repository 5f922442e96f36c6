package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/scheduling/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/scheduling/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type StaffRoleController struct {
	app         application.Application
	roleService *services.StaffRoleService
	basePath    string
}

func NewStaffRoleController(app application.Application) application.Controller {
	return &StaffRoleController{
		app:         app,
		roleService: app.Service(services.StaffRoleService{}).(*services.StaffRoleService),
		basePath:    "/scheduling/api/staff-roles",
	}
}

func (c *StaffRoleController) Key() string {
	return c.basePath
}

func (c *StaffRoleController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.GetOrCreate).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

func (c *StaffRoleController) List(w http.ResponseWriter, r *http.Request) {
	roles, err := c.roleService.GetAll(r.Context())
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.StaffRoleResponse, 0, len(roles))
	for _, role := range roles {
		data = append(data, dtos.StaffRoleToResponse(role))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, data)
}

func (c *StaffRoleController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed staff role id", serrors.ErrValidation))
		return
	}
	role, err := c.roleService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.StaffRoleToResponse(role))
}

// GetOrCreate is idempotent on the normalized role name: posting an existing
// name returns the existing role.
func (c *StaffRoleController) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req dtos.GetOrCreateStaffRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	role, err := c.roleService.GetOrCreate(r.Context(), req.Name)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.StaffRoleToResponse(role))
}
