package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/core/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type OrganizationController struct {
	app        application.Application
	orgService *services.OrganizationService
	basePath   string
}

func NewOrganizationController(app application.Application) application.Controller {
	return &OrganizationController{
		app:        app,
		orgService: app.Service(services.OrganizationService{}).(*services.OrganizationService),
		basePath:   "/core/api/organizations",
	}
}

func (c *OrganizationController) Key() string {
	return c.basePath
}

func (c *OrganizationController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/members", c.AddMember).Methods(http.MethodPost)
}

func (c *OrganizationController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	orgs, total, err := c.orgService.GetPaginated(r.Context(), &organization.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		data = append(data, dtos.OrganizationToResponse(o))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.Page[dtos.OrganizationResponse]{
		Data:  data,
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (c *OrganizationController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed organization id", serrors.ErrValidation))
		return
	}
	o, err := c.orgService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.OrganizationToResponse(o))
}

func (c *OrganizationController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		_ = httpapi.RespondError(w, serrors.ErrNotAuthenticated)
		return
	}
	created, err := c.orgService.Create(r.Context(), organization.New(tenantID, req.Name, organization.Type(req.Type)))
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.OrganizationToResponse(created))
}

func (c *OrganizationController) AddMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed organization id", serrors.ErrValidation))
		return
	}
	var req dtos.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		_ = httpapi.RespondError(w, serrors.ErrNotAuthenticated)
		return
	}
	m := organization.NewMembership(tenantID, orgID, req.UserID, organization.MemberRole(req.Role))
	created, err := c.orgService.AddMember(r.Context(), m)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.MembershipToResponse(created))
}
