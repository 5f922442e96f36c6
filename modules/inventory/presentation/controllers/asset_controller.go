package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/inventory/domain/entities/asset"
	"github.com/crewcall-hq/crewcall/modules/inventory/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/inventory/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type AssetController struct {
	app          application.Application
	assetService *services.AssetService
	basePath     string
}

func NewAssetController(app application.Application) application.Controller {
	return &AssetController{
		app:          app,
		assetService: app.Service(services.AssetService{}).(*services.AssetService),
		basePath:     "/inventory/api/assets",
	}
}

func (c *AssetController) Key() string {
	return c.basePath
}

func (c *AssetController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *AssetController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &asset.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}
	if orgID, err := uuid.Parse(r.URL.Query().Get("organizationId")); err == nil {
		params.OrganizationID = orgID
	}
	assets, total, err := c.assetService.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.AssetResponse, 0, len(assets))
	for _, a := range assets {
		data = append(data, dtos.AssetToResponse(a))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.Page[dtos.AssetResponse]{
		Data:  data,
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (c *AssetController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	a, err := c.assetService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.AssetToResponse(a))
}

func (c *AssetController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		_ = httpapi.RespondError(w, serrors.ErrNotAuthenticated)
		return
	}
	if req.Name == "" {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: asset name is required", serrors.ErrValidation))
		return
	}
	created, err := c.assetService.Create(r.Context(), asset.New(
		tenantID,
		req.OrganizationID,
		req.Name,
		asset.WithSerialNumber(req.SerialNumber),
		asset.WithReplacementValue(req.ReplacementValue.ToMoney()),
	))
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.AssetToResponse(created))
}

func (c *AssetController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	if err := c.assetService.Delete(r.Context(), id); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
