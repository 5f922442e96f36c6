package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/audit/domain/entities/auditlog"
	"github.com/crewcall-hq/crewcall/modules/audit/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/audit/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type AuditController struct {
	app          application.Application
	auditService *services.AuditService
	basePath     string
}

func NewAuditController(app application.Application) application.Controller {
	return &AuditController{
		app:          app,
		auditService: app.Service(services.AuditService{}).(*services.AuditService),
		basePath:     "/audit/api/logs",
	}
}

func (c *AuditController) Key() string {
	return c.basePath
}

func (c *AuditController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

func (c *AuditController) List(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromQuery(r)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}

	entries, total, err := c.auditService.List(r.Context(), params)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}

	data := make([]dtos.EntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, dtos.EntryToResponse(e))
	}
	pagination := composables.UsePaginated(r)
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.Page[dtos.EntryResponse]{
		Data:  data,
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func listParamsFromQuery(r *http.Request) (*auditlog.FindParams, error) {
	pagination := composables.UsePaginated(r)
	params := &auditlog.FindParams{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		Limit:      pagination.Limit,
		Offset:     pagination.Offset,
	}

	if raw := r.URL.Query().Get("entityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed entityId", serrors.ErrValidation)
		}
		params.EntityID = id
	}
	if raw := r.URL.Query().Get("actorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed actorId", serrors.ErrValidation)
		}
		params.ActorID = id
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed from timestamp", serrors.ErrValidation)
		}
		params.From = from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed to timestamp", serrors.ErrValidation)
		}
		params.To = to
	}
	return params, nil
}
