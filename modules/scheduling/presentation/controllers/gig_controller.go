package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/modules/scheduling/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/scheduling/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type GigController struct {
	app        application.Application
	gigService *services.GigService
	basePath   string
}

func NewGigController(app application.Application) application.Controller {
	return &GigController{
		app:        app,
		gigService: app.Service(services.GigService{}).(*services.GigService),
		basePath:   "/scheduling/api/gigs",
	}
}

func (c *GigController) Key() string {
	return c.basePath
}

func (c *GigController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/reconcile", c.Reconcile).Methods(http.MethodPost)
}

func (c *GigController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &gig.FindParams{
		Q:      r.URL.Query().Get("q"),
		Status: gig.Status(r.URL.Query().Get("status")),
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}
	if from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from")); err == nil {
		params.From = from
	}
	if to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to")); err == nil {
		params.To = to
	}
	gigs, total, err := c.gigService.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.GigResponse, 0, len(gigs))
	for _, g := range gigs {
		data = append(data, dtos.GigToResponse(g))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.Page[dtos.GigResponse]{
		Data:  data,
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (c *GigController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed gig id", serrors.ErrValidation))
		return
	}
	g, err := c.gigService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.GigToResponse(g))
}

func (c *GigController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	created, err := c.gigService.Create(r.Context(), req.ToCommand())
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.GigToResponse(created))
}

// Reconcile applies a full desired state to the gig's participants and staff
// slots. A write conflict surfaces as 409; the caller re-reads and retries.
func (c *GigController) Reconcile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed gig id", serrors.ErrValidation))
		return
	}
	var req dtos.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	g, err := c.gigService.Reconcile(r.Context(), req.ToCommand(id))
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.GigToResponse(g))
}

func (c *GigController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed gig id", serrors.ErrValidation))
		return
	}
	if err := c.gigService.Delete(r.Context(), id); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
