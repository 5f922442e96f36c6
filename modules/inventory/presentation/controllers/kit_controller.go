package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/inventory/presentation/controllers/dtos"
	"github.com/crewcall-hq/crewcall/modules/inventory/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type KitController struct {
	app        application.Application
	kitService *services.KitService
	basePath   string
}

func NewKitController(app application.Application) application.Controller {
	return &KitController{
		app:        app,
		kitService: app.Service(services.KitService{}).(*services.KitService),
		basePath:   "/inventory/api/kits",
	}
}

func (c *KitController) Key() string {
	return c.basePath
}

func (c *KitController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/assets/{assetId}", c.PutAsset).Methods(http.MethodPut)
	router.HandleFunc("/{id}/assets/{assetId}", c.RemoveAsset).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/gigs/{gigId}/conflicts", c.FindConflicts).Methods(http.MethodGet)
	router.HandleFunc("/{id}/gigs/{gigId}", c.AssignToGig).Methods(http.MethodPut)
	router.HandleFunc("/{id}/gigs/{gigId}", c.UnassignFromGig).Methods(http.MethodDelete)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed %s", serrors.ErrValidation, name)
	}
	return id, nil
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed %s", serrors.ErrValidation, name)
	}
	return t, nil
}

func (c *KitController) List(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &kit.FindParams{
		Q:        r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Limit:    pagination.Limit,
		Offset:   pagination.Offset,
	}
	if orgID, err := uuid.Parse(r.URL.Query().Get("organizationId")); err == nil {
		params.OrganizationID = orgID
	}
	kits, total, err := c.kitService.GetPaginated(r.Context(), params)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.KitResponse, 0, len(kits))
	for _, k := range kits {
		data = append(data, dtos.KitToResponse(k))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, httpapi.Page[dtos.KitResponse]{
		Data:  data,
		Total: total,
		Page:  pagination.Page,
		Limit: pagination.Limit,
	})
}

func (c *KitController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	k, err := c.kitService.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.KitToResponse(k))
}

func (c *KitController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateKitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	created, err := c.kitService.Create(r.Context(), req.ToCommand())
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.KitToResponse(created))
}

func (c *KitController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	if err := c.kitService.Delete(r.Context(), id); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *KitController) PutAsset(w http.ResponseWriter, r *http.Request) {
	kitID, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	assetID, err := pathUUID(r, "assetId")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	var req dtos.PutKitAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpapi.RespondError(w, fmt.Errorf("%w: malformed request body", serrors.ErrValidation))
		return
	}
	if err := c.kitService.PutAsset(r.Context(), kitID, assetID, req.Quantity, req.Notes); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *KitController) RemoveAsset(w http.ResponseWriter, r *http.Request) {
	kitID, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	assetID, err := pathUUID(r, "assetId")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	if err := c.kitService.RemoveAsset(r.Context(), kitID, assetID); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

// FindConflicts is the advisory double-booking check: it reports, per
// overlapping gig, which of this kit's assets are already committed there.
// Optional start/end query params (RFC 3339) check a candidate window other
// than the gig's stored one.
func (c *KitController) FindConflicts(w http.ResponseWriter, r *http.Request) {
	kitID, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	gigID, err := pathUUID(r, "gigId")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	start, err := queryTime(r, "start")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	end, err := queryTime(r, "end")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	reports, err := c.kitService.FindConflicts(r.Context(), kitID, gigID, start, end)
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	data := make([]dtos.ConflictReportResponse, 0, len(reports))
	for _, report := range reports {
		data = append(data, dtos.ConflictReportToResponse(report))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, data)
}

func (c *KitController) AssignToGig(w http.ResponseWriter, r *http.Request) {
	kitID, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	gigID, err := pathUUID(r, "gigId")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	if err := c.kitService.AssignToGig(r.Context(), kitID, gigID); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *KitController) UnassignFromGig(w http.ResponseWriter, r *http.Request) {
	kitID, err := pathUUID(r, "id")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	gigID, err := pathUUID(r, "gigId")
	if err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	if err := c.kitService.UnassignFromGig(r.Context(), kitID, gigID); err != nil {
		_ = httpapi.RespondError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
