package repair

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fixnet/internal/http/request"
	"github.com/MrJamesThe3rd/fixnet/internal/importer"
	"github.com/MrJamesThe3rd/fixnet/internal/metrics"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc    *repair.Service
	parser *importer.Parser
}

func NewHandler(svc *repair.Service, parser *importer.Parser) *Handler {
	return &Handler{
		svc:    svc,
		parser: parser,
	}
}

// SubmitRoutes mounts the public intake endpoint.
func (h *Handler) SubmitRoutes(r chi.Router) {
	r.Post("/", h.create)
}

// Routes mounts the operator endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
}

// createRequest only checks presence here. Blank values are rejected by
// repair.Service so that every intake path applies the same rule.
type createRequest struct {
	Name               *string `json:"name" validate:"required"`
	Contact            *string `json:"contact" validate:"required"`
	DeviceBrand        *string `json:"device_brand" validate:"required"`
	DeviceModel        *string `json:"device_model" validate:"required"`
	ProblemDescription *string `json:"problem_description" validate:"required"`
	EstimatedPrice     *string `json:"estimated_price"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := repair.CreateParams{
		Name:               *req.Name,
		Contact:            *req.Contact,
		DeviceBrand:        *req.DeviceBrand,
		DeviceModel:        *req.DeviceModel,
		ProblemDescription: *req.ProblemDescription,
	}

	if req.EstimatedPrice != nil {
		params.EstimatedPrice = *req.EstimatedPrice
	}

	created, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, repair.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to create repair request", "error", err)
		http.Error(w, "failed to create repair request", http.StatusInternalServerError)

		return
	}

	metrics.RepairRequests(metrics.SourceAPI, 1)
	request.WriteJSON(w, http.StatusOK, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list repair requests", "error", err)
		http.Error(w, "failed to list repair requests", http.StatusInternalServerError)

		return
	}

	request.WriteJSON(w, http.StatusOK, toResponseList(reqs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	req, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repair.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		slog.Error("failed to get repair request", "id", id, "error", err)
		http.Error(w, "failed to get repair request", http.StatusInternalServerError)

		return
	}

	request.WriteJSON(w, http.StatusOK, toResponse(req))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateBatch(r.Context(), params)
	if err != nil {
		if errors.Is(err, repair.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to import repair requests", "error", err)
		http.Error(w, "failed to import repair requests", http.StatusInternalServerError)

		return
	}

	metrics.RepairRequests(metrics.SourceImport, len(created))
	request.WriteJSON(w, http.StatusCreated, importResponse{
		Imported: len(created),
		Requests: toResponseList(created),
	})
}
