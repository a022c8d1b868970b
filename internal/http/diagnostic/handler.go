package diagnostic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fixnet/internal/diagnostic"
	"github.com/MrJamesThe3rd/fixnet/internal/http/request"
	"github.com/MrJamesThe3rd/fixnet/internal/metrics"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.diagnose)
}

type diagnoseRequest struct {
	ProblemDescription *string `json:"problem_description" validate:"required"`
}

type diagnoseResponse struct {
	Category       diagnostic.Category `json:"category"`
	Description    string              `json:"description"`
	Recommendation string              `json:"recommendation"`
}

func (h *Handler) diagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := diagnostic.Classify(*req.ProblemDescription)
	metrics.Diagnosis(string(res.Category))

	request.WriteJSON(w, http.StatusOK, diagnoseResponse{
		Category:       res.Category,
		Description:    res.Description,
		Recommendation: res.Recommendation,
	})
}
