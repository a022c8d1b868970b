package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fixnet/internal/http/request"
	"github.com/MrJamesThe3rd/fixnet/internal/metrics"
	"github.com/MrJamesThe3rd/fixnet/internal/pricing"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.estimate)
	r.Get("/brands", h.brands)
}

type estimateRequest struct {
	Brand   *string `json:"brand" validate:"required"`
	Model   *string `json:"model" validate:"required"`
	Problem *string `json:"problem" validate:"required"`
}

type estimateResponse struct {
	EstimatedPrice string `json:"estimated_price"`
	Description    string `json:"description"`
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := request.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := pricing.Estimate(*req.Brand, *req.Model, *req.Problem)
	metrics.Estimate(string(pricing.ResolveBrand(*req.Brand)), string(pricing.BucketFor(*req.Problem)))

	request.WriteJSON(w, http.StatusOK, estimateResponse{
		EstimatedPrice: res.EstimatedPrice,
		Description:    res.Description,
	})
}

// brands lists the labels the estimator prices explicitly, for brand pickers.
func (h *Handler) brands(w http.ResponseWriter, _ *http.Request) {
	request.WriteJSON(w, http.StatusOK, pricing.Brands())
}
