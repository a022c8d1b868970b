package repair

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

type requestResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Contact            string    `json:"contact"`
	DeviceBrand        string    `json:"device_brand"`
	DeviceModel        string    `json:"device_model"`
	ProblemDescription string    `json:"problem_description"`
	EstimatedPrice     *string   `json:"estimated_price"`
	Timestamp          time.Time `json:"timestamp"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Requests []requestResponse `json:"requests"`
}

func toResponse(req *repair.Request) requestResponse {
	return requestResponse{
		ID:                 req.ID,
		Name:               req.Name,
		Contact:            req.Contact,
		DeviceBrand:        req.DeviceBrand,
		DeviceModel:        req.DeviceModel,
		ProblemDescription: req.ProblemDescription,
		EstimatedPrice:     req.EstimatedPrice,
		Timestamp:          req.Timestamp,
	}
}

func toResponseList(reqs []*repair.Request) []requestResponse {
	resp := make([]requestResponse, len(reqs))
	for i, req := range reqs {
		resp[i] = toResponse(req)
	}

	return resp
}
