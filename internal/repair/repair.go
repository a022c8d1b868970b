package repair

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("repair request not found")
	ErrInvalid  = errors.New("invalid repair request")
)

// Request is an accepted repair request.
type Request struct {
	ID                 uuid.UUID
	Name               string
	Contact            string
	DeviceBrand        string
	DeviceModel        string
	ProblemDescription string
	EstimatedPrice     *string
	Timestamp          time.Time
}
