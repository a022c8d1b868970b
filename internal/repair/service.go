package repair

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=repair
type Repository interface {
	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListRequests(ctx context.Context) ([]*Request, error)

	BeginBatch(ctx context.Context) (BatchTx, error)
}

type BatchTx interface {
	CreateRequests(ctx context.Context, reqs []*Request) error
	Commit() error
	Rollback() error
}

// Notifier receives every request created through Create. Implementations
// must not block the caller on delivery.
type Notifier interface {
	Notify(req *Request)
}

type Service struct {
	repo     Repository
	notifier Notifier
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

type CreateParams struct {
	Name               string `validate:"required"`
	Contact            string `validate:"required"`
	DeviceBrand        string `validate:"required"`
	DeviceModel        string `validate:"required"`
	ProblemDescription string `validate:"required"`
	EstimatedPrice     string
}

func (p CreateParams) normalize() CreateParams {
	return CreateParams{
		Name:               strings.TrimSpace(p.Name),
		Contact:            strings.TrimSpace(p.Contact),
		DeviceBrand:        strings.TrimSpace(p.DeviceBrand),
		DeviceModel:        strings.TrimSpace(p.DeviceModel),
		ProblemDescription: strings.TrimSpace(p.ProblemDescription),
		EstimatedPrice:     strings.TrimSpace(p.EstimatedPrice),
	}
}

// Create validates and stores a request, then hands it to the notifier.
// Notification is fire-and-forget and never fails the call.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Request, error) {
	req, err := s.build(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(req)
	}

	slog.Info("repair request created", "id", req.ID, "brand", req.DeviceBrand)

	return req, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.repo.GetRequest(ctx, id)
}

// List returns all requests in insertion order.
func (s *Service) List(ctx context.Context) ([]*Request, error) {
	return s.repo.ListRequests(ctx)
}

// CreateBatch stores all requests atomically. Either every request is
// stored or none is. Batch-created requests are not notified.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Request, error) {
	if len(params) == 0 {
		return nil, nil
	}

	reqs := make([]*Request, 0, len(params))

	for i, p := range params {
		req, err := s.build(p)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i+1, err)
		}

		reqs = append(reqs, req)
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	if err := btx.CreateRequests(ctx, reqs); err != nil {
		return nil, fmt.Errorf("create requests: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return reqs, nil
}

func (s *Service) build(params CreateParams) (*Request, error) {
	p := params.normalize()

	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}

	req := &Request{
		ID:                 uuid.New(),
		Name:               p.Name,
		Contact:            p.Contact,
		DeviceBrand:        p.DeviceBrand,
		DeviceModel:        p.DeviceModel,
		ProblemDescription: p.ProblemDescription,
		Timestamp:          s.now().UTC(),
	}

	if p.EstimatedPrice != "" {
		req.EstimatedPrice = new(p.EstimatedPrice)
	}

	return req, nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	return "missing " + strings.Join(fields, ", ")
}
