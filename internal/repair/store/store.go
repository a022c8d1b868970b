package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Expected column order: id, name, contact, device_brand, device_model, problem_description, estimated_price, created_at
func scanRequest(s scanner) (*repair.Request, error) {
	var (
		req   repair.Request
		price sql.NullString
	)

	if err := s.Scan(
		&req.ID, &req.Name, &req.Contact, &req.DeviceBrand, &req.DeviceModel,
		&req.ProblemDescription, &price, &req.Timestamp,
	); err != nil {
		return nil, err
	}

	if price.Valid {
		req.EstimatedPrice = new(price.String)
	}

	req.Timestamp = req.Timestamp.UTC()

	return &req, nil
}

const selectRequestColumns = `
	id, name, contact, device_brand, device_model, problem_description, estimated_price, created_at
`

const insertRequest = `
	INSERT INTO repair_requests (id, name, contact, device_brand, device_model, problem_description, estimated_price, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func insert(ctx context.Context, e execer, req *repair.Request) error {
	_, err := e.ExecContext(ctx, insertRequest,
		req.ID,
		req.Name,
		req.Contact,
		req.DeviceBrand,
		req.DeviceModel,
		req.ProblemDescription,
		req.EstimatedPrice,
		req.Timestamp,
	)

	return err
}

func (s *Store) CreateRequest(ctx context.Context, req *repair.Request) error {
	if err := insert(ctx, s.db, req); err != nil {
		return fmt.Errorf("creating repair request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*repair.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM repair_requests WHERE id = $1`

	req, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repair.ErrNotFound
		}

		return nil, fmt.Errorf("getting repair request: %w", err)
	}

	return req, nil
}

// ListRequests returns requests in insertion order. seq is a BIGSERIAL, so
// rows inserted in one batch keep the order they were given in.
func (s *Store) ListRequests(ctx context.Context) ([]*repair.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM repair_requests ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing repair requests: %w", err)
	}
	defer rows.Close()

	reqs := make([]*repair.Request, 0)

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning repair request: %w", err)
		}

		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating repair requests: %w", err)
	}

	return reqs, nil
}

type batchTx struct {
	tx *sql.Tx
}

func (s *Store) BeginBatch(ctx context.Context) (repair.BatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", err)
	}

	return &batchTx{tx: dbTx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

func (b *batchTx) CreateRequests(ctx context.Context, reqs []*repair.Request) error {
	for _, req := range reqs {
		if err := insert(ctx, b.tx, req); err != nil {
			return fmt.Errorf("creating repair request %s: %w", req.ID, err)
		}
	}

	return nil
}
