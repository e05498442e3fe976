package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/validate"
)

const pinColumns = `
	p.id::text, p.title, p.content, p.image, p.latitude, p.longitude, p.created_at,
	u.id, u.name, u.email, u.picture`

// PinStore implements pin.Repository on PostgreSQL.
type PinStore struct {
	pool *pgxpool.Pool
}

// NewPinStore returns a repository backed by pool.
func NewPinStore(pool *pgxpool.Pool) *PinStore {
	return &PinStore{pool: pool}
}

var _ pin.Repository = (*PinStore)(nil)

func scanPin(row pgx.Row) (pin.Pin, error) {
	var p pin.Pin
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Image, &p.Latitude, &p.Longitude, &p.CreatedAt,
		&p.Author.ID, &p.Author.Name, &p.Author.Email, &p.Author.Picture,
	)
	return p, err
}

func (s *PinStore) List(ctx context.Context) ([]pin.Pin, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+pinColumns+`
		FROM pins p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("query pins: %w", err)
	}
	defer rows.Close()

	pins := []pin.Pin{}
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		pins = append(pins, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pins: %w", err)
	}

	return pins, nil
}

// newPinRecord builds the row Create inserts. created_at is truncated to the microsecond
// precision of timestamptz so the returned pin equals what List reads back.
func newPinRecord(author user.User, input pin.CreateInput, now time.Time) pin.Pin {
	return pin.Pin{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Content:   input.Content,
		Image:     input.Image,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CreatedAt: now.UTC().Truncate(time.Microsecond),
		Author:    author,
	}
}

func (s *PinStore) Create(ctx context.Context, author user.User, input pin.CreateInput) (pin.Pin, error) {
	if err := validate.Struct(input); err != nil {
		return pin.Pin{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return pin.Pin{}, fmt.Errorf("begin create pin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Authors are known only through their identity token, so the profile is refreshed on every write.
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, email, picture, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, picture = EXCLUDED.picture, updated_at = now()`,
		author.ID, author.Name, author.Email, author.Picture)
	if err != nil {
		return pin.Pin{}, fmt.Errorf("upsert author: %w", err)
	}

	p := newPinRecord(author, input, time.Now())

	_, err = tx.Exec(ctx, `
		INSERT INTO pins (id, title, content, image, latitude, longitude, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Title, p.Content, p.Image, p.Latitude, p.Longitude, author.ID, p.CreatedAt)
	if err != nil {
		if IsCheckViolation(err) {
			return pin.Pin{}, errs.NewError(errs.ErrInvalidLocation)
		}
		return pin.Pin{}, fmt.Errorf("insert pin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return pin.Pin{}, fmt.Errorf("commit create pin: %w", err)
	}

	return p, nil
}

// Delete locks the row first so a concurrent delete cannot be reported as Forbidden.
func (s *PinStore) Delete(ctx context.Context, id string, callerID string) (pin.Pin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return pin.Pin{}, errs.NewError(errs.ErrPinNotFound)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return pin.Pin{}, fmt.Errorf("begin delete pin: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanPin(tx.QueryRow(ctx, `
		SELECT `+pinColumns+`
		FROM pins p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
		FOR UPDATE OF p`, id))
	if err != nil {
		if IsNoRows(err) || IsInvalidText(err) {
			return pin.Pin{}, errs.NewError(errs.ErrPinNotFound)
		}
		return pin.Pin{}, fmt.Errorf("lock pin: %w", err)
	}

	if existing.Author.ID != callerID {
		return pin.Pin{}, errs.NewError(errs.ErrForbidden)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pins WHERE id = $1 AND author_id = $2`, id, callerID); err != nil {
		return pin.Pin{}, fmt.Errorf("delete pin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return pin.Pin{}, fmt.Errorf("commit delete pin: %w", err)
	}

	return existing, nil
}
