package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/storage"
)

const wishColumns = "id, owner_id, name, link, image, price_cents, raised_cents, description, copied, created_at, updated_at"

// CreateWish inserts a new wish with raised starting at zero.
func (s *SQLiteStore) CreateWish(ctx context.Context, wish *models.Wish) error {
	if wish.ID == "" {
		wish.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if wish.CreatedAt == 0 {
		wish.CreatedAt = now
	}
	if wish.UpdatedAt == 0 {
		wish.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wishes (id, owner_id, name, link, image, price_cents, raised_cents, description, copied, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wish.ID, wish.OwnerID, wish.Name, wish.Link, wish.Image,
		toCents(wish.Price), toCents(wish.Raised), wish.Description, wish.Copied,
		wish.CreatedAt, wish.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create wish: %w", err)
	}
	return nil
}

// GetWish retrieves a wish by ID, optionally populating its owner.
// Returns (nil, nil) when absent.
func (s *SQLiteStore) GetWish(ctx context.Context, id string, withOwner bool) (*models.Wish, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+wishColumns+" FROM wishes WHERE id = ?", id)

	wish, err := scanWish(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wish: %w", err)
	}

	if withOwner {
		owner, err := s.GetUserByID(ctx, wish.OwnerID)
		if err != nil {
			return nil, err
		}
		wish.Owner = owner
	}
	return wish, nil
}

// ListWishes retrieves wishes matching the filter.
func (s *SQLiteStore) ListWishes(ctx context.Context, filter storage.WishFilter) ([]*models.Wish, error) {
	query := "SELECT " + wishColumns + " FROM wishes"
	var args []any

	if filter.OwnerID != "" {
		query += " WHERE owner_id = ?"
		args = append(args, filter.OwnerID)
	}

	switch filter.Sort {
	case storage.WishSortMostCopied:
		query += " ORDER BY copied DESC, created_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishes: %w", err)
	}
	defer rows.Close()

	var wishes []*models.Wish
	for rows.Next() {
		wish, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes = append(wishes, wish)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishes: %w", err)
	}
	return wishes, nil
}

// UpdateWish rewrites the editable fields. Raised and copied move only
// through their dedicated operations.
func (s *SQLiteStore) UpdateWish(ctx context.Context, wish *models.Wish) error {
	wish.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE wishes SET name = ?, link = ?, image = ?, price_cents = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		wish.Name, wish.Link, wish.Image, toCents(wish.Price), wish.Description,
		wish.UpdatedAt, wish.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update wish: %w", err)
	}
	if n == 0 {
		return models.NotFound("wish")
	}
	return nil
}

// DeleteWish removes a wish; its offers go with it via foreign keys.
func (s *SQLiteStore) DeleteWish(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wishes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	if n == 0 {
		return models.NotFound("wish")
	}
	return nil
}

// IncrementRaised adds delta to the wish's raised total.
func (s *SQLiteStore) IncrementRaised(ctx context.Context, wishID string, delta decimal.Decimal) error {
	return adjustRaised(ctx, s.db, wishID, toCents(delta))
}

// DecrementRaised subtracts delta from the wish's raised total.
func (s *SQLiteStore) DecrementRaised(ctx context.Context, wishID string, delta decimal.Decimal) error {
	return adjustRaised(ctx, s.db, wishID, -toCents(delta))
}

// IncrementCopied bumps the duplication counter.
func (s *SQLiteStore) IncrementCopied(ctx context.Context, wishID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE wishes SET copied = copied + 1, updated_at = ? WHERE id = ?",
		time.Now().Unix(), wishID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment copied: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to increment copied: %w", err)
	}
	if n == 0 {
		return models.NotFound("wish")
	}
	return nil
}

// execer covers *sql.DB and *sql.Tx so raised adjustments can run both
// standalone and inside the offer transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// adjustRaised applies a relative delta in a single UPDATE. The relative
// form makes concurrent adjustments serialize in the database rather than
// lost-update-race through read-modify-write cycles.
func adjustRaised(ctx context.Context, ex execer, wishID string, deltaCents int64) error {
	res, err := ex.ExecContext(ctx,
		"UPDATE wishes SET raised_cents = raised_cents + ?, updated_at = ? WHERE id = ?",
		deltaCents, time.Now().Unix(), wishID,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust raised: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to adjust raised: %w", err)
	}
	if n == 0 {
		return models.NotFound("wish")
	}
	return nil
}

func scanWish(sc scanner) (*models.Wish, error) {
	wish := &models.Wish{}
	var priceCents, raisedCents int64
	err := sc.Scan(
		&wish.ID,
		&wish.OwnerID,
		&wish.Name,
		&wish.Link,
		&wish.Image,
		&priceCents,
		&raisedCents,
		&wish.Description,
		&wish.Copied,
		&wish.CreatedAt,
		&wish.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	wish.Price = fromCents(priceCents)
	wish.Raised = fromCents(raisedCents)
	return wish, nil
}
