package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giftwell/backend/internal/models"
	"github.com/giftwell/backend/internal/storage"
)

const offerSelect = `
SELECT o.id, o.user_id, o.item_id, o.amount_cents, o.hidden, o.created_at, o.updated_at,
       u.id, u.username, u.email, u.about, u.avatar, u.password_hash, u.created_at, u.updated_at,
       w.id, w.owner_id, w.name, w.link, w.image, w.price_cents, w.raised_cents, w.description, w.copied, w.created_at, w.updated_at
FROM offers o
JOIN users u ON u.id = o.user_id
JOIN wishes w ON w.id = o.item_id`

// CreateOffer persists the offer and increments the target wish's raised
// total in one transaction. There is no window where the offer exists
// without the raised adjustment or vice versa.
func (s *SQLiteStore) CreateOffer(ctx context.Context, offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if offer.CreatedAt == 0 {
		offer.CreatedAt = now
	}
	if offer.UpdatedAt == 0 {
		offer.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO offers (id, user_id, item_id, amount_cents, hidden, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		offer.ID, offer.UserID, offer.ItemID, toCents(offer.Amount),
		boolToInt(offer.Hidden), offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}

	if err := adjustRaised(ctx, tx, offer.ItemID, toCents(offer.Amount)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveOffer rewrites the offer's amount and hidden flag. The wish's
// raised total is intentionally left untouched here; see OfferService.
func (s *SQLiteStore) SaveOffer(ctx context.Context, offer *models.Offer) error {
	offer.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		"UPDATE offers SET amount_cents = ?, hidden = ?, updated_at = ? WHERE id = ?",
		toCents(offer.Amount), boolToInt(offer.Hidden), offer.UpdatedAt, offer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	if n == 0 {
		return models.NotFound("offer")
	}
	return nil
}

// GetOffer retrieves a single offer matching the filter, with contributor
// and wish populated. Returns (nil, nil) when no offer matches.
func (s *SQLiteStore) GetOffer(ctx context.Context, filter storage.OfferFilter) (*models.Offer, error) {
	query, args := buildOfferQuery(filter)
	row := s.db.QueryRowContext(ctx, query+" LIMIT 1", args...)

	offer, err := scanOffer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

// ListOffers retrieves all offers matching the filter, newest first, with
// contributor and wish populated.
func (s *SQLiteStore) ListOffers(ctx context.Context, filter storage.OfferFilter) ([]*models.Offer, error) {
	query, args := buildOfferQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []*models.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}
	return offers, nil
}

// RemoveOffer decrements the target wish's raised total by the offer's
// amount and deletes the offer in one transaction (the reverse of
// CreateOffer). Returns NotFound without any mutation when the offer does
// not exist.
func (s *SQLiteStore) RemoveOffer(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID string
	var amountCents int64
	err = tx.QueryRowContext(ctx,
		"SELECT item_id, amount_cents FROM offers WHERE id = ?", id,
	).Scan(&itemID, &amountCents)
	if err == sql.ErrNoRows {
		return models.NotFound("offer")
	}
	if err != nil {
		return fmt.Errorf("failed to load offer: %w", err)
	}

	if err := adjustRaised(ctx, tx, itemID, -amountCents); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM offers WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func buildOfferQuery(filter storage.OfferFilter) (string, []any) {
	query := offerSelect
	var conds []string
	var args []any

	if filter.ID != "" {
		conds = append(conds, "o.id = ?")
		args = append(args, filter.ID)
	}
	if filter.UserID != "" {
		conds = append(conds, "o.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.ItemID != "" {
		conds = append(conds, "o.item_id = ?")
		args = append(args, filter.ItemID)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	return query + " ORDER BY o.created_at DESC", args
}

func scanOffer(sc scanner) (*models.Offer, error) {
	offer := &models.Offer{
		User: &models.User{},
		Item: &models.Wish{},
	}
	var amountCents, priceCents, raisedCents int64
	var hidden int

	err := sc.Scan(
		&offer.ID, &offer.UserID, &offer.ItemID, &amountCents, &hidden,
		&offer.CreatedAt, &offer.UpdatedAt,
		&offer.User.ID, &offer.User.Username, &offer.User.Email,
		&offer.User.About, &offer.User.Avatar, &offer.User.PasswordHash,
		&offer.User.CreatedAt, &offer.User.UpdatedAt,
		&offer.Item.ID, &offer.Item.OwnerID, &offer.Item.Name,
		&offer.Item.Link, &offer.Item.Image, &priceCents, &raisedCents,
		&offer.Item.Description, &offer.Item.Copied,
		&offer.Item.CreatedAt, &offer.Item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	offer.Amount = fromCents(amountCents)
	offer.Hidden = hidden != 0
	offer.Item.Price = fromCents(priceCents)
	offer.Item.Raised = fromCents(raisedCents)
	return offer, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
