package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giftwell/backend/internal/models"
)

const wishlistColumns = "id, owner_id, name, description, image, created_at, updated_at"

// CreateWishlist persists the list and its item links in one transaction.
func (s *SQLiteStore) CreateWishlist(ctx context.Context, list *models.Wishlist, itemIDs []string) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if list.CreatedAt == 0 {
		list.CreatedAt = now
	}
	if list.UpdatedAt == 0 {
		list.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wishlists (id, owner_id, name, description, image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		list.ID, list.OwnerID, list.Name, list.Description, list.Image,
		list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wishlist: %w", err)
	}

	if err := insertWishlistItems(ctx, tx, list.ID, itemIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetWishlist retrieves a wishlist with its owner and items. Returns
// (nil, nil) when absent.
func (s *SQLiteStore) GetWishlist(ctx context.Context, id string) (*models.Wishlist, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+wishlistColumns+" FROM wishlists WHERE id = ?", id)

	list, err := scanWishlist(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	if err := s.populateWishlist(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListWishlists retrieves all wishlists with owners and items populated.
func (s *SQLiteStore) ListWishlists(ctx context.Context) ([]*models.Wishlist, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+wishlistColumns+" FROM wishlists ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	defer rows.Close()

	var lists []*models.Wishlist
	for rows.Next() {
		list, err := scanWishlist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlists: %w", err)
	}

	for _, list := range lists {
		if err := s.populateWishlist(ctx, list); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// UpdateWishlist rewrites the list fields; when itemIDs is non-nil the
// item links are replaced wholesale.
func (s *SQLiteStore) UpdateWishlist(ctx context.Context, list *models.Wishlist, itemIDs []string) error {
	list.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE wishlists SET name = ?, description = ?, image = ?, updated_at = ? WHERE id = ?",
		list.Name, list.Description, list.Image, list.UpdatedAt, list.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wishlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update wishlist: %w", err)
	}
	if n == 0 {
		return models.NotFound("wishlist")
	}

	if itemIDs != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM wishlist_items WHERE wishlist_id = ?", list.ID); err != nil {
			return fmt.Errorf("failed to clear wishlist items: %w", err)
		}
		if err := insertWishlistItems(ctx, tx, list.ID, itemIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteWishlist removes a wishlist; item links go with it via foreign
// keys. The wishes themselves stay.
func (s *SQLiteStore) DeleteWishlist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wishlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if n == 0 {
		return models.NotFound("wishlist")
	}
	return nil
}

func insertWishlistItems(ctx context.Context, ex execer, listID string, itemIDs []string) error {
	for _, wishID := range itemIDs {
		if _, err := ex.ExecContext(ctx,
			"INSERT INTO wishlist_items (wishlist_id, wish_id) VALUES (?, ?)",
			listID, wishID); err != nil {
			return fmt.Errorf("failed to link wish %s: %w", wishID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) populateWishlist(ctx context.Context, list *models.Wishlist) error {
	owner, err := s.GetUserByID(ctx, list.OwnerID)
	if err != nil {
		return err
	}
	list.Owner = owner

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+prefixed("w", wishColumns)+`
		 FROM wishes w
		 JOIN wishlist_items wi ON wi.wish_id = w.id
		 WHERE wi.wishlist_id = ?
		 ORDER BY w.created_at DESC`,
		list.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get wishlist items: %w", err)
	}
	defer rows.Close()

	list.Items = []*models.Wish{}
	for rows.Next() {
		wish, err := scanWish(rows)
		if err != nil {
			return fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		list.Items = append(list.Items, wish)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate wishlist items: %w", err)
	}
	return nil
}

func scanWishlist(sc scanner) (*models.Wishlist, error) {
	list := &models.Wishlist{}
	err := sc.Scan(
		&list.ID,
		&list.OwnerID,
		&list.Name,
		&list.Description,
		&list.Image,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return list, nil
}
