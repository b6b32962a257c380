package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aronpal/accountd/internal/database"
	"github.com/aronpal/accountd/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const addressColumns = `id, user_id, house, street, landmark, area, district, state, country, pincode, created_at, updated_at`

type AddressRepository struct {
	db *database.DB
}

func NewAddressRepository(db *database.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func scanAddressRow(scanner rowScanner) (*models.Address, error) {
	var addr models.Address

	err := scanner.Scan(
		&addr.ID, &addr.UserID, &addr.House, &addr.Street, &addr.Landmark,
		&addr.Area, &addr.District, &addr.State, &addr.Country, &addr.Pincode,
		&addr.CreatedAt, &addr.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &addr, nil
}

func scanAddressRows(rows pgx.Rows) ([]*models.Address, error) {
	defer rows.Close()

	addresses := make([]*models.Address, 0)

	for rows.Next() {
		addr, err := scanAddressRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating address rows: %w", err)
	}

	return addresses, nil
}

func (r *AddressRepository) Create(ctx context.Context, addr *models.Address) (*models.Address, error) {
	addr.ID = uuid.New().String()

	now := time.Now()
	addr.CreatedAt = now
	addr.UpdatedAt = now

	query := `
		INSERT INTO addresses (id, user_id, house, street, landmark, area, district, state, country, pincode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + addressColumns

	return scanAddressRow(r.db.Pool.QueryRow(ctx, query,
		addr.ID, addr.UserID, addr.House, addr.Street, addr.Landmark,
		addr.Area, addr.District, addr.State, addr.Country, addr.Pincode,
		addr.CreatedAt, addr.UpdatedAt,
	))
}

func (r *AddressRepository) GetByID(ctx context.Context, id string) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	return scanAddressRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *AddressRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}

	return scanAddressRows(rows)
}

func (r *AddressRepository) ListAll(ctx context.Context) ([]*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}

	return scanAddressRows(rows)
}

// Update replaces the postal fields. The owner is never changed.
func (r *AddressRepository) Update(ctx context.Context, id string, addr *models.Address) (*models.Address, error) {
	addr.UpdatedAt = time.Now()

	query := `
		UPDATE addresses SET house = $1, street = $2, landmark = $3, area = $4, district = $5,
			state = $6, country = $7, pincode = $8, updated_at = $9
		WHERE id = $10
		RETURNING ` + addressColumns

	return scanAddressRow(r.db.Pool.QueryRow(ctx, query,
		addr.House, addr.Street, addr.Landmark, addr.Area, addr.District,
		addr.State, addr.Country, addr.Pincode, addr.UpdatedAt, id,
	))
}

func (r *AddressRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM addresses WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check address existence: %w", err)
	}
	return exists, nil
}
