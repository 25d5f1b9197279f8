package postgres

import (
	"context"

	"payment-router/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const addressColumns = `address_id, merchant_id, customer_id, line1, line2, city, state, zip, country,
	first_name, last_name, created_at, modified_at`

// AddressRepo implements ports.AddressRepository.
type AddressRepo struct {
	pool Pool
}

// NewAddressRepo creates a new AddressRepo.
func NewAddressRepo(pool Pool) *AddressRepo {
	return &AddressRepo{pool: pool}
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	a := &domain.Address{}
	err := row.Scan(
		&a.AddressID, &a.MerchantID, &a.CustomerID, &a.Line1, &a.Line2, &a.City, &a.State, &a.Zip, &a.Country,
		&a.FirstName, &a.LastName, &a.CreatedAt, &a.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AddressRepo) Insert(ctx context.Context, a *domain.Address) (*domain.Address, error) {
	query := `INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + addressColumns

	out, err := scanAddress(r.pool.QueryRow(ctx, query,
		a.AddressID, a.MerchantID, a.CustomerID, a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country,
		a.FirstName, a.LastName,
	))
	if err != nil {
		return nil, translate(err, "insert address %s", a.AddressID)
	}
	return out, nil
}

func (r *AddressRepo) FindByID(ctx context.Context, addressID string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE address_id = $1`

	out, err := scanAddress(r.pool.QueryRow(ctx, query, addressID))
	if err != nil {
		return nil, translate(err, "address %s", addressID)
	}
	return out, nil
}

// Update replaces the supplied lines and keeps the rest.
func (r *AddressRepo) Update(ctx context.Context, a *domain.Address, upd domain.AddressUpdate) (*domain.Address, error) {
	query := `UPDATE addresses SET
			line1 = COALESCE($1, line1), line2 = COALESCE($2, line2), city = COALESCE($3, city),
			state = COALESCE($4, state), zip = COALESCE($5, zip), country = COALESCE($6, country),
			first_name = COALESCE($7, first_name), last_name = COALESCE($8, last_name),
			modified_at = NOW()
		WHERE address_id = $9
		RETURNING ` + addressColumns

	out, err := scanAddress(r.pool.QueryRow(ctx, query,
		upd.Line1, upd.Line2, upd.City, upd.State, upd.Zip, upd.Country, upd.FirstName, upd.LastName,
		a.AddressID,
	))
	if err != nil {
		return nil, translate(err, "update address %s", a.AddressID)
	}
	return out, nil
}
