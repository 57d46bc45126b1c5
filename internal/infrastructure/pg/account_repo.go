package pg

import (
	"context"
	"errors"

	"remit-service/internal/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepo is the account directory. Signup and credentials live in a
// separate system; this service only resolves accounts and seeds them in
// tests and dev setups.
type AccountRepo struct{ db *DB }

func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	const q = `SELECT id, user_id, name, tier FROM account WHERE id=$1`
	var out domain.Account
	var tier string
	err := r.db.querier(ctx).QueryRow(ctx, q, id).Scan(&out.ID, &out.UserID, &out.Name, &tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, domain.ErrUnknownUser
	}
	if err != nil {
		return domain.Account{}, err
	}
	out.Tier = domain.Tier(tier)
	return out, nil
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	const ins = `
        INSERT INTO account(user_id, name, tier)
        VALUES ($1, $2, $3)
        RETURNING id`
	if err := r.db.querier(ctx).QueryRow(ctx, ins, a.UserID, a.Name, string(a.Tier)).Scan(&a.ID); err != nil {
		return domain.Account{}, err
	}
	return a, nil
}
