package pg

import (
	"context"
	"errors"
	"time"

	"remit-service/internal/domain"
	"remit-service/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuoteRepo persists quotes. Numeric columns travel as text so decimals stay
// exact end to end; repos join an open transaction via the context.
type QuoteRepo struct{ db *DB }

func NewQuoteRepo(db *DB) *QuoteRepo { return &QuoteRepo{db: db} }

const quoteColumns = `
        id, owner_id, source_amount::text, target_currency,
        exchange_rate::text, usd_exchange_rate::text, fee::text,
        target_amount::text, usd_amount::text, expires_at, requested_at, requested`

func (r *QuoteRepo) Save(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	if q.ID == 0 {
		return r.insert(ctx, q)
	}
	return r.update(ctx, q)
}

func (r *QuoteRepo) insert(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	const ins = `
        INSERT INTO quotation(
            owner_id, source_amount, target_currency, exchange_rate,
            usd_exchange_rate, fee, target_amount, usd_amount,
            expires_at, requested_at, requested)
        VALUES ($1, $2::numeric, $3, $4::numeric, $5::numeric, $6::numeric,
                $7::numeric, $8::numeric, $9, $10, $11)
        RETURNING id`
	log := logx.L().With(
		zap.String("repo", "quote"),
		zap.String("operation", "insert"),
		zap.Int64("owner_id", q.OwnerID),
	)
	err := r.db.querier(ctx).QueryRow(ctx, ins,
		q.OwnerID, q.SourceAmount.String(), string(q.TargetCurrency),
		q.ExchangeRate.String(), q.USDExchangeRate.String(), q.Fee.String(),
		q.TargetAmount.String(), q.USDAmount.String(),
		q.ExpiresAt, q.RequestedAt, q.Requested,
	).Scan(&q.ID)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return domain.Quote{}, err
	}
	log.Info("sql.exec_success", zap.Int64("id", q.ID))
	return q, nil
}

func (r *QuoteRepo) update(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	const up = `
        UPDATE quotation
        SET requested_at=$2, requested=$3
        WHERE id=$1`
	tag, err := r.db.querier(ctx).Exec(ctx, up, q.ID, q.RequestedAt, q.Requested)
	if err != nil {
		return domain.Quote{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	return q, nil
}

func (r *QuoteRepo) FindOpenByID(ctx context.Context, id, ownerID int64) (domain.Quote, error) {
	const q = `SELECT ` + quoteColumns + `
        FROM quotation WHERE id=$1 AND owner_id=$2 AND NOT requested`
	out, err := scanQuote(r.db.querier(ctx).QueryRow(ctx, q, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	return out, err
}

func (r *QuoteRepo) TodayAggregate(ctx context.Context, ownerID int64, dayStart, dayEnd time.Time) (domain.DailyUsage, error) {
	const q = `
        SELECT COUNT(*), COALESCE(SUM(usd_amount), 0)::text
        FROM quotation
        WHERE owner_id=$1 AND requested AND requested_at BETWEEN $2 AND $3`
	var usage domain.DailyUsage
	var sum string
	if err := r.db.querier(ctx).QueryRow(ctx, q, ownerID, dayStart, dayEnd).Scan(&usage.Count, &sum); err != nil {
		return domain.DailyUsage{}, err
	}
	parsed, err := decimal.NewFromString(sum)
	if err != nil {
		return domain.DailyUsage{}, err
	}
	usage.USDSum = parsed
	return usage, nil
}

func (r *QuoteRepo) FindAllRequested(ctx context.Context, ownerID int64) ([]domain.Quote, error) {
	const q = `SELECT ` + quoteColumns + `
        FROM quotation WHERE owner_id=$1 AND requested
        ORDER BY requested_at DESC`
	rows, err := r.db.querier(ctx).Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, quote)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (domain.Quote, error) {
	var q domain.Quote
	var currency string
	var source, rate, usdRate, fee, target, usd string
	if err := row.Scan(&q.ID, &q.OwnerID, &source, &currency, &rate, &usdRate,
		&fee, &target, &usd, &q.ExpiresAt, &q.RequestedAt, &q.Requested); err != nil {
		return domain.Quote{}, err
	}
	q.TargetCurrency = domain.Currency(currency)
	var err error
	if q.SourceAmount, err = decimal.NewFromString(source); err != nil {
		return domain.Quote{}, err
	}
	if q.ExchangeRate, err = decimal.NewFromString(rate); err != nil {
		return domain.Quote{}, err
	}
	if q.USDExchangeRate, err = decimal.NewFromString(usdRate); err != nil {
		return domain.Quote{}, err
	}
	if q.Fee, err = decimal.NewFromString(fee); err != nil {
		return domain.Quote{}, err
	}
	if q.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return domain.Quote{}, err
	}
	if q.USDAmount, err = decimal.NewFromString(usd); err != nil {
		return domain.Quote{}, err
	}
	return q, nil
}
