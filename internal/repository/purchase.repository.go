package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	"stocksvc/internal/db/models/postgres/public/model"
	"stocksvc/internal/db/models/postgres/public/table"
)

type PurchaseRepository interface {
	// GetLatest returns the recorded amount for a symbol, 0 when none exists.
	GetLatest(ctx context.Context, symbol string) (int64, error)
	// Upsert inserts or replaces the single purchase row for a symbol.
	Upsert(ctx context.Context, symbol string, amount int64) (*model.StockPurchase, error)
}

type purchaseRepositoryHandler struct {
	Db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) PurchaseRepository {
	return purchaseRepositoryHandler{Db: db}
}

func (h purchaseRepositoryHandler) GetLatest(ctx context.Context, symbol string) (int64, error) {
	query := table.StockPurchase.
		SELECT(table.StockPurchase.AllColumns).
		WHERE(table.StockPurchase.Symbol.EQ(postgres.String(symbol)))

	out := model.StockPurchase{}
	err := query.QueryContext(ctx, h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get purchase for %s: %w", symbol, err)
	}

	return out.Amount, nil
}

func (h purchaseRepositoryHandler) Upsert(ctx context.Context, symbol string, amount int64) (*model.StockPurchase, error) {
	row := model.StockPurchase{
		Symbol:    symbol,
		Amount:    amount,
		UpdatedAt: time.Now().UTC(),
	}

	query := table.StockPurchase.
		INSERT(table.StockPurchase.AllColumns).
		MODEL(row).
		ON_CONFLICT(table.StockPurchase.Symbol).DO_UPDATE(
		postgres.SET(
			table.StockPurchase.Amount.SET(table.StockPurchase.EXCLUDED.Amount),
			table.StockPurchase.UpdatedAt.SET(table.StockPurchase.EXCLUDED.UpdatedAt),
		),
	).RETURNING(table.StockPurchase.AllColumns)

	out := model.StockPurchase{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert purchase for %s: %w", symbol, err)
	}

	return &out, nil
}
