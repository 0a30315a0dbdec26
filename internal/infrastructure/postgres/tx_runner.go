package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/application/fulfillment"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/receiving"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de los tres casos de uso.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ receiving.TxRunner = (*TxRunner)(nil)
var _ fulfillment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los repos
// que recibe el callback están atados a la tx: los SELECT FOR UPDATE de los
// registros de inventario serializan las mutaciones concurrentes sobre la
// misma clave (ítem, ubicación), y un error en el callback revierte todo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del libro de inventario y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewInventoryRecordRepository(tx),
		NewStockMovementRepository(tx),
		NewStorageLocationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia una transacción con los repos de recepción (aviso de
// embarque + orden de compra, además del libro).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
	noticeRepo repository.ShipmentNoticeRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewInventoryRecordRepository(tx),
		NewStockMovementRepository(tx),
		NewStorageLocationRepository(tx),
		NewShipmentNoticeRepository(tx),
		NewPurchaseOrderRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFulfillment inicia una transacción con los repos de despacho (pedido de
// venta + asignaciones, además del libro).
func (r *TxRunner) RunFulfillment(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
	orderRepo repository.SalesOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewInventoryRecordRepository(tx),
		NewStockMovementRepository(tx),
		NewStorageLocationRepository(tx),
		NewSalesOrderRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
