package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithinTx runs fn in a READ COMMITTED transaction. Rows read through the
// Lock* methods are held with SELECT ... FOR UPDATE until commit or rollback.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repo_interfaces.Tx) error) (err error) {
	sqlTx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.Error("unit of work begin tx failed", err, nil)
		return fmt.Errorf("begin transaction: %w: %v", commons.ErrPersistence, err)
	}
	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if err = fn(ctx, &pgTx{q: sqlTx}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		logger.Error("unit of work commit failed", err, nil)
		return fmt.Errorf("commit transaction: %w: %v", commons.ErrPersistence, err)
	}
	return nil
}

// pgTx implements repo_interfaces.Tx over one *sql.Tx.
type pgTx struct {
	q queryer
}
