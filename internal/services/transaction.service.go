package services

import (
	"context"
	"pillar2/internal/database"
	"pillar2/internal/logger"

	"gorm.io/gorm"
)

type transactionKey struct{}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside one transaction. Repositories called with the context fn receives
// join that transaction through GetTransaction.
func (s *TransactionService) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	log := s.log.Function("Execute")

	if _, ok := GetTransaction(ctx); ok {
		return fn(ctx)
	}

	tx := s.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}

	if err := fn(context.WithValue(ctx, transactionKey{}, tx)); err != nil {
		_ = tx.AddError(err)
		database.TXDefer(tx, log)
		return err
	}

	database.TXDefer(tx, log)
	return tx.Error
}

func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}
