package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	GetPost(ctx context.Context, postID int64) (Post, error)
	ListPostAttachments(ctx context.Context, postID int64) ([]Attachment, error)
	GetPostForRender(ctx context.Context, postID int64) (PostForRender, error)
	CreatePostTx(ctx context.Context, arg CreatePostTxParams) (PostForRender, error)
	Shutdown()
}

type SQLStore struct {
	*Queries
	connPool *pgxpool.Pool
}

func NewStore(connPool *pgxpool.Pool) Store {
	return &SQLStore{
		connPool: connPool,
		Queries:  New(connPool),
	}
}

// Shutdown closes the connection pool.
func (s *SQLStore) Shutdown() {
	s.connPool.Close()
}

// execTx runs the fn inside the transaction with the options,
// rolling back when the fn returns an error.
func (s *SQLStore) execTx(ctx context.Context, opts pgx.TxOptions, fn func(*Queries) error) error {
	tx, err := s.connPool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
