package db

import "context"

// Tx is the commit/rollback surface a domain transaction embeds.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
