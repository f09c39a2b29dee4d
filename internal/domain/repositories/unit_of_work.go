package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic multi-write operations.
// The investment insert and the funding-raised recomputation must commit
// or roll back together.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
