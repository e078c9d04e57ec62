// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dronedelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RunRepoFactory provides access to the run repository within a transaction.
	RunRepoFactory interface {
		RunRepository() ports.RunRepository
	}

	// RunUoW manages transactions for run operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   runRepo := uow.RunRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	RunUoW interface {
		TxManager
		RunRepoFactory
	}

	// RunUoWFactory creates new run unit of work instances.
	RunUoWFactory interface {
		Create() RunUoW
	}
)
