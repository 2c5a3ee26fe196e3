// File: internal/store/postgres/transaction_helpers.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// TransactionManager provides comprehensive transaction lifecycle
// management for the store's per-candidate write transactions.
type TransactionManager struct {
	db          *sqlx.DB
	activeCount int64
	mu          sync.RWMutex
	leakTracker map[string]*TransactionInfo
}

// TransactionInfo tracks transaction metadata for leak detection
type TransactionInfo struct {
	ID        string
	StartTime time.Time
	Stack     string
	Context   string
}

// NewTransactionManager creates a new transaction manager with leak detection
func NewTransactionManager(db *sqlx.DB) *TransactionManager {
	return &TransactionManager{
		db:          db,
		leakTracker: make(map[string]*TransactionInfo),
	}
}

// SafeTransaction executes a function within a transaction with comprehensive cleanup
func (tm *TransactionManager) SafeTransaction(ctx context.Context, opts *sql.TxOptions, operation string, fn func(*sqlx.Tx) error) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
	}

	tx, err := tm.beginWithTracking(ctx, opts, operation)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", operation, err)
	}

	var txErr error
	defer func() {
		if err := tm.cleanupTransaction(tx, txErr, operation); err != nil {
			log.Printf("ERROR: Transaction cleanup failed for %s: %v", operation, err)
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- fn(tx)
	}()

	select {
	case txErr = <-done:
		if txErr != nil {
			return fmt.Errorf("transaction operation %s failed: %w", operation, txErr)
		}
	case <-ctx.Done():
		txErr = ctx.Err()
		return fmt.Errorf("transaction operation %s cancelled: %w", operation, ctx.Err())
	}

	if err := tx.Commit(); err != nil {
		txErr = err
		return fmt.Errorf("failed to commit transaction for %s: %w", operation, err)
	}

	return nil
}

// beginWithTracking starts a transaction and tracks it for leak detection
func (tm *TransactionManager) beginWithTracking(ctx context.Context, opts *sql.TxOptions, operation string) (*sqlx.Tx, error) {
	tx, err := tm.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}

	txID := fmt.Sprintf("%p", tx)
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.activeCount++
	tm.leakTracker[txID] = &TransactionInfo{
		ID:        txID,
		StartTime: time.Now(),
		Stack:     getCallerStack(),
		Context:   operation,
	}

	log.Printf("TRANSACTION_START: %s [ID: %s] [Active: %d]", operation, txID, tm.activeCount)
	return tx, nil
}

// cleanupTransaction handles transaction cleanup with proper rollback/commit
func (tm *TransactionManager) cleanupTransaction(tx *sqlx.Tx, opErr error, operation string) error {
	if tx == nil {
		return nil
	}

	txID := fmt.Sprintf("%p", tx)

	tm.mu.Lock()
	defer tm.mu.Unlock()

	info, exists := tm.leakTracker[txID]
	if exists {
		duration := time.Since(info.StartTime)
		delete(tm.leakTracker, txID)
		tm.activeCount--

		log.Printf("TRANSACTION_CLEANUP: %s [ID: %s] [Duration: %v] [Active: %d]", operation, txID, duration, tm.activeCount)

		if duration > 5*time.Minute {
			log.Printf("WARNING: Long-running transaction detected: %s [Duration: %v]", operation, duration)
		}
	}

	if opErr != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			if strings.Contains(rollbackErr.Error(), "transaction has already been committed or rolled back") {
				log.Printf("TRANSACTION_AUTO_ROLLBACK: %s [ID: %s] already rolled back by PostgreSQL due to: %v", operation, txID, opErr)
			} else {
				log.Printf("ERROR: Transaction rollback failed for %s: %v (original error: %v)", operation, rollbackErr, opErr)
				return fmt.Errorf("rollback failed: %w (original error: %v)", rollbackErr, opErr)
			}
		} else {
			log.Printf("TRANSACTION_ROLLBACK: %s [ID: %s] due to error: %v", operation, txID, opErr)
		}
	}

	return nil
}

// GetActiveTransactionCount returns the current number of active transactions
func (tm *TransactionManager) GetActiveTransactionCount() int64 {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.activeCount
}

// DetectLeaks identifies potential transaction leaks for an ad-hoc
// diagnostic sweep; nothing schedules it automatically.
func (tm *TransactionManager) DetectLeaks(maxDuration time.Duration) []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	var leaks []string
	now := time.Now()

	for _, info := range tm.leakTracker {
		if now.Sub(info.StartTime) > maxDuration {
			leaks = append(leaks, fmt.Sprintf(
				"LEAK: Transaction %s [Context: %s] [Duration: %v] [Stack: %s]",
				info.ID, info.Context, now.Sub(info.StartTime), info.Stack,
			))
		}
	}

	return leaks
}

// getCallerStack returns a stack trace for debugging
func getCallerStack() string {
	buf := make([]byte, 1024)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// WithTimeout creates a context with timeout for database operations
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// DefaultTimeout for database operations
const DefaultTimeout = 30 * time.Second
