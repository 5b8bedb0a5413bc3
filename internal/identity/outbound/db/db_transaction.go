package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// LockoutUser removes the exhausted challenge and deactivates the account
// atomically, so a crash cannot leave the user active with no challenge.
func (d *DB) LockoutUser(ctx context.Context, challengeID, userID int64) error {
	ctx, span := d.startSpan(ctx, "LockoutUser")

	err := d.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM otp_challenges WHERE id = $1`, challengeID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		return nil
	})
	err = mapError(err)
	d.endSpan(span, err)

	return err
}

func (d *DB) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to roll back transaction", "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
