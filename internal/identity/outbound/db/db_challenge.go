package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
)

// CreateChallenge inserts the challenge. IDs are generated by the caller.
func (d *DB) CreateChallenge(ctx context.Context, ch *entity.OtpChallenge) error {
	ctx, span := d.startSpan(ctx, "CreateChallenge")

	_, err := d.pool.Exec(ctx, `
		INSERT INTO otp_challenges (id, user_id, code_hash, attempts, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ch.ID, ch.UserID, ch.CodeHash, ch.Attempts, ch.Status, ch.CreatedAt,
	)
	err = mapError(err)
	d.endSpan(span, err)

	return err
}

// PendingChallengeHashes returns the code hashes of every pending
// challenge in the system, used to avoid issuing a duplicate code.
func (d *DB) PendingChallengeHashes(ctx context.Context) ([]string, error) {
	ctx, span := d.startSpan(ctx, "PendingChallengeHashes")
	defer func() { d.endSpan(span, nil) }()

	rows, err := d.pool.Query(ctx, `
		SELECT code_hash FROM otp_challenges WHERE status = $1`,
		entity.ChallengePending)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, mapError(err)
		}
		hashes = append(hashes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return hashes, nil
}

// NewestPendingChallenge returns the most recently issued pending
// challenge for the user.
func (d *DB) NewestPendingChallenge(ctx context.Context, userID int64) (*entity.OtpChallenge, error) {
	ctx, span := d.startSpan(ctx, "NewestPendingChallenge")

	var ch entity.OtpChallenge
	err := d.pool.QueryRow(ctx, `
		SELECT id, user_id, code_hash, attempts, status, created_at
		FROM otp_challenges
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		userID, entity.ChallengePending,
	).Scan(&ch.ID, &ch.UserID, &ch.CodeHash, &ch.Attempts, &ch.Status, &ch.CreatedAt)
	err = mapError(err)
	d.endSpan(span, err)
	if err != nil {
		return nil, err
	}

	return &ch, nil
}

// UpdateChallengeStatus moves the challenge to status.
func (d *DB) UpdateChallengeStatus(ctx context.Context, id int64, status entity.ChallengeStatus) error {
	ctx, span := d.startSpan(ctx, "UpdateChallengeStatus")

	tag, err := d.pool.Exec(ctx,
		`UPDATE otp_challenges SET status = $2 WHERE id = $1`, id, status)
	err = mapError(err)
	if err == nil && tag.RowsAffected() == 0 {
		err = mapError(pgx.ErrNoRows)
	}
	d.endSpan(span, err)

	return err
}

// IncrementChallengeAttempts bumps the failure counter by one.
func (d *DB) IncrementChallengeAttempts(ctx context.Context, id int64) error {
	ctx, span := d.startSpan(ctx, "IncrementChallengeAttempts")

	tag, err := d.pool.Exec(ctx,
		`UPDATE otp_challenges SET attempts = attempts + 1 WHERE id = $1`, id)
	err = mapError(err)
	if err == nil && tag.RowsAffected() == 0 {
		err = mapError(pgx.ErrNoRows)
	}
	d.endSpan(span, err)

	return err
}
