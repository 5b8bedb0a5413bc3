package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
)

const userColumns = `id, email, role, first_name, last_name, vendor_id, company,
	contact_number, password_hash, is_temp_password, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Role, &u.FirstName, &u.LastName, &u.VendorID,
		&u.Company, &u.ContactNumber, &u.PasswordHash, &u.IsTempPassword,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &u, nil
}

// UserByEmail fetches one user by email.
func (d *DB) UserByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, span := d.startSpan(ctx, "UserByEmail")
	user, err := scanUser(d.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	d.endSpan(span, err)

	return user, err
}

// UserByID fetches one user by primary key.
func (d *DB) UserByID(ctx context.Context, id int64) (*entity.User, error) {
	ctx, span := d.startSpan(ctx, "UserByID")
	user, err := scanUser(d.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	d.endSpan(span, err)

	return user, err
}

// CreateUser inserts the user. IDs are generated by the caller.
func (d *DB) CreateUser(ctx context.Context, user *entity.User) error {
	ctx, span := d.startSpan(ctx, "CreateUser")

	_, err := d.pool.Exec(ctx, `
		INSERT INTO users (id, email, role, first_name, last_name, vendor_id, company,
			contact_number, password_hash, is_temp_password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		user.ID, user.Email, user.Role, user.FirstName, user.LastName, user.VendorID,
		user.Company, user.ContactNumber, user.PasswordHash, user.IsTempPassword,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	err = mapError(err)
	d.endSpan(span, err)

	return err
}

// Users returns one page ordered by creation time plus the total count.
func (d *DB) Users(ctx context.Context, limit, offset int) ([]entity.User, int64, error) {
	ctx, span := d.startSpan(ctx, "Users")
	defer func() { d.endSpan(span, nil) }()

	var total int64
	if err := d.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err)
	}

	return users, total, nil
}

// UpdateUser persists every mutable column.
func (d *DB) UpdateUser(ctx context.Context, user *entity.User) error {
	ctx, span := d.startSpan(ctx, "UpdateUser")

	tag, err := d.pool.Exec(ctx, `
		UPDATE users
		SET role = $2, first_name = $3, last_name = $4, vendor_id = $5,
			company = $6, contact_number = $7, password_hash = $8,
			is_temp_password = $9, is_active = $10, updated_at = $11
		WHERE id = $1`,
		user.ID, user.Role, user.FirstName, user.LastName, user.VendorID,
		user.Company, user.ContactNumber, user.PasswordHash, user.IsTempPassword,
		user.IsActive, user.UpdatedAt,
	)
	err = mapError(err)
	if err == nil && tag.RowsAffected() == 0 {
		err = mapError(pgx.ErrNoRows)
	}
	d.endSpan(span, err)

	return err
}
