package db

import (
	"context"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
)

// Lookups returns the values of one category in display order.
func (d *DB) Lookups(ctx context.Context, category entity.LookupCategory) ([]entity.Lookup, error) {
	ctx, span := d.startSpan(ctx, "Lookups")
	defer func() { d.endSpan(span, nil) }()

	rows, err := d.pool.Query(ctx, `
		SELECT id, category, name, sort_key
		FROM branding_lookups
		WHERE category = $1
		ORDER BY sort_key, id`, category)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var lookups []entity.Lookup
	for rows.Next() {
		var l entity.Lookup
		if err := rows.Scan(&l.ID, &l.Category, &l.Name, &l.SortKey); err != nil {
			return nil, mapError(err)
		}
		lookups = append(lookups, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return lookups, nil
}

// LookupExists reports whether the value exists in the category.
func (d *DB) LookupExists(ctx context.Context, category entity.LookupCategory, id int64) (bool, error) {
	ctx, span := d.startSpan(ctx, "LookupExists")
	defer func() { d.endSpan(span, nil) }()

	var exists bool
	err := d.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM branding_lookups WHERE category = $1 AND id = $2
		)`, category, id).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}

	return exists, nil
}
