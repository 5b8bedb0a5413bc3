package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
)

// CreateElement inserts the element. IDs are generated by the caller.
func (d *DB) CreateElement(ctx context.Context, el *entity.Element) error {
	ctx, span := d.startSpan(ctx, "CreateElement")

	_, err := d.pool.Exec(ctx, `
		INSERT INTO branding_elements (id, request_id, element_type_id, width, height,
			quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		el.ID, el.RequestID, el.ElementTypeID, el.Width, el.Height, el.Quantity, el.UnitCost,
	)
	err = mapError(err)
	d.endSpan(span, err)

	return err
}

// ElementsByRequest returns every element attached to the request.
func (d *DB) ElementsByRequest(ctx context.Context, requestID int64) ([]entity.Element, error) {
	ctx, span := d.startSpan(ctx, "ElementsByRequest")
	defer func() { d.endSpan(span, nil) }()

	rows, err := d.pool.Query(ctx, `
		SELECT id, request_id, element_type_id, width, height, quantity, unit_cost
		FROM branding_elements
		WHERE request_id = $1
		ORDER BY id`, requestID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var elements []entity.Element
	for rows.Next() {
		var el entity.Element
		err := rows.Scan(&el.ID, &el.RequestID, &el.ElementTypeID, &el.Width,
			&el.Height, &el.Quantity, &el.UnitCost)
		if err != nil {
			return nil, mapError(err)
		}
		elements = append(elements, el)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return elements, nil
}

// DeleteElement removes one element scoped to its request.
func (d *DB) DeleteElement(ctx context.Context, requestID, elementID int64) error {
	ctx, span := d.startSpan(ctx, "DeleteElement")

	tag, err := d.pool.Exec(ctx,
		`DELETE FROM branding_elements WHERE id = $1 AND request_id = $2`,
		elementID, requestID)
	err = mapError(err)
	if err == nil && tag.RowsAffected() == 0 {
		err = mapError(pgx.ErrNoRows)
	}
	d.endSpan(span, err)

	return err
}
