package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
)

const requestColumns = `id, request_type_id, outlet_name, outlet_code, address_line1,
	address_line2, city, territory_id, channel_id, is_chain, urgency, status_id,
	stage_id, contact_name, contact_number, metadata, signed_off_at, created_by,
	created_at, updated_at`

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var r entity.Request
	err := row.Scan(
		&r.ID, &r.RequestTypeID, &r.OutletName, &r.OutletCode, &r.AddressLine1,
		&r.AddressLine2, &r.City, &r.TerritoryID, &r.ChannelID, &r.IsChain,
		&r.Urgency, &r.StatusID, &r.StageID, &r.ContactName, &r.ContactNumber,
		&r.Metadata, &r.SignedOffAt, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &r, nil
}

// CreateRequest inserts the request. IDs are generated by the caller.
func (d *DB) CreateRequest(ctx context.Context, req *entity.Request) error {
	ctx, span := d.startSpan(ctx, "CreateRequest")

	_, err := d.pool.Exec(ctx, `
		INSERT INTO branding_requests (id, request_type_id, outlet_name, outlet_code,
			address_line1, address_line2, city, territory_id, channel_id, is_chain,
			urgency, status_id, stage_id, contact_name, contact_number, metadata,
			signed_off_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20)`,
		req.ID, req.RequestTypeID, req.OutletName, req.OutletCode, req.AddressLine1,
		req.AddressLine2, req.City, req.TerritoryID, req.ChannelID, req.IsChain,
		req.Urgency, req.StatusID, req.StageID, req.ContactName, req.ContactNumber,
		req.Metadata, req.SignedOffAt, req.CreatedBy, req.CreatedAt, req.UpdatedAt,
	)
	err = mapError(err)
	d.endSpan(span, err)

	return err
}

// RequestByID fetches one request by primary key.
func (d *DB) RequestByID(ctx context.Context, id int64) (*entity.Request, error) {
	ctx, span := d.startSpan(ctx, "RequestByID")
	req, err := scanRequest(d.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM branding_requests WHERE id = $1`, id))
	d.endSpan(span, err)

	return req, err
}

// Requests returns one page, newest first, optionally filtered by status.
func (d *DB) Requests(ctx context.Context, statusID *int64, limit, offset int) ([]entity.Request, int64, error) {
	ctx, span := d.startSpan(ctx, "Requests")
	defer func() { d.endSpan(span, nil) }()

	var total int64
	err := d.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM branding_requests
		WHERE ($1::bigint IS NULL OR status_id = $1)`, statusID).Scan(&total)
	if err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM branding_requests
		WHERE ($1::bigint IS NULL OR status_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, statusID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	requests := make([]entity.Request, 0, limit)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err)
	}

	return requests, total, nil
}

// UpdateRequest persists every mutable column.
func (d *DB) UpdateRequest(ctx context.Context, req *entity.Request) error {
	ctx, span := d.startSpan(ctx, "UpdateRequest")

	tag, err := d.pool.Exec(ctx, `
		UPDATE branding_requests
		SET request_type_id = $2, outlet_name = $3, outlet_code = $4,
			address_line1 = $5, address_line2 = $6, city = $7, territory_id = $8,
			channel_id = $9, is_chain = $10, urgency = $11, status_id = $12,
			stage_id = $13, contact_name = $14, contact_number = $15,
			metadata = $16, signed_off_at = $17, updated_at = $18
		WHERE id = $1`,
		req.ID, req.RequestTypeID, req.OutletName, req.OutletCode,
		req.AddressLine1, req.AddressLine2, req.City, req.TerritoryID,
		req.ChannelID, req.IsChain, req.Urgency, req.StatusID, req.StageID,
		req.ContactName, req.ContactNumber, req.Metadata, req.SignedOffAt,
		req.UpdatedAt,
	)
	err = mapError(err)
	if err == nil && tag.RowsAffected() == 0 {
		err = mapError(pgx.ErrNoRows)
	}
	d.endSpan(span, err)

	return err
}

// DeleteRequest removes the request; elements cascade at the schema level.
func (d *DB) DeleteRequest(ctx context.Context, id int64) error {
	ctx, span := d.startSpan(ctx, "DeleteRequest")

	tag, err := d.pool.Exec(ctx, `DELETE FROM branding_requests WHERE id = $1`, id)
	err = mapError(err)
	if err == nil && tag.RowsAffected() == 0 {
		err = mapError(pgx.ErrNoRows)
	}
	d.endSpan(span, err)

	return err
}
