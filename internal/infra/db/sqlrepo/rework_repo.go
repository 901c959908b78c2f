package sqlrepo

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

type ReworkRepository struct {
	s *Store
}

const reworkColumns = `id, event_date, station, defect_type, quantity, shift,
       operator_group, material_batch, severity, suspected_root_cause, remarks, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRework(row rowScanner) (*rework.Event, error) {
	var e rework.Event
	if err := row.Scan(
		&e.ID, &e.Date, &e.Station, &e.DefectType, &e.Quantity, &e.Shift,
		&e.OperatorGroup, &e.MaterialBatch, &e.Severity, &e.SuspectedRootCause, &e.Remarks,
		timestamp{&e.CreatedAt},
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns every event, newest created first.
func (r *ReworkRepository) List(ctx context.Context) ([]*rework.Event, error) {
	rows, err := r.s.query(ctx, `SELECT `+reworkColumns+` FROM reworks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reworks: %w", err)
	}
	defer rows.Close()

	out := []*rework.Event{}
	for rows.Next() {
		e, err := scanRework(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ReworkRepository) Get(ctx context.Context, id rework.ID) (*rework.Event, error) {
	row := r.s.queryRow(ctx, `SELECT `+reworkColumns+` FROM reworks WHERE id=?`, string(id))
	e, err := scanRework(row)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// Insert assigns the id and creation time and returns the stored copy.
func (r *ReworkRepository) Insert(ctx context.Context, in *rework.Event) (*rework.Event, error) {
	e := *in
	if e.ID == "" {
		e.ID = rework.ID(r.s.newID())
	}
	e.CreatedAt = r.s.stamp()

	const q = `
INSERT INTO reworks
(id, event_date, station, defect_type, quantity, shift,
 operator_group, material_batch, severity, suspected_root_cause, remarks, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	if _, err := r.s.exec(ctx, q,
		string(e.ID), e.Date, e.Station, e.DefectType, e.Quantity, e.Shift,
		e.OperatorGroup, e.MaterialBatch, e.Severity, e.SuspectedRootCause, e.Remarks, e.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert rework: %w", err)
	}
	return &e, nil
}

// Update applies a partial change and returns the merged record.
func (r *ReworkRepository) Update(ctx context.Context, id rework.ID, p rework.Patch) (*rework.Event, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(e)

	const q = `
UPDATE reworks SET
 event_date=?, station=?, defect_type=?, quantity=?, shift=?,
 operator_group=?, material_batch=?, severity=?, suspected_root_cause=?, remarks=?
WHERE id=?`
	if _, err := r.s.exec(ctx, q,
		e.Date, e.Station, e.DefectType, e.Quantity, e.Shift,
		e.OperatorGroup, e.MaterialBatch, e.Severity, e.SuspectedRootCause, e.Remarks,
		string(id),
	); err != nil {
		return nil, fmt.Errorf("update rework %s: %w", id, err)
	}
	return e, nil
}

func (r *ReworkRepository) Delete(ctx context.Context, id rework.ID) (bool, error) {
	return r.s.deleteByID(ctx, records.Reworks, string(id))
}

func (r *ReworkRepository) Count(ctx context.Context) (int, error) {
	return r.s.Count(ctx, records.Reworks)
}
