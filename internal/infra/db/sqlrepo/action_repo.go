package sqlrepo

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/rcis/internal/domain/actions"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

type ActionRepository struct {
	s *Store
}

const actionColumns = `id, defect_type, description, responsible_person, target_date,
       status, effectiveness_review, created_at, updated_at`

func scanAction(row rowScanner) (*actions.Action, error) {
	var a actions.Action
	if err := row.Scan(
		&a.ID, &a.DefectType, &a.Description, &a.ResponsiblePerson, &a.TargetDate,
		&a.Status, &a.EffectivenessReview, timestamp{&a.CreatedAt}, timestamp{&a.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActionRepository) List(ctx context.Context) ([]*actions.Action, error) {
	rows, err := r.s.query(ctx, `SELECT `+actionColumns+` FROM actions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	out := []*actions.Action{}
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActionRepository) Get(ctx context.Context, id actions.ID) (*actions.Action, error) {
	a, err := scanAction(r.s.queryRow(ctx, `SELECT `+actionColumns+` FROM actions WHERE id=?`, string(id)))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *ActionRepository) Insert(ctx context.Context, in *actions.Action) (*actions.Action, error) {
	a := *in
	if a.ID == "" {
		a.ID = actions.ID(r.s.newID())
	}
	a.CreatedAt = r.s.stamp()
	a.UpdatedAt = a.CreatedAt

	const q = `
INSERT INTO actions
(id, defect_type, description, responsible_person, target_date,
 status, effectiveness_review, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?)`
	if _, err := r.s.exec(ctx, q,
		string(a.ID), a.DefectType, a.Description, a.ResponsiblePerson, a.TargetDate,
		a.Status, a.EffectivenessReview, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert action: %w", err)
	}
	return &a, nil
}

// Update merges the patch and stamps UpdatedAt.
func (r *ActionRepository) Update(ctx context.Context, id actions.ID, p actions.Patch) (*actions.Action, error) {
	a, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(a)
	a.UpdatedAt = r.s.stamp()

	const q = `
UPDATE actions SET
 defect_type=?, description=?, responsible_person=?, target_date=?,
 status=?, effectiveness_review=?, updated_at=?
WHERE id=?`
	if _, err := r.s.exec(ctx, q,
		a.DefectType, a.Description, a.ResponsiblePerson, a.TargetDate,
		a.Status, a.EffectivenessReview, a.UpdatedAt,
		string(id),
	); err != nil {
		return nil, fmt.Errorf("update action %s: %w", id, err)
	}
	return a, nil
}

func (r *ActionRepository) Delete(ctx context.Context, id actions.ID) (bool, error) {
	return r.s.deleteByID(ctx, records.Actions, string(id))
}

func (r *ActionRepository) Count(ctx context.Context) (int, error) {
	return r.s.Count(ctx, records.Actions)
}
