package sqlrepo

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/rcis/internal/domain/knowledge"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

type KnowledgeRepository struct {
	s *Store
}

const knowledgeColumns = `id, problem, root_cause, corrective_action, before_results, after_results,
       station, defect_type, date_closed, image_url, created_at`

func scanKnowledge(row rowScanner) (*knowledge.Entry, error) {
	var e knowledge.Entry
	if err := row.Scan(
		&e.ID, &e.Problem, &e.RootCause, &e.CorrectiveAction, &e.BeforeResults, &e.AfterResults,
		&e.Station, &e.DefectType, &e.DateClosed, &e.Image, timestamp{&e.CreatedAt},
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *KnowledgeRepository) List(ctx context.Context) ([]*knowledge.Entry, error) {
	rows, err := r.s.query(ctx, `SELECT `+knowledgeColumns+` FROM knowledge ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	defer rows.Close()

	out := []*knowledge.Entry{}
	for rows.Next() {
		e, err := scanKnowledge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *KnowledgeRepository) Get(ctx context.Context, id knowledge.ID) (*knowledge.Entry, error) {
	e, err := scanKnowledge(r.s.queryRow(ctx, `SELECT `+knowledgeColumns+` FROM knowledge WHERE id=?`, string(id)))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *KnowledgeRepository) Insert(ctx context.Context, in *knowledge.Entry) (*knowledge.Entry, error) {
	e := *in
	if e.ID == "" {
		e.ID = knowledge.ID(r.s.newID())
	}
	e.CreatedAt = r.s.stamp()

	const q = `
INSERT INTO knowledge
(id, problem, root_cause, corrective_action, before_results, after_results,
 station, defect_type, date_closed, image_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	if _, err := r.s.exec(ctx, q,
		string(e.ID), e.Problem, e.RootCause, e.CorrectiveAction, e.BeforeResults, e.AfterResults,
		e.Station, e.DefectType, e.DateClosed, e.Image, e.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert knowledge: %w", err)
	}
	return &e, nil
}

func (r *KnowledgeRepository) Update(ctx context.Context, id knowledge.ID, p knowledge.Patch) (*knowledge.Entry, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(e)

	const q = `
UPDATE knowledge SET
 problem=?, root_cause=?, corrective_action=?, before_results=?, after_results=?,
 station=?, defect_type=?, date_closed=?, image_url=?
WHERE id=?`
	if _, err := r.s.exec(ctx, q,
		e.Problem, e.RootCause, e.CorrectiveAction, e.BeforeResults, e.AfterResults,
		e.Station, e.DefectType, e.DateClosed, e.Image,
		string(id),
	); err != nil {
		return nil, fmt.Errorf("update knowledge %s: %w", id, err)
	}
	return e, nil
}

func (r *KnowledgeRepository) Delete(ctx context.Context, id knowledge.ID) (bool, error) {
	return r.s.deleteByID(ctx, records.Knowledge, string(id))
}

func (r *KnowledgeRepository) Count(ctx context.Context) (int, error) {
	return r.s.Count(ctx, records.Knowledge)
}
