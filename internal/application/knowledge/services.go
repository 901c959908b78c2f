package knowledge

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/knowledge"
	"github.com/bryanwahyu/rcis/internal/domain/records"
)

// MaxImageBytes caps a single uploaded photo.
const MaxImageBytes = 10 << 20

// Service implements use-cases untuk knowledge bank. Images is optional.
type Service struct {
	Repo   knowledge.Repository
	Images knowledge.ImageStore
	Log    *zap.Logger
}

type CreateCommand struct {
	Problem          string         `json:"problem"`
	RootCause        string         `json:"rootCause"`
	CorrectiveAction string         `json:"correctiveAction"`
	BeforeResults    string         `json:"beforeResults"`
	AfterResults     string         `json:"afterResults"`
	Station          catalog.Choice `json:"station"`
	DefectType       catalog.Choice `json:"defectType"`
	DateClosed       string         `json:"dateClosed"`
}

func optional(c catalog.Choice, list []string, field string) (string, error) {
	if c.IsZero() {
		return "", nil
	}
	if err := c.Validate(list); err != nil {
		return "", records.Invalidf("%s: %v", field, err)
	}
	return c.Resolve(), nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*knowledge.Entry, error) {
	station, err := optional(cmd.Station, catalog.Stations, "station")
	if err != nil {
		return nil, err
	}
	defect, err := optional(cmd.DefectType, catalog.DefectTypes, "defectType")
	if err != nil {
		return nil, err
	}
	e := &knowledge.Entry{
		Problem:          strings.TrimSpace(cmd.Problem),
		RootCause:        strings.TrimSpace(cmd.RootCause),
		CorrectiveAction: strings.TrimSpace(cmd.CorrectiveAction),
		BeforeResults:    strings.TrimSpace(cmd.BeforeResults),
		AfterResults:     strings.TrimSpace(cmd.AfterResults),
		Station:          station,
		DefectType:       defect,
		DateClosed:       strings.TrimSpace(cmd.DateClosed),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.Insert(ctx, e)
}

func (s *Service) List(ctx context.Context, q knowledge.Query) ([]*knowledge.Entry, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*knowledge.Entry{}
	for _, e := range all {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id knowledge.ID) (*knowledge.Entry, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id knowledge.ID, p knowledge.Patch) (*knowledge.Entry, error) {
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *cur
	p.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, p)
}

// Delete removes the entry and, best effort, its photo.
func (s *Service) Delete(ctx context.Context, id knowledge.ID) error {
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return records.ErrNotFound
	}
	if cur.Image != "" && s.Images != nil {
		if err := s.Images.Remove(ctx, cur.Image); err != nil {
			s.Log.Warn("remove knowledge image", zap.String("id", string(id)), zap.Error(err))
		}
	}
	return nil
}

// AttachImage uploads a photo and points the entry at it, replacing any
// previous one.
func (s *Service) AttachImage(ctx context.Context, id knowledge.ID, filename, contentType string, r io.Reader, size int64) (*knowledge.Entry, error) {
	if s.Images == nil {
		return nil, knowledge.ErrImagesDisabled
	}
	if size > MaxImageBytes {
		return nil, records.Invalidf("image is %d bytes, limit is %d", size, MaxImageBytes)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, records.Invalidf("content type %q is not an image", contentType)
	}
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("knowledge/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Put(ctx, key, contentType, r, size)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	updated, err := s.Repo.Update(ctx, id, knowledge.Patch{Image: &url})
	if err != nil {
		if rerr := s.Images.Remove(ctx, url); rerr != nil {
			s.Log.Warn("remove orphaned image", zap.String("id", string(id)), zap.Error(rerr))
		}
		return nil, err
	}
	if cur.Image != "" && cur.Image != url {
		if err := s.Images.Remove(ctx, cur.Image); err != nil {
			s.Log.Warn("remove replaced image", zap.String("id", string(id)), zap.Error(err))
		}
	}
	return updated, nil
}
