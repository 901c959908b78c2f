package httpserver

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appactions "github.com/bryanwahyu/rcis/internal/application/actions"
	appknowledge "github.com/bryanwahyu/rcis/internal/application/knowledge"
	appreworks "github.com/bryanwahyu/rcis/internal/application/reworks"
	"github.com/bryanwahyu/rcis/internal/domain/actions"
	"github.com/bryanwahyu/rcis/internal/domain/catalog"
	"github.com/bryanwahyu/rcis/internal/domain/knowledge"
	"github.com/bryanwahyu/rcis/internal/domain/records"
	"github.com/bryanwahyu/rcis/internal/domain/rework"
)

// GET /v1/catalog
func (r *Router) handleCatalog(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, catalog.Current())
}

// GET /v1/reworks?search=&station=&defectType=&severity=&shift=
func (r *Router) handleReworkList(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	list, err := r.Reworks.List(req.Context(), rework.Query{
		Search:     q.Get("search"),
		Station:    q.Get("station"),
		DefectType: q.Get("defectType"),
		Severity:   q.Get("severity"),
		Shift:      q.Get("shift"),
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/reworks
func (r *Router) handleReworkCreate(w http.ResponseWriter, req *http.Request) error {
	var cmd appreworks.CreateCommand
	if err := decode(req, &cmd); err != nil {
		return err
	}
	e, err := r.Reworks.Create(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, e)
}

// GET /v1/reworks/{id}
func (r *Router) handleReworkGet(w http.ResponseWriter, req *http.Request) error {
	e, err := r.Reworks.Get(req.Context(), rework.ID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, e)
}

// PATCH /v1/reworks/{id}
func (r *Router) handleReworkUpdate(w http.ResponseWriter, req *http.Request) error {
	var p rework.Patch
	if err := decode(req, &p); err != nil {
		return err
	}
	e, err := r.Reworks.Update(req.Context(), rework.ID(chi.URLParam(req, "id")), p)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, e)
}

// DELETE /v1/reworks/{id}
func (r *Router) handleReworkDelete(w http.ResponseWriter, req *http.Request) error {
	if err := r.Reworks.Delete(req.Context(), rework.ID(chi.URLParam(req, "id"))); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/actions?status=Open|In Progress|Closed|Overdue
func (r *Router) handleActionList(w http.ResponseWriter, req *http.Request) error {
	list, err := r.Actions.List(req.Context(), req.URL.Query().Get("status"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/actions
func (r *Router) handleActionCreate(w http.ResponseWriter, req *http.Request) error {
	var cmd appactions.CreateCommand
	if err := decode(req, &cmd); err != nil {
		return err
	}
	v, err := r.Actions.Create(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, v)
}

// GET /v1/actions/summary
func (r *Router) handleActionSummary(w http.ResponseWriter, req *http.Request) error {
	counts, err := r.Actions.Summary(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, counts)
}

func (r *Router) handleActionGet(w http.ResponseWriter, req *http.Request) error {
	v, err := r.Actions.Get(req.Context(), actions.ID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

func (r *Router) handleActionUpdate(w http.ResponseWriter, req *http.Request) error {
	var p actions.Patch
	if err := decode(req, &p); err != nil {
		return err
	}
	v, err := r.Actions.Update(req.Context(), actions.ID(chi.URLParam(req, "id")), p)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

func (r *Router) handleActionDelete(w http.ResponseWriter, req *http.Request) error {
	if err := r.Actions.Delete(req.Context(), actions.ID(chi.URLParam(req, "id"))); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/knowledge?q=&station=&defectType=
func (r *Router) handleKnowledgeList(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	list, err := r.Knowledge.List(req.Context(), knowledge.Query{
		Search:     q.Get("q"),
		Station:    q.Get("station"),
		DefectType: q.Get("defectType"),
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

func (r *Router) handleKnowledgeCreate(w http.ResponseWriter, req *http.Request) error {
	var cmd appknowledge.CreateCommand
	if err := decode(req, &cmd); err != nil {
		return err
	}
	e, err := r.Knowledge.Create(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, e)
}

func (r *Router) handleKnowledgeGet(w http.ResponseWriter, req *http.Request) error {
	e, err := r.Knowledge.Get(req.Context(), knowledge.ID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, e)
}

func (r *Router) handleKnowledgeUpdate(w http.ResponseWriter, req *http.Request) error {
	var p knowledge.Patch
	if err := decode(req, &p); err != nil {
		return err
	}
	e, err := r.Knowledge.Update(req.Context(), knowledge.ID(chi.URLParam(req, "id")), p)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, e)
}

func (r *Router) handleKnowledgeDelete(w http.ResponseWriter, req *http.Request) error {
	if err := r.Knowledge.Delete(req.Context(), knowledge.ID(chi.URLParam(req, "id"))); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// PUT /v1/knowledge/{id}/image
// Accepts multipart/form-data with an "image" part, or the raw image as
// the body with its own Content-Type (?filename= names it).
func (r *Router) handleKnowledgeImage(w http.ResponseWriter, req *http.Request) error {
	id := knowledge.ID(chi.URLParam(req, "id"))
	req.Body = http.MaxBytesReader(w, req.Body, appknowledge.MaxImageBytes+1<<20)

	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := req.FormFile("image")
		if err != nil {
			return records.Invalidf("image part: %v", err)
		}
		defer file.Close()
		e, err := r.Knowledge.AttachImage(req.Context(), id, header.Filename, partType(header), file, header.Size)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, e)
	}

	filename := req.URL.Query().Get("filename")
	if filename == "" {
		filename = "image"
	}
	var (
		body io.Reader = req.Body
		size           = req.ContentLength
	)
	if size < 0 {
		// unknown length: buffer at most one byte past the limit
		buf, err := io.ReadAll(io.LimitReader(req.Body, appknowledge.MaxImageBytes+1))
		if err != nil {
			return records.Invalidf("read image: %v", err)
		}
		if int64(len(buf)) > appknowledge.MaxImageBytes {
			return records.Invalidf("image exceeds %d bytes", appknowledge.MaxImageBytes)
		}
		body, size = bytes.NewReader(buf), int64(len(buf))
	}
	e, err := r.Knowledge.AttachImage(req.Context(), id, filename, req.Header.Get("Content-Type"), body, size)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, e)
}

func partType(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
