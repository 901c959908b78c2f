package httpserver

import "net/http"

// GET /v1/settings
func (r *Router) handleSettings(w http.ResponseWriter, req *http.Request) error {
	snap, err := r.Settings.Snapshot(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, snap)
}

// POST /v1/settings/seed
func (r *Router) handleSeed(w http.ResponseWriter, req *http.Request) error {
	res, err := r.Settings.Seed(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, res)
}

// DELETE /v1/settings/data
func (r *Router) handleClear(w http.ResponseWriter, req *http.Request) error {
	removed, err := r.Settings.ClearAll(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
