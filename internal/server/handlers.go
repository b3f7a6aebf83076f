package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forcelay/forcelay/pkg/cache"
	"github.com/forcelay/forcelay/pkg/errors"
	"github.com/forcelay/forcelay/pkg/graph"
	"github.com/forcelay/forcelay/pkg/pipeline"
)

// layoutRequest is the POST /api/v1/layouts body: a serialized graph plus
// the layout options understood by the pipeline.
type layoutRequest struct {
	Graph   graph.File       `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse augments the stored record with cache information for
// the compute endpoint.
type layoutResponse struct {
	ID        string       `json:"id"`
	GraphHash string       `json:"graph_hash"`
	Layout    graph.Layout `json:"layout"`
	Cached    bool         `json:"cached"`
}

// handleComputeLayout computes and stores a layout for the posted graph.
func (s *Server) handleComputeLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body"))
		return
	}

	g, err := graph.ToGraph(req.Graph)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "building graph"))
		return
	}

	opts := req.Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "hashing graph"))
		return
	}

	graphHash := cache.Hash(graphData)

	// Keep the normalized graph around so clients can fetch it back by
	// hash. A cache failure only degrades the fetch endpoint.
	key := s.runner.Keyer.GraphKey(graphHash)
	if err := s.runner.Cache.Set(r.Context(), key, graphData, cache.TTLGraph); err != nil {
		s.logger.Warn("caching graph", "hash", graphHash, "error", err)
	}

	rec, err := s.store.Save(r.Context(), graphHash, l)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, layoutResponse{
		ID:        rec.ID,
		GraphHash: rec.GraphHash,
		Layout:    rec.Layout,
		Cached:    hit,
	})
}

// handleGetGraph returns the normalized graph previously posted for a
// layout, looked up by its hash.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	data, ok, err := s.runner.Cache.Get(r.Context(), s.runner.Keyer.GraphKey(hash))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "fetching graph"))
		return
	}
	if !ok {
		writeError(w, errors.Wrap(errors.ErrCodeNotFound, cache.ErrNotFound, "graph %s", hash))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleGetLayout fetches a stored layout by ID.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteLayout removes a stored layout by ID.
func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// JSON Helpers
// =============================================================================

// errorBody is the JSON error envelope returned by every handler.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidParameter,
		errors.ErrCodeInvalidDimension, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath,
		errors.ErrCodeEdgesRequired, errors.ErrCodeUnknownAlgorithm:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeLayoutNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, errorBody{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
