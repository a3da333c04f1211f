// Package server exposes stage rendering over HTTP, for previewing the wire
// documents a query description produces without a live cluster.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/lumora-db/searchstage"
	"github.com/lumora-db/searchstage/internal/config"
	"github.com/lumora-db/searchstage/internal/metrics"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeCollectionNotFound = "collection_not_found"
	codeRenderFailed       = "render_failed"
)

var operators = []string{"text", "phrase", "queryString"}

// collection is one configured schema the server renders stages against.
type collection struct {
	renderer *searchstage.Renderer
	index    string
	fields   int
}

// Server renders $search stages for configured collections.
type Server struct {
	collections map[string]collection
	logger      *zap.Logger
}

// New builds a Server from collection declarations.
func New(cols []config.CollectionConfig, logger *zap.Logger) *Server {
	m := make(map[string]collection, len(cols))
	for _, c := range cols {
		m[c.Name] = collection{
			renderer: searchstage.NewRendererFromFields(c.Fields),
			index:    c.Index,
			fields:   len(c.Fields),
		}
	}
	return &Server{collections: m, logger: logger}
}

// Routes mounts the API on a chi router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/v1/collections", s.handleListCollections)
	r.Post("/v1/collections/{name}/render", s.handleRender)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListCollections handles GET /v1/collections.
func (s *Server) handleListCollections(w http.ResponseWriter, _ *http.Request) {
	items := make([]collectionInfo, 0, len(s.collections))
	for name, c := range s.collections {
		items = append(items, collectionInfo{
			Name:   name,
			Index:  c.index,
			Fields: c.fields,
			Ops:    operators,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	writeJSON(w, http.StatusOK, map[string]any{"collections": items})
}

// handleRender handles POST /v1/collections/{name}/render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	col, ok := s.collections[name]
	if !ok {
		writeError(w, http.StatusNotFound, codeCollectionNotFound, "Unknown collection: "+name)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	op := operatorLabel(&req)

	def, err := toDefinition(&req)
	if err != nil {
		metrics.RenderTotal.WithLabelValues(name, op, "error").Inc()
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	opts, err := toStageOptions(&req, col.index)
	if err != nil {
		metrics.RenderTotal.WithLabelValues(name, op, "error").Inc()
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	stage, err := searchstage.NewStage(def, opts...)
	if err != nil {
		metrics.RenderTotal.WithLabelValues(name, op, "error").Inc()
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	doc, err := stage.Render(col.renderer)
	metrics.RenderDuration.WithLabelValues(name, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RenderTotal.WithLabelValues(name, op, "error").Inc()
		status := http.StatusBadRequest
		if errors.Is(err, searchstage.ErrUnknownField) || errors.Is(err, searchstage.ErrInvalidJSON) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, codeRenderFailed, err.Error())
		return
	}
	metrics.RenderTotal.WithLabelValues(name, op, "ok").Inc()

	// Relaxed extended JSON: plain numbers, readable output.
	ext, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		s.logger.Error("marshal rendered stage", zap.String("collection", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeRenderFailed, "failed to encode stage")
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{Collection: name, Stage: ext})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}
