// Package server exposes the resolution of a project over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/resolve"
)

type (
	// NodeInfo describes a node in the node listing.
	NodeInfo struct {
		ID     harmonia.NodeID `json:"id"`
		Parent harmonia.NodeID `json:"parent,omitempty"`
		Name   string          `json:"name,omitempty"`
		Size   int             `json:"size"`
	}

	// Notes is the response of the resolving endpoints.
	Notes struct {
		Node  harmonia.NodeID      `json:"node"`
		Tick  *int                 `json:"tick,omitempty"`
		Pose  *harmonia.PoseVector `json:"pose,omitempty"`
		Notes []int                `json:"notes"`
		Names []string             `json:"names"`
	}

	errorBody struct {
		Detail string `json:"detail"`
	}
)

// Server serves one project. The project can be replaced while serving.
type Server struct {
	mu       sync.RWMutex
	project  harmonia.Project
	forest   harmonia.Forest
	sources  map[harmonia.NodeID][]harmonia.PoseSource
	extra    []harmonia.PoseSource
	resolver *resolve.Resolver
	logger   *zap.Logger
}

// New returns a server for the project. Extra pose sources, such as a live
// keyboard, are applied to every node on top of the clips of the project.
func New(p *harmonia.Project, logger *zap.Logger, extra ...harmonia.PoseSource) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		resolver: resolve.New(logger),
		logger:   logger,
		extra:    extra,
	}
	s.SetProject(p)
	return s
}

// SetProject replaces the served project.
func (s *Server) SetProject(p *harmonia.Project) {
	cp := p.Copy()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = cp
	s.forest = cp.Forest()
	s.sources = cp.Sources()
}

// Handler returns the routes of the server, allowing cross origin requests
// from the given origins.
func (s *Server) Handler(origins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/nodes", s.handleNodes).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{id}/scale", s.handleScale).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{id}/notes", s.handleNotes).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{id}/compose", s.handleCompose).Methods(http.MethodPost)
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return c.Handler(r)
}

// NewHandler is a shorthand for New(p, logger).Handler(origins).
func NewHandler(p *harmonia.Project, logger *zap.Logger, origins []string) http.Handler {
	return New(p, logger).Handler(origins)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]NodeInfo, 0, len(s.project.Tracks))
	for _, t := range s.project.Tracks {
		ret = append(ret, NodeInfo{ID: t.ID, Parent: t.Parent, Name: t.Name, Size: len(t.Scale)})
	}
	s.writeJSON(w, http.StatusOK, ret)
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.node(w, r)
	if !ok {
		return
	}
	notes, err := s.resolver.ResolveScale(id, s.forest)
	s.respond(w, Notes{Node: id, Notes: notes}, err)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	tick := 0
	if v := r.URL.Query().Get("tick"); v != "" {
		var err error
		if tick, err = strconv.Atoi(v); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid tick %q", v))
			return
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.node(w, r)
	if !ok {
		return
	}
	sources := s.sources
	if len(s.extra) > 0 {
		sources = make(map[harmonia.NodeID][]harmonia.PoseSource, len(s.sources)+1)
		for k, v := range s.sources {
			sources[k] = v
		}
		sources[id] = append(append([]harmonia.PoseSource{}, s.sources[id]...), s.extra...)
	}
	pose, err := s.resolver.ActivePose(id, s.forest, sources, tick)
	if err != nil {
		s.respond(w, Notes{Node: id, Tick: &tick, Notes: []int{}}, err)
		return
	}
	notes, err := s.resolver.ResolveNodeAtTick(id, s.forest, sources, tick)
	s.respond(w, Notes{Node: id, Tick: &tick, Pose: &pose, Notes: notes}, err)
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var poses []harmonia.PoseVector
	if err := json.NewDecoder(r.Body).Decode(&poses); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode poses: %w", err))
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.node(w, r)
	if !ok {
		return
	}
	pose := harmonia.SumPoses(poses...)
	notes, err := s.resolver.Compose(id, s.forest, poses...)
	s.respond(w, Notes{Node: id, Pose: &pose, Notes: notes}, err)
}

func (s *Server) node(w http.ResponseWriter, r *http.Request) (harmonia.NodeID, bool) {
	id := harmonia.NodeID(mux.Vars(r)["id"])
	if _, ok := s.forest[id]; !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("node %v: %w", id, harmonia.ErrUnknownNode))
		return id, false
	}
	return id, true
}

func (s *Server) respond(w http.ResponseWriter, body Notes, err error) {
	if err != nil {
		s.logger.Warn("resolution failed", zap.String("node", string(body.Node)), zap.Error(err))
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	body.Names = make([]string, len(body.Notes))
	for i, n := range body.Notes {
		body.Names[i] = harmonia.NoteName(n)
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("could not write response", zap.Int("status", status), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorBody{Detail: err.Error()})
}
