package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/chromatic/pkg/buildinfo"
	"github.com/matzehuels/chromatic/pkg/coloring"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/render"
)

// colorRequest is the body of POST /v1/color.
type colorRequest struct {
	Vertices     int      `json:"vertices"`
	Edges        [][]int  `json:"edges"`
	UsageForcing *bool    `json:"usage_forcing,omitempty"`
	TimeoutMS    int64    `json:"timeout_ms,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`
}

// colorResponse is the body of a successful POST /v1/color.
type colorResponse struct {
	RunID     string             `json:"run_id"`
	GraphHash string             `json:"graph_hash"`
	Solution  *coloring.Solution `json:"solution"`
	// Artifacts holds DOT and SVG as text and PNG base64-encoded.
	Artifacts map[render.Format]string `json:"artifacts,omitempty"`
	Cached    cachedInfo               `json:"cached"`
	Stats     statsInfo                `json:"stats"`
}

type cachedInfo struct {
	Solve  bool `json:"solve"`
	Render bool `json:"render"`
}

type statsInfo struct {
	Vertices int   `json:"vertices"`
	Edges    int   `json:"edges"`
	SolveMS  int64 `json:"solve_ms"`
	RenderMS int64 `json:"render_ms"`
}

func (req colorRequest) graph() (*graph.Graph, error) {
	edges := make([]graph.Edge, len(req.Edges))
	for i, e := range req.Edges {
		if len(e) != 2 {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "edge #%d: want 2 endpoints, got %d", i, len(e))
		}
		edges[i] = graph.Edge{U: e[0], V: e[1]}
	}
	return graph.New(req.Vertices, edges)
}

func (s *Server) options(req colorRequest) (pipeline.Options, error) {
	opts := s.defaults
	opts.Logger = s.logger
	if req.UsageForcing != nil {
		opts.UsageForcing = *req.UsageForcing
	}
	if req.TimeoutMS != 0 {
		opts.Timeout = time.Duration(req.TimeoutMS) * time.Millisecond
	}
	if req.Detailed {
		opts.Detailed = true
	}
	if len(req.Formats) > 0 {
		opts.Formats = make([]render.Format, 0, len(req.Formats))
		for _, name := range req.Formats {
			f, err := render.ParseFormat(name)
			if err != nil {
				return opts, err
			}
			opts.Formats = append(opts.Formats, f)
		}
	}
	return opts, nil
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	g, err := req.graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := colorResponse{
		RunID:     res.RunID,
		GraphHash: res.GraphHash,
		Solution:  res.Solution,
		Cached:    cachedInfo{Solve: res.CacheInfo.SolveHit, Render: res.CacheInfo.RenderHit},
		Stats: statsInfo{
			Vertices: res.Stats.Vertices,
			Edges:    res.Stats.Edges,
			SolveMS:  res.Stats.SolveTime.Milliseconds(),
			RenderMS: res.Stats.RenderTime.Milliseconds(),
		},
	}
	if len(res.Artifacts) > 0 {
		resp.Artifacts = make(map[render.Format]string, len(res.Artifacts))
		for f, data := range res.Artifacts {
			if f == render.PNG {
				resp.Artifacts[f] = base64.StdEncoding.EncodeToString(data)
			} else {
				resp.Artifacts[f] = string(data)
			}
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
