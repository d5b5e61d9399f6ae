package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-twin-engine/internal/extract"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// RolesResponse lists configured role profiles
type RolesResponse struct {
	Names []string            `json:"names"`
	Roles []types.RoleProfile `json:"roles"`
}

// ClassifyResponse splits skills by whether the taxonomy recognizes them
type ClassifyResponse struct {
	Validated []string `json:"validated"`
	Uncertain []string `json:"uncertain"`
}

// pinger is implemented by run stores that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// handleHealth returns server health status. A configured run store that
// cannot be reached turns the answer into 503 "degraded".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok", "taxonomy": s.engine.Taxonomy().Version()}

	if p, ok := s.runs.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.log.Warn("health check: database unreachable", "error", err)
			body["status"] = "degraded"
			body["database"] = "unreachable"
			s.jsonResponse(w, http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "ok"
	}
	s.jsonResponse(w, http.StatusOK, body)
}

func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	catalog := s.engine.Roles()
	s.jsonResponse(w, http.StatusOK, RolesResponse{Names: catalog.Names(), Roles: catalog.List()})
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	role, ok := s.engine.Roles().Get(name)
	if !ok {
		s.failure(w, &ErrNotFound{Resource: "role", ID: name})
		return
	}
	s.jsonResponse(w, http.StatusOK, role)
}

// handleTrends scores a batch of raw postings
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	req, err := decode[types.TrendRequest](w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	report, err := s.engine.Trends(r.Context(), req.Postings, req.TopK)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleGetTrends(w http.ResponseWriter, r *http.Request) {
	id, err := s.runID(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	report, err := s.runs.GetTrendReport(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if report == nil {
		s.failure(w, &ErrNotFound{Resource: "trend run", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleGap analyzes a candidate against a role and returns the report with its roadmap
func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	req, err := decode[types.GapRequest](w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	var plan *types.GapPlan
	if req.RoleProfile != nil {
		plan, err = s.engine.Plan(r.Context(), req.CandidateSkills, *req.RoleProfile, req.HorizonWeeks)
	} else {
		plan, err = s.engine.PlanForRole(r.Context(), req.CandidateSkills, req.Role, req.HorizonWeeks)
	}
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

func (s *Server) handleGetGap(w http.ResponseWriter, r *http.Request) {
	id, err := s.runID(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	plan, err := s.runs.GetGapPlan(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if plan == nil {
		s.failure(w, &ErrNotFound{Resource: "gap plan", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

// runID checks that stored runs are available and parses the {id} path value.
func (s *Server) runID(r *http.Request) (uuid.UUID, error) {
	if s.runs == nil {
		return uuid.Nil, &ErrUnavailable{Feature: "stored runs"}
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid run ID format"}
	}
	return id, nil
}

// handleExtractSkills extracts skills from free text and classifies them
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	req, err := decode[types.ExtractRequest](w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	tax := s.engine.Taxonomy()
	extractor := s.extractor
	if extractor == nil {
		extractor = extract.NewKeywordExtractor(tax)
	}

	skills, err := extractor.Extract(r.Context(), req.Text)
	if err != nil {
		s.failure(w, err)
		return
	}
	validated, uncertain := tax.Classify(skills)
	s.jsonResponse(w, http.StatusOK, types.ExtractResponse{Skills: skills, Validated: validated, Uncertain: uncertain})
}

func (s *Server) handleValidateSkills(w http.ResponseWriter, r *http.Request) {
	req, err := decode[types.ValidateSkillsRequest](w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	validated, uncertain := s.engine.Taxonomy().Classify(req.Skills)
	s.jsonResponse(w, http.StatusOK, ClassifyResponse{Validated: validated, Uncertain: uncertain})
}
