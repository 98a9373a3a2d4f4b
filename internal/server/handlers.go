package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"carerag/internal/domain"
	"carerag/internal/presenter"
)

type askOptions struct {
	Detail   string `json:"detail"`
	Audience string `json:"audience"`
}

type askRequest struct {
	Text    string     `json:"text"`
	Options askOptions `json:"options"`
}

type askResponse struct {
	Answer   string              `json:"answer"`
	Evidence string              `json:"evidence,omitempty"`
	Source   domain.AnswerSource `json:"source"`
}

type retrieveRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type retrieveResponse struct {
	Hits []domain.ScoredHit `json:"hits"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	opts, err := domain.ParseOptions(req.Options.Detail, req.Options.Audience)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("ask request", zap.String("text", text),
		zap.String("detail", string(opts.Detail)), zap.String("audience", string(opts.Audience)))

	answer := s.ask.Ask(r.Context(), domain.Query{Text: text, Options: opts})
	resp := askResponse{Answer: answer.Text, Source: answer.Source}

	if filter, _ := strconv.ParseBool(r.URL.Query().Get("filter")); filter {
		main, evidence := presenter.SplitEvidence(answer.Text)
		resp.Answer = presenter.FilterSections(main, opts, text)
		resp.Evidence = evidence
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	k := req.K
	if k == 0 {
		k = s.retrieve.TopK(domain.DetailStandard)
	}

	hits := s.retrieve.RetrieveTopK(req.Query, k)
	if hits == nil {
		hits = []domain.ScoredHit{}
	}
	s.respondJSON(w, http.StatusOK, retrieveResponse{Hits: hits})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.loader == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not enabled")
		return
	}
	result, err := s.loader.Load(r.Context(), nil)
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"files":      result.Files,
		"chunks":     result.Chunks,
		"generation": result.Generation,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"chunks":     s.index.Len(),
		"generation": s.index.Generation(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
