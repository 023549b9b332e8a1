// Package http provides http transport for candidate search and saved searches
package http

import (
	stdhttp "net/http"

	"github.com/predator4hack/gitscout/internal/core/filtering"
	"github.com/predator4hack/gitscout/internal/core/scoring"
	"github.com/predator4hack/gitscout/internal/modkit/httpkit"
	pnet "github.com/predator4hack/gitscout/internal/platform/net"
	"github.com/predator4hack/gitscout/internal/platform/net/http/bind"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
)

// SearchRequest starts a search
type SearchRequest struct {
	JobText  string             `json:"job_text" validate:"required,max=20000"`
	Provider string             `json:"provider,omitempty" validate:"omitempty,oneof=gemini vertex mock"`
	Filters  *filtering.Filters `json:"filters,omitempty"`
	PageSize int                `json:"page_size,omitempty" validate:"omitempty,min=1,max=50"`
}

// FilterRequest reapplies filters to a live session
type FilterRequest struct {
	Filters  filtering.Filters `json:"filters"`
	PageSize int               `json:"page_size,omitempty" validate:"omitempty,min=1,max=50"`
}

// SaveRequest persists a session or an explicit candidate list
type SaveRequest struct {
	SessionID  string                    `json:"session_id,omitempty" validate:"omitempty,uuid"`
	Title      string                    `json:"title,omitempty" validate:"omitempty,max=120"`
	JobText    string                    `json:"job_text,omitempty" validate:"required_without=SessionID,max=20000"`
	Candidates []scoring.ScoredCandidate `json:"candidates,omitempty"`
}

// StarRequest toggles a star on a saved candidate
type StarRequest struct {
	Login string `json:"login" validate:"required,github_login"`
}

// StarResponse is the starred set after a toggle
type StarResponse struct {
	Starred []string `json:"starred"`
}

// Register mounts the session endpoints; r is already under /search
func Register(r httpkit.Router, s dom.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[SearchRequest](r, "/", h.search)
	httpkit.Get(r, "/{session}", h.page)
	httpkit.PostJSON[FilterRequest](r, "/{session}/filter", h.refilter)
	httpkit.Get(r, "/{session}/candidates/{login}/analysis", h.analyze)
}

// RegisterSaved mounts the saved search endpoints; r is already under /searches
func RegisterSaved(r httpkit.Router, s dom.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[SaveRequest](r, "/", h.save)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Delete(r, "/{id}", h.remove)
	httpkit.PostJSON[StarRequest](r, "/{id}/star", h.star)
}

type handlers struct{ svc dom.ServicePort }

// @Summary Search GitHub for candidates matching a job description
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body SearchRequest true "Job description"
// @Success 200 {object} domain.Page "first page"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in SearchRequest) (any, error) {
	return h.svc.Search(r.Context(), dom.SearchInput{
		JobText:  in.JobText,
		Provider: in.Provider,
		Filters:  in.Filters,
		PageSize: in.PageSize,
	})
}

// @Summary Another page of a search session
// @Tags Search
// @Produce json
// @Param session path string true "Session id"
// @Param page query int false "1 based page"
// @Param page_size query int false "Page size, at most 50"
// @Success 200 {object} domain.Page "page"
// @Router /search/{session} [get]
func (h *handlers) page(r *stdhttp.Request) (any, error) {
	page, err := bind.QueryInt(r, "page", 1)
	if err != nil {
		return nil, err
	}
	size, err := bind.QueryInt(r, "page_size", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.Page(r.Context(), httpkit.Param(r, "session"), page, size)
}

// @Summary Reapply filters to a search session
// @Tags Search
// @Accept json
// @Produce json
// @Param session path string true "Session id"
// @Param payload body FilterRequest true "Filters"
// @Success 200 {object} domain.Page "first filtered page"
// @Router /search/{session}/filter [post]
func (h *handlers) refilter(r *stdhttp.Request, in FilterRequest) (any, error) {
	return h.svc.Refilter(r.Context(), httpkit.Param(r, "session"), &in.Filters, in.PageSize)
}

// @Summary Skills breakdown of one candidate, cached with its session
// @Tags Search
// @Produce json
// @Param session path string true "Session id"
// @Param login path string true "GitHub login"
// @Param provider query string false "gemini, vertex or mock"
// @Success 200 {object} domain.Analysis "analysis"
// @Router /search/{session}/candidates/{login}/analysis [get]
func (h *handlers) analyze(r *stdhttp.Request) (any, error) {
	return h.svc.Analyze(r.Context(), httpkit.Param(r, "session"), httpkit.Param(r, "login"), r.URL.Query().Get("provider"))
}

// @Summary Save a search
// @Tags Saved
// @Accept json
// @Produce json
// @Param X-Owner header string true "Owner"
// @Param payload body SaveRequest true "Search to save"
// @Success 201 {object} domain.SavedSearch "saved"
// @Router /searches [post]
func (h *handlers) save(r *stdhttp.Request, in SaveRequest) (any, error) {
	out, err := h.svc.Save(r.Context(), pnet.Owner(r.Context()), dom.SaveInput{
		SessionID:  in.SessionID,
		Title:      in.Title,
		JobText:    in.JobText,
		Candidates: in.Candidates,
	})
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// @Summary List saved searches
// @Tags Saved
// @Produce json
// @Param X-Owner header string true "Owner"
// @Success 200 {array} domain.SavedSummary "saved searches, newest first"
// @Router /searches [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), pnet.Owner(r.Context()))
}

// @Summary Get a saved search
// @Tags Saved
// @Produce json
// @Param X-Owner header string true "Owner"
// @Param id path string true "Saved search id"
// @Success 200 {object} domain.SavedSearch "saved search"
// @Router /searches/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), pnet.Owner(r.Context()), httpkit.Param(r, "id"))
}

// @Summary Delete a saved search
// @Tags Saved
// @Param X-Owner header string true "Owner"
// @Param id path string true "Saved search id"
// @Success 204 "deleted"
// @Router /searches/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), pnet.Owner(r.Context()), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Star or unstar a candidate of a saved search
// @Tags Saved
// @Accept json
// @Produce json
// @Param X-Owner header string true "Owner"
// @Param id path string true "Saved search id"
// @Param payload body StarRequest true "Candidate"
// @Success 200 {object} StarResponse "starred logins"
// @Router /searches/{id}/star [post]
func (h *handlers) star(r *stdhttp.Request, in StarRequest) (any, error) {
	starred, err := h.svc.ToggleStar(r.Context(), pnet.Owner(r.Context()), httpkit.Param(r, "id"), in.Login)
	if err != nil {
		return nil, err
	}
	return StarResponse{Starred: starred}, nil
}
