package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/echoes/internal/auth"
	"github.com/MikeSquared-Agency/echoes/internal/ingest"
	"github.com/MikeSquared-Agency/echoes/internal/normalize"
	"github.com/MikeSquared-Agency/echoes/internal/stats"
)

// load runs a full load for the request, writing the error response itself
// when it fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request) ([]normalize.Message, bool) {
	if claims, ok := auth.SessionFromContext(r.Context()); ok {
		s.logger.Debug("loading messages", "session", claims.ID, "path", r.URL.Path)
	}

	msgs, err := s.loader.Load(r.Context())
	if err == nil {
		return msgs, true
	}

	var nf *ingest.NotFoundError
	var md *ingest.MalformedDataError
	switch {
	case errors.As(err, &nf):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &md):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusBadGateway, "failed to load messages")
	}
	return nil, false
}

// messages handles GET /api/v1/messages.
func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	offset, err := intParam(params.Get("offset"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid offset")
		return
	}
	limit, err := intParam(params.Get("limit"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	from, until, err := stats.DayRange(params.Get("from"), params.Get("to"), s.loader.Zone())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date (want YYYY-MM-DD)")
		return
	}

	msgs, ok := s.load(w, r)
	if !ok {
		return
	}

	page := stats.Filter(msgs, stats.Query{
		Keywords: stats.ParseKeywords(params.Get("q")),
		Sender:   params.Get("sender"),
		From:     from,
		Until:    until,
		Offset:   offset,
		Limit:    limit,
	})
	respondJSON(w, http.StatusOK, page)
}

// overview handles GET /api/v1/overview.
func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	msgs, ok := s.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, stats.ComputeOverview(msgs, s.people...))
}

type timelineResponse struct {
	GroupBy stats.GroupBy  `json:"group_by"`
	Buckets []stats.Bucket `json:"buckets"`
}

// timeline handles GET /api/v1/timeline.
func (s *Server) timeline(w http.ResponseWriter, r *http.Request) {
	group, err := stats.ParseGroupBy(r.URL.Query().Get("group"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	msgs, ok := s.load(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, timelineResponse{
		GroupBy: group,
		Buckets: stats.Timeline(msgs, group),
	})
}

// intParam parses a non-negative integer query value; empty means zero.
func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative value")
	}
	return n, nil
}
