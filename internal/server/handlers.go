package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

type errorResponse struct {
	Error  string                 `json:"error"`
	Fields []screening.FieldError `json:"fields,omitempty"`
}

type screeningRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
	Hall     string `json:"hall"`
	Genre    string `json:"genre"`
}

func (r screeningRequest) draft() screening.Draft {
	return screening.Draft{
		Title:    r.Title,
		Date:     r.Date,
		Time:     r.Time,
		Duration: r.Duration,
		Hall:     r.Hall,
		Genre:    r.Genre,
	}
}

type dropRequest struct {
	planner.Target
	planner.Drop
}

type doubleClickRequest struct {
	planner.Target
	Film string `json:"film,omitempty"`
}

type overlapRequest struct {
	ID string `json:"id,omitempty"`
	screeningRequest
}

type savedResponse struct {
	Screening screening.Record   `json:"screening"`
	Conflicts []screening.Record `json:"conflicts"`
}

type outcomeResponse struct {
	Screening *screening.Record  `json:"screening,omitempty"`
	Created   bool               `json:"created"`
	Draft     *screeningRequest  `json:"draft,omitempty"`
	Conflicts []screening.Record `json:"conflicts"`
}

type overlapResponse struct {
	Overlaps  bool               `json:"overlaps"`
	Conflicts []screening.Record `json:"conflicts"`
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) listScreenings(c echo.Context) error {
	return c.JSON(http.StatusOK, records(s.planner.Screenings()))
}

func (s *Server) getScreening(c echo.Context) error {
	sc, ok := s.planner.Find(c.Param("id"))
	if !ok {
		return s.fail(c, screening.ErrNotFound)
	}
	return c.JSON(http.StatusOK, sc.ToRecord())
}

func (s *Server) createScreening(c echo.Context) error {
	var req screeningRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	sc, err := s.planner.Create(c.Request().Context(), req.draft())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, savedResponse{
		Screening: sc.ToRecord(),
		Conflicts: records(s.planner.Conflicts(sc)),
	})
}

func (s *Server) updateScreening(c echo.Context) error {
	var patch screening.Patch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c)
	}
	sc, err := s.planner.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, savedResponse{
		Screening: sc.ToRecord(),
		Conflicts: records(s.planner.Conflicts(sc)),
	})
}

func (s *Server) deleteScreening(c echo.Context) error {
	if err := s.planner.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) grid(c echo.Context) error {
	weekParam := c.QueryParam("week")
	if weekParam == "" {
		return c.JSON(http.StatusOK, newGridResponse(s.planner.Grid()))
	}
	t, err := dateutil.ParseDate(weekParam)
	if err != nil {
		return s.fail(c, screening.FieldInvalid("week", err.Error()))
	}
	return c.JSON(http.StatusOK, newGridResponse(s.planner.GridFor(t)))
}

func (s *Server) drop(c echo.Context) error {
	var req dropRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	out, err := s.planner.HandleDrop(c.Request().Context(), req.Target, req.Drop)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(outcomeStatus(out), newOutcomeResponse(out))
}

func (s *Server) doubleClick(c echo.Context) error {
	var req doubleClickRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	out, err := s.planner.HandleDoubleClick(c.Request().Context(), req.Target, req.Film)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(outcomeStatus(out), newOutcomeResponse(out))
}

func (s *Server) overlaps(c echo.Context) error {
	var req overlapRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	candidate, err := screening.New(req.draft(), s.planner.Halls())
	if err != nil {
		return s.fail(c, err)
	}
	candidate.ID = req.ID

	conflicts := s.planner.Conflicts(candidate)
	return c.JSON(http.StatusOK, overlapResponse{
		Overlaps:  len(conflicts) > 0,
		Conflicts: records(conflicts),
	})
}

func (s *Server) catalog(c echo.Context) error {
	films := s.planner.Catalog()
	if films == nil {
		films = screening.Catalog{}
	}
	return c.JSON(http.StatusOK, films)
}

// fail maps domain errors onto HTTP responses.
func (s *Server) fail(c echo.Context, err error) error {
	if verr, ok := screening.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	}
	switch {
	case errors.Is(err, screening.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "screening not found"})
	case errors.Is(err, planner.ErrEmptyDrop):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, planner.ErrPersistence):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "schedule could not be saved, try again"})
	default:
		s.log.WithError(err).Error("unexpected request failure")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

func outcomeStatus(out *planner.Outcome) int {
	if out.Created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func newOutcomeResponse(out *planner.Outcome) outcomeResponse {
	resp := outcomeResponse{Created: out.Created, Conflicts: records(out.Conflicts)}
	if out.Screening != nil {
		r := out.Screening.ToRecord()
		resp.Screening = &r
	}
	if out.Draft != nil {
		resp.Draft = &screeningRequest{
			Title:    out.Draft.Title,
			Date:     out.Draft.Date,
			Time:     out.Draft.Time,
			Duration: out.Draft.Duration,
			Hall:     out.Draft.Hall,
			Genre:    out.Draft.Genre,
		}
	}
	return resp
}

func records(list []*screening.Screening) []screening.Record {
	out := make([]screening.Record, 0, len(list))
	for _, sc := range list {
		out = append(out, sc.ToRecord())
	}
	return out
}
