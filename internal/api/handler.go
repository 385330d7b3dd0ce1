// Package api serves the read-only JSON endpoints used by web front ends.
package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
)

// errBadRequest marks query problems that map to 400.
var errBadRequest = errors.New("bad request")

type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }
func (e badRequest) Unwrap() error { return errBadRequest }

type Handler struct {
	db     *sql.DB
	limits pregnancy.LookAheadLimits
	now    func() time.Time
}

func NewHandler(db *sql.DB, limits pregnancy.LookAheadLimits) *Handler {
	return &Handler{db: db, limits: limits, now: time.Now}
}

// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/dashboard?date=YYYY-MM-DD&day=N&offset=N
func (h *Handler) Dashboard(c *gin.Context) {
	status, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, status)
}

// GET /api/timeline?date=YYYY-MM-DD&day=N&offset=N
func (h *Handler) Timeline(c *gin.Context) {
	status, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, status.Navigation)
}

// GET /api/fruit?day=N
func (h *Handler) Fruit(c *gin.Context) {
	day := 0
	if raw := strings.TrimSpace(c.Query("day")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > pregnancy.TermDays {
			writeError(c, badRequest{msg: "day must be an integer between 1 and 280"})
			return
		}
		day = n
	} else {
		status, ok := h.dashboard(c)
		if !ok {
			return
		}
		day = status.Navigation.ActualDay
	}
	rec, err := service.FruitForDay(h.db, day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GET /api/weight/status
func (h *Handler) WeightStatus(c *gin.Context) {
	status, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, status.Weight)
}

// GET /api/weight/weeks
func (h *Handler) WeightWeeks(c *gin.Context) {
	profile, err := service.GetProfile(h.db)
	if err != nil {
		writeError(c, err)
		return
	}
	weeks, err := service.WeeklyWeights(h.db, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

func (h *Handler) dashboard(c *gin.Context) (*service.DashboardStatus, bool) {
	in, err := h.dashboardInput(c)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	status, err := service.Dashboard(h.db, in)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return status, true
}

func (h *Handler) dashboardInput(c *gin.Context) (service.DashboardInput, error) {
	limits := h.limits
	in := service.DashboardInput{Ref: h.now(), Limits: &limits}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		ref, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return in, badRequest{msg: "invalid date (expected YYYY-MM-DD)"}
		}
		in.Ref = ref
	}
	day, err := intQuery(c, "day")
	if err != nil {
		return in, err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return in, err
	}
	if day != 0 && offset != 0 {
		return in, badRequest{msg: "day cannot be combined with offset"}
	}
	in.TargetDay = day
	in.Offset = offset
	return in, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest{msg: "invalid " + name}
	}
	return n, nil
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, errBadRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
