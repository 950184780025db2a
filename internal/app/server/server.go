// Package server exposes the dashboard's read API: the JSON surface
// consumed by the external rendering shell. Every handler reads through the
// TTL cache, so an auto-refreshing viewer cannot amplify store load.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/analytics"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/query"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/report"
)

type Server struct {
	reader          *query.CachedReader
	obs             ports.Observability
	liveFeedLimit   int
	confidenceBins  int
	refreshInterval time.Duration
	now             func() time.Time
}

type Option func(*Server)

// WithLiveFeedLimit caps the default number of rows in the live feed.
func WithLiveFeedLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.liveFeedLimit = n
		}
	}
}

// WithConfidenceBins sets the confidence histogram resolution.
func WithConfidenceBins(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.confidenceBins = n
		}
	}
}

// WithRefreshInterval advertises the viewer poll cadence on the live feed.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithClock fixes report generation time for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

func New(reader *query.CachedReader, obs ports.Observability, opts ...Option) *Server {
	s := &Server{
		reader:          reader,
		obs:             obs,
		liveFeedLimit:   15,
		confidenceBins:  analytics.DefaultConfidenceBins,
		refreshInterval: 5 * time.Second,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine. gin's Recovery keeps a panicking handler
// from taking the dashboard down with it.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.GET("/live", s.handleLive)
	api.GET("/faults", s.handleFaults)
	api.GET("/confidence", s.handleConfidence)
	api.GET("/locations", s.handleLocations)
	api.GET("/sensors/:channel", s.handleSensorSeries)
	api.GET("/summary", s.handleSummary)
	api.GET("/report", s.handleReport)
	api.GET("/report/download", s.handleReportDownload)

	return r
}

// liveEntry mirrors the dashboard's live feed row: confidence is already
// rendered as a percentage string.
type liveEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	FaultLabel  string    `json:"fault_label"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Confidence  string    `json:"confidence"`
	SourceFile  string    `json:"source_file"`
}

func (s *Server) handleLive(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}

	limit := s.liveFeedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		limit = n
	}
	if limit > len(snapshot) {
		limit = len(snapshot)
	}

	entries := make([]liveEntry, 0, limit)
	for _, v := range snapshot[:limit] {
		location := v.Location
		if location == "" {
			location = domain.LocationUnknown
		}
		entries = append(entries, liveEntry{
			Timestamp:   v.Timestamp,
			FaultLabel:  v.FaultLabel,
			Location:    location,
			Description: v.Description,
			Confidence:  fmt.Sprintf("%.2f%%", v.Confidence*100),
			SourceFile:  v.SourceFile,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"verdicts":           entries,
		"refresh_interval_s": s.refreshInterval.Seconds(),
	})
}

func (s *Server) handleFaults(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"faults": analytics.FaultFrequency(snapshot)})
}

func (s *Server) handleConfidence(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"bins": analytics.ConfidenceDistribution(snapshot, s.confidenceBins)})
}

func (s *Server) handleLocations(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": analytics.LocationHistogram(snapshot)})
}

func (s *Server) handleSensorSeries(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}

	channel := c.Param("channel")
	points, err := analytics.SensorSeries(snapshot, channel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "channels": domain.SensorChannels})
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": channel, "points": points})
}

func (s *Server) handleSummary(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}

	summary, err := analytics.Summarize(snapshot)
	if errors.Is(err, analytics.ErrNoData) {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "summary": summary})
}

func (s *Server) handleReport(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}
	doc := report.Compile(snapshot, s.now())
	s.obs.IncCounter("pmsm_reports_compiled_total", 1)
	c.JSON(http.StatusOK, doc)
}

func (s *Server) handleReportDownload(c *gin.Context) {
	snapshot, ok := s.fetch(c)
	if !ok {
		return
	}
	doc := report.Compile(snapshot, s.now())
	s.obs.IncCounter("pmsm_reports_compiled_total", 1)

	name := report.Filename(doc.GeneratedAt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc.RenderText())
}

// fetch reads through the cache and translates a failed read into 503 so
// the viewer can distinguish "no data yet" (200, empty) from "read failed".
func (s *Server) fetch(c *gin.Context) ([]*domain.Verdict, bool) {
	snapshot, err := s.reader.FetchAll(c.Request.Context())
	if err != nil {
		s.obs.LogError("snapshot_fetch_failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data unavailable"})
		return nil, false
	}
	return snapshot, true
}
