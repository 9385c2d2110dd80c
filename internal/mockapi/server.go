// Package mockapi serves an in-memory Food resource with the same routes and quirks as
// the hosted backend. It backs the -demo mode and the HTTP tests.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Record is a stored item. Keys are kept exactly as clients sent them.
type Record map[string]any

// fault is a queued failure for the next request of a method.
type fault struct {
	status  int
	message string
}

// Server is the in-memory Food API.
type Server struct {
	mu      sync.Mutex
	records map[string]Record
	order   []string
	nextID  int
	faults  map[string][]fault
	latency time.Duration
	hits    map[string]int

	router *gin.Engine
	logger *slog.Logger
}

// New creates an empty server. A nil logger discards.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		records: map[string]Record{},
		nextID:  1,
		faults:  map[string][]fault{},
		hits:    map[string]int{},
		logger:  logger.With("component", "mockapi"),
	}
	s.router = s.routes()
	return s
}

// NewSeeded creates a server holding the sample records.
func NewSeeded(logger *slog.Logger) *Server {
	s := New(logger)
	for _, r := range SampleRecords() {
		s.Insert(r)
	}
	return s
}

// Handler exposes the router, for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr in the background and returns the base URL and a shutdown func.
func (s *Server) Start(addr string) (string, func(context.Context) error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock api stopped", "error", err)
		}
	}()
	s.logger.Info("mock api listening", "addr", ln.Addr().String())
	return "http://" + ln.Addr().String(), srv.Shutdown, nil
}

// Insert stores r, assigning an id and createdAt when missing, and returns the stored copy.
func (s *Server) Insert(r Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(r)
}

func (s *Server) insertLocked(r Record) Record {
	stored := r.clone()
	id, _ := stored["id"].(string)
	if id == "" {
		id = strconv.Itoa(s.nextID)
		stored["id"] = id
	}
	if n, err := strconv.Atoi(id); err == nil && n >= s.nextID {
		s.nextID = n + 1
	}
	if _, ok := stored["createdAt"]; !ok {
		stored["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	}
	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = stored
	return stored.clone()
}

// Len returns the number of stored records.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Record returns a copy of the stored record id.
func (s *Server) Record(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return r.clone(), true
}

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FailNext makes the next request with method fail with status. A non-empty message is
// returned as {"message": ...}; otherwise the body is the bare "Not found"-style string.
func (s *Server) FailNext(method string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method] = append(s.faults[method], fault{status: status, message: message})
}

// SetLatency delays every API response by d.
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Hits returns how many requests were made to path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/img/:file", s.asset)
	r.GET("/logo/:file", s.asset)

	food := r.Group("/Food", s.faultInjector())
	{
		food.GET("", s.list)
		food.POST("", s.create)
		food.GET("/:id", s.get)
		food.PUT("/:id", s.update)
		food.DELETE("/:id", s.remove)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.mu.Lock()
		s.hits[c.Request.URL.Path]++
		s.mu.Unlock()

		c.Next()

		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) faultInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		latency := s.latency
		var f *fault
		if queue := s.faults[c.Request.Method]; len(queue) > 0 {
			f = &queue[0]
			s.faults[c.Request.Method] = queue[1:]
		}
		s.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		if f == nil {
			c.Next()
			return
		}
		if f.message != "" {
			c.AbortWithStatusJSON(f.status, gin.H{"message": f.message})
			return
		}
		c.AbortWithStatusJSON(f.status, http.StatusText(f.status))
	}
}

// GET /Food?field=value
func (s *Server) list(c *gin.Context) {
	filters := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 && values[0] != "" {
			filters[key] = strings.ToLower(values[0])
		}
	}

	s.mu.Lock()
	items := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		if r := s.records[id]; matches(r, filters) {
			items = append(items, r.clone())
		}
	}
	s.mu.Unlock()

	if len(filters) > 0 && len(items) == 0 {
		c.JSON(http.StatusNotFound, "Not found")
		return
	}
	sortByID(items)
	c.JSON(http.StatusOK, items)
}

func matches(r Record, filters map[string]string) bool {
	for key, want := range filters {
		v, ok := r[key]
		if !ok || v == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(fmt.Sprint(v)), want) {
			return false
		}
	}
	return true
}

func sortByID(items []Record) {
	sort.SliceStable(items, func(i, j int) bool {
		a, errA := strconv.Atoi(fmt.Sprint(items[i]["id"]))
		b, errB := strconv.Atoi(fmt.Sprint(items[j]["id"]))
		if errA != nil || errB != nil {
			return false
		}
		return a < b
	})
}

// GET /Food/:id
func (s *Server) get(c *gin.Context) {
	r, ok := s.Record(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /Food
func (s *Server) create(c *gin.Context) {
	var body Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	delete(body, "id")
	delete(body, "createdAt")

	c.JSON(http.StatusCreated, s.Insert(body))
}

// PUT /Food/:id merges the body into the stored record.
func (s *Server) update(c *gin.Context) {
	var body Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	id := c.Param("id")
	s.mu.Lock()
	existing, ok := s.records[id]
	if ok {
		for k, v := range body {
			if k == "id" || k == "createdAt" {
				continue
			}
			existing[k] = v
		}
	}
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, "Not found")
		return
	}
	r, _ := s.Record(id)
	c.JSON(http.StatusOK, r)
}

// DELETE /Food/:id returns the removed record.
func (s *Server) remove(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	r, ok := s.records[id]
	if ok {
		r = r.clone()
		delete(s.records, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, r)
}
