// Package apitest provides an in-memory stand-in for the message backend,
// for use in tests. It mirrors the backend's observable behaviour: ids are
// assigned incrementally, unknown ids answer 404.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/debemdeboas/msgboard/internal/model"
)

// Request is one request observed by the server.
type Request struct {
	Method string
	Path   string
	Body   string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	messages []model.Message
	nextID   model.MessageID
	requests []Request
	failures map[string]int
}

// NewServer starts a server seeded with messages and closes it when t ends.
func NewServer(t testing.TB, messages ...model.Message) *Server {
	s := &Server{failures: make(map[string]int)}
	s.Reset(messages...)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /messages/{$}", s.list)
	mux.HandleFunc("POST /messages/{$}", s.create)
	mux.HandleFunc("PUT /messages/{id}", s.update)
	mux.HandleFunc("DELETE /messages/{id}", s.delete)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// Reset replaces the stored collection and forgets recorded requests.
func (s *Server) Reset(messages ...model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append([]model.Message(nil), messages...)
	s.nextID = 1
	for _, m := range messages {
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}
	s.requests = nil
}

// Fail makes the next request with method answer status instead of being served.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		status, fail := s.failures[r.Method]
		delete(s.failures, r.Method)
		s.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	messages := s.Messages()
	if messages == nil {
		messages = []model.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var body model.MessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	msg := model.Message{ID: s.nextID, Content: body.Content}
	s.nextID++
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body model.MessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	idx := model.IndexOf(s.messages, id)
	if idx >= 0 {
		s.messages[idx].Content = body.Content
	}
	s.mu.Unlock()

	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Message not found"})
		return
	}
	writeJSON(w, http.StatusOK, model.Message{ID: id, Content: body.Content})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	idx := model.IndexOf(s.messages, id)
	if idx >= 0 {
		s.messages = append(s.messages[:idx], s.messages[idx+1:]...)
	}
	s.mu.Unlock()

	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Message not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Message deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (model.MessageID, bool) {
	v, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid id"})
		return 0, false
	}
	return model.MessageID(v), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
