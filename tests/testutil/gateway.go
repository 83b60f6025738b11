package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/chrono-app/chrono/internal/gateway"
	"github.com/chrono-app/chrono/internal/model"
)

const testPrefix = "chrono"

// FakeGateway is an in-memory stand-in for the persistence service. It
// implements the key-value REST surface (bulk-replace mutations) over
// httptest so tests exercise the real gateway client end to end.
type FakeGateway struct {
	mu sync.Mutex

	// Tasks, Sessions, and UserData hold the durable copies.
	Tasks    []model.Task
	Sessions []model.FocusSession
	UserData *model.UserStats

	// Failing makes every request answer 500 with an error envelope.
	Failing bool

	// SaveTaskCalls counts POST /tasks requests.
	SaveTaskCalls int
}

// SetFailing flips the gateway into (or out of) the failure mode.
func (g *FakeGateway) SetFailing(failing bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Failing = failing
}

// StoredTasks returns a copy of the durable task collection.
func (g *FakeGateway) StoredTasks() []model.Task {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.Task, len(g.Tasks))
	copy(out, g.Tasks)
	return out
}

// StoredSessions returns a copy of the durable session collection.
func (g *FakeGateway) StoredSessions() []model.FocusSession {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.FocusSession, len(g.Sessions))
	copy(out, g.Sessions)
	return out
}

// StoredUserData returns the durable aggregate-stats record, if any.
func (g *FakeGateway) StoredUserData() *model.UserStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.UserData == nil {
		return nil
	}
	stats := *g.UserData
	return &stats
}

// NewGateway starts a fake persistence service and returns a real gateway
// client pointed at it. The server shuts down when the test completes.
func NewGateway(t *testing.T) (*gateway.Client, *FakeGateway) {
	t.Helper()

	fake := &FakeGateway{}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	return gateway.NewClient(server.URL, testPrefix, "test-token"), fake
}

func (g *FakeGateway) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /"+testPrefix+"/health", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /"+testPrefix+"/tasks", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		writeJSON(w, map[string]interface{}{"tasks": emptyIfNilTasks(g.Tasks)})
	})

	mux.HandleFunc("POST /"+testPrefix+"/tasks", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		var body struct {
			Tasks []model.Task `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Failed to save tasks", err.Error())
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		g.Tasks = body.Tasks
		g.SaveTaskCalls++
		writeJSON(w, map[string]interface{}{"success": true, "tasks": emptyIfNilTasks(g.Tasks)})
	})

	mux.HandleFunc("DELETE /"+testPrefix+"/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		id := r.PathValue("id")
		g.mu.Lock()
		defer g.mu.Unlock()
		var remaining []model.Task
		for _, task := range g.Tasks {
			if task.ID != id {
				remaining = append(remaining, task)
			}
		}
		g.Tasks = remaining
		writeJSON(w, map[string]interface{}{"success": true, "tasks": emptyIfNilTasks(g.Tasks)})
	})

	mux.HandleFunc("GET /"+testPrefix+"/focus-sessions", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		writeJSON(w, map[string]interface{}{"sessions": emptyIfNilSessions(g.Sessions)})
	})

	mux.HandleFunc("POST /"+testPrefix+"/focus-sessions", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		var body struct {
			Sessions []model.FocusSession `json:"sessions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Failed to save focus sessions", err.Error())
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		g.Sessions = body.Sessions
		writeJSON(w, map[string]interface{}{"success": true, "sessions": emptyIfNilSessions(g.Sessions)})
	})

	mux.HandleFunc("GET /"+testPrefix+"/user-data", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		stats := g.UserData
		if stats == nil {
			stats = &model.UserStats{Badges: []model.Badge{}}
		}
		writeJSON(w, map[string]interface{}{"userData": stats})
	})

	mux.HandleFunc("POST /"+testPrefix+"/user-data", func(w http.ResponseWriter, r *http.Request) {
		if g.fail(w) {
			return
		}
		var body struct {
			UserData *model.UserStats `json:"userData"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Failed to save user data", err.Error())
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		g.UserData = body.UserData
		writeJSON(w, map[string]interface{}{"success": true, "userData": body.UserData})
	})

	return authCheck(mux)
}

// authCheck rejects requests without a bearer credential, mirroring the
// real gateway's contract.
func authCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing bearer credential", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *FakeGateway) fail(w http.ResponseWriter) bool {
	g.mu.Lock()
	failing := g.Failing
	g.mu.Unlock()
	if failing {
		writeError(w, http.StatusInternalServerError, "gateway unavailable", "injected failure")
	}
	return failing
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   msg,
		"details": details,
	})
}

func emptyIfNilTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func emptyIfNilSessions(sessions []model.FocusSession) []model.FocusSession {
	if sessions == nil {
		return []model.FocusSession{}
	}
	return sessions
}
