package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/paulita842/uptaskgraphql/internal/domain"
	"github.com/paulita842/uptaskgraphql/internal/service/auth"
	"github.com/paulita842/uptaskgraphql/internal/service/project"
	"github.com/paulita842/uptaskgraphql/internal/service/task"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	auth     auth.Service
	project  project.Service
	task     task.Service
	dbHealth func(context.Context) error
}

const healthCheckTimeout = 2 * time.Second

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, authSvc auth.Service, projectSvc project.Service, taskSvc task.Service, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		auth:     authSvc,
		project:  projectSvc,
		task:     taskSvc,
		dbHealth: dbHealth,
	}
	r.register()
	return r
}

// ServeHTTP delegates to the underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("/healthz", r.handleHealthz)
	r.mux.HandleFunc("/auth/signup", r.handleSignup)
	r.mux.HandleFunc("/auth/login", r.handleLogin)
	r.mux.HandleFunc("/projects", r.withIdentity(r.handleProjects))
	r.mux.HandleFunc("/projects/", r.withIdentity(r.handleProjectSubroutes))
	r.mux.HandleFunc("/tasks", r.withIdentity(r.handleTasks))
	r.mux.HandleFunc("/tasks/", r.withIdentity(r.handleTaskSubroutes))
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()
	if err := r.dbHealth(ctx); err != nil {
		r.logger.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload auth.RegisterInput
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	msg, err := r.auth.Register(req.Context(), payload)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"mensaje": msg})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	creds, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

func (r *Router) handleProjects(w http.ResponseWriter, req *http.Request) {
	identity := identityFromContext(req.Context())
	switch req.Method {
	case http.MethodGet:
		projects, err := r.project.List(req.Context(), identity)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		if projects == nil {
			projects = []domain.Project{}
		}
		writeJSON(w, http.StatusOK, projects)
	case http.MethodPost:
		var payload project.Input
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := r.project.Create(req.Context(), identity, payload)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleProjectSubroutes(w http.ResponseWriter, req *http.Request) {
	identity := identityFromContext(req.Context())
	rest := strings.Trim(strings.TrimPrefix(req.URL.Path, "/projects/"), "/")
	parts := strings.Split(rest, "/")

	// GET /projects/{id}/tasks
	if len(parts) == 2 && parts[1] == "tasks" {
		if req.Method != http.MethodGet {
			r.methodNotAllowed(w)
			return
		}
		tasks, err := r.task.List(req.Context(), identity, parts[0])
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		writeJSON(w, http.StatusOK, tasks)
		return
	}

	if len(parts) != 1 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	projectID := parts[0]

	switch req.Method {
	case http.MethodPut:
		var payload project.Input
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := r.project.Update(req.Context(), identity, projectID, payload)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		msg, err := r.project.Delete(req.Context(), identity, projectID)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"mensaje": msg})
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTasks(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	identity := identityFromContext(req.Context())
	var payload task.Input
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	created, err := r.task.Create(req.Context(), identity, payload)
	if err != nil {
		r.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (r *Router) handleTaskSubroutes(w http.ResponseWriter, req *http.Request) {
	identity := identityFromContext(req.Context())
	taskID := strings.Trim(strings.TrimPrefix(req.URL.Path, "/tasks/"), "/")
	if taskID == "" || strings.Contains(taskID, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch req.Method {
	case http.MethodPut:
		// estado rides next to the input fields but is passed to the
		// service as its own argument; the stored flag always comes
		// from here.
		var payload struct {
			Name      string `json:"nombre"`
			ProjectID string `json:"proyecto"`
			Estado    bool   `json:"estado"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		input := task.Input{Name: payload.Name, ProjectID: payload.ProjectID}
		updated, err := r.task.Update(req.Context(), identity, taskID, input, payload.Estado)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		msg, err := r.task.Delete(req.Context(), identity, taskID)
		if err != nil {
			r.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"mensaje": msg})
	default:
		r.methodNotAllowed(w)
	}
}

// writeServiceError maps service failure kinds to status codes. The
// response body carries only the rendered message.
func (r *Router) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateAccount):
		writeError(w, http.StatusConflict, err.Error())
	default:
		r.logger.Error("request failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
