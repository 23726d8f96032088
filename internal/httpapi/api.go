// Package httpapi maps the tasktracker HTTP surface onto the core service.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/aloks98/tasktracker"
	"github.com/aloks98/tasktracker/internal/logutil"
	"github.com/aloks98/tasktracker/middleware"
	authchi "github.com/aloks98/tasktracker/middleware/chi"
	"github.com/aloks98/tasktracker/store"
)

// RootMessage is the body of GET /.
const RootMessage = "Task Manager API is online."

// Service is the part of *tasktracker.Service the HTTP layer drives.
type Service interface {
	middleware.Authenticator

	Register(ctx context.Context, in tasktracker.RegisterInput) (*store.User, error)
	Login(ctx context.Context, in tasktracker.LoginInput) (*tasktracker.AccessToken, error)
	CreateTask(ctx context.Context, user *store.User, in tasktracker.TaskInput) (*store.Task, error)
	ListTasks(ctx context.Context, user *store.User) ([]*store.Task, error)
	UpdateTask(ctx context.Context, user *store.User, taskID int64, in tasktracker.TaskInput) (*store.Task, error)
	DeleteTask(ctx context.Context, user *store.User, taskID int64) error
	Ping(ctx context.Context) error
}

var _ Service = (*tasktracker.Service)(nil)

type api struct {
	svc      Service
	validate *validator.Validate
}

// New returns the router serving the task tracker API. Requests are logged
// to log with their request id.
func New(svc Service, log zerolog.Logger) http.Handler {
	a := &api{svc: svc, validate: newValidator()}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(hlog.NewHandler(log))
	r.Use(requestLogger)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", a.root)
	r.Get("/healthz", a.health)
	r.Post("/register", a.register)
	r.Post("/login", a.login)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authchi.Authenticate(svc, nil))
		r.Post("/", a.createTask)
		r.Get("/", a.listTasks)
		r.Put("/{id}", a.updateTask)
		r.Delete("/{id}", a.deleteTask)
	})

	return r
}

// requestLogger tags the request logger with the request id and exposes it
// to the core through logutil.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r).With().Str("req_id", chimw.GetReqID(r.Context())).Logger()
		ctx := log.WithContext(r.Context())
		ctx = logutil.WithLogger(ctx, log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
