package httpapi

import (
	"net/http"

	"github.com/aloks98/tasktracker"
	authchi "github.com/aloks98/tasktracker/middleware/chi"
)

func (a *api) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": RootMessage})
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Ping(r.Context()); err != nil {
		logFor(r).Error().Err(err).Msg("health check failed")
		writeDetail(w, http.StatusServiceUnavailable, "Service Unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !a.bind(w, r, &req) {
		return
	}

	u, err := a.svc.Register(r.Context(), tasktracker.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.bind(w, r, &req) {
		return
	}

	tok, err := a.svc.Login(r.Context(), tasktracker.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (a *api) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !a.bind(w, r, &req) {
		return
	}

	task, err := a.svc.CreateTask(r.Context(), authchi.User(r), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *api) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := a.svc.ListTasks(r.Context(), authchi.User(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (a *api) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var req taskRequest
	if !a.bind(w, r, &req) {
		return
	}

	task, err := a.svc.UpdateTask(r.Context(), authchi.User(r), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *api) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := a.svc.DeleteTask(r.Context(), authchi.User(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := authchi.URLParamInt64(r, "id")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "task id must be an integer")
		return 0, false
	}
	return id, true
}
