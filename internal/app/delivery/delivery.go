package delivery

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/middleware"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"github.com/supchaser/aria2bot/internal/utils/responses"
	"go.uber.org/zap"
)

type StatusDelivery struct {
	statusReader app.StatusReader
}

func CreateStatusDelivery(statusReader app.StatusReader) *StatusDelivery {
	return &StatusDelivery{
		statusReader: statusReader,
	}
}

// Routes builds the status API router.
func (d *StatusDelivery) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", d.Health).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	serverRouter := apiRouter.PathPrefix("/servers").Subrouter()
	serverRouter.HandleFunc("", d.GetServers).Methods("GET")
	serverRouter.HandleFunc("/{name}/tasks", d.GetServerTasks).Methods("GET")
	serverRouter.HandleFunc("/{name}/tasks/{id}", d.GetServerTask).Methods("GET")

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.PanicMiddleware)

	return router
}

func (d *StatusDelivery) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (d *StatusDelivery) GetServers(w http.ResponseWriter, r *http.Request) {
	const funcName = "StatusDelivery.GetServers"
	logger.Debug("getting servers",
		zap.String("function", funcName),
	)

	servers := d.statusReader.Servers()
	responses.DoJSONResponse(w, map[string]any{
		"count":   len(servers),
		"servers": servers,
	}, http.StatusOK)
}

func (d *StatusDelivery) GetServerTasks(w http.ResponseWriter, r *http.Request) {
	const funcName = "StatusDelivery.GetServerTasks"
	logger.Debug("getting server tasks",
		zap.String("function", funcName),
	)

	name := mux.Vars(r)["name"]
	tasks, err := d.statusReader.Tasks(name)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, map[string]any{
		"server": name,
		"count":  len(tasks),
		"tasks":  tasks,
	}, http.StatusOK)
}

func (d *StatusDelivery) GetServerTask(w http.ResponseWriter, r *http.Request) {
	const funcName = "StatusDelivery.GetServerTask"

	vars := mux.Vars(r)
	logger.Debug("getting server task",
		zap.String("function", funcName),
		zap.String("server", vars["name"]),
		zap.String("gid", vars["id"]),
	)

	task, err := d.statusReader.Task(vars["name"], vars["id"])
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, task, http.StatusOK)
}
