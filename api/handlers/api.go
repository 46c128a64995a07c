package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mergington-high/school-api/api"
	"github.com/mergington-high/school-api/config"
	"github.com/mergington-high/school-api/databases"
	"github.com/mergington-high/school-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	an := Announcement{
		ADB: databases.NewAnnouncementDatabase(a.dbHelper),
		TDB: databases.NewTeacherDatabase(a.dbHelper),
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// the public listing answers with and without the trailing slash
	r.Handle("/announcements", api.Middleware(http.HandlerFunc(an.ActiveAnnouncementsHandler))).Methods("GET")
	r.Handle("/announcements/", api.Middleware(http.HandlerFunc(an.ActiveAnnouncementsHandler))).Methods("GET")
	r.Handle("/announcements/manage", api.Middleware(http.HandlerFunc(an.AllAnnouncementsHandler))).Methods("GET")
	r.Handle("/announcements", api.Middleware(http.HandlerFunc(an.CreateAnnouncementHandler))).Methods("POST")
	r.Handle("/announcements/{announcement_id}", api.Middleware(http.HandlerFunc(an.UpdateAnnouncementHandler))).Methods("PUT")
	r.Handle("/announcements/{announcement_id}", api.Middleware(http.HandlerFunc(an.DeleteAnnouncementHandler))).Methods("DELETE")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("school-api has connected to the database")

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
