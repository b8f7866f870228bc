// Package server exposes a read-only REST API over a survey engine:
// group inspection, on-demand profile and cross-section builds, and
// per-profile elevation summaries.
package server

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fluvgeo/streamsurvey/internal/log"
	"github.com/fluvgeo/streamsurvey/internal/survey"
)

// Controller represents the REST server controller
type Controller struct {
	ctx    context.Context
	wg     *sync.WaitGroup
	engine *survey.Engine
	Server http.Server
	logger *zap.SugaredLogger
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, engine *survey.Engine, addr string, logger *zap.SugaredLogger) *Controller {
	ctrl := &Controller{
		ctx:    ctx,
		wg:     wg,
		engine: engine,
		logger: logger,
	}

	ctrl.Server = http.Server{
		Addr:         addr,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, ctrl.setupRouter()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return ctrl
}

// StartController starts the REST server and shuts it down when the
// controller context is cancelled.
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/groups", c.GetGroups).Methods(http.MethodGet)
	router.HandleFunc("/profiles", c.GetProfiles).Methods(http.MethodGet)
	router.HandleFunc("/profiles/{name}/summary", c.GetProfileSummary).Methods(http.MethodGet)
	router.HandleFunc("/cross-sections", c.GetCrossSections).Methods(http.MethodGet)

	return router
}
