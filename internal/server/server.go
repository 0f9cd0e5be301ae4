// Package server is the HTTP trigger surface for the streak engine: page
// loads and logins hit the passive evaluate endpoints, completion toggles and
// routine changes hit the forced-recompute path.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"focusfit/internal/schedule"
	"focusfit/internal/storage"
	"focusfit/internal/streak"
)

type Server struct {
	store    storage.Provider
	engine   *streak.Engine
	resolver *schedule.Resolver
	log      *slog.Logger
}

func New(store storage.Provider, engine *streak.Engine, resolver *schedule.Resolver) *Server {
	return &Server{
		store:    store,
		engine:   engine,
		resolver: resolver,
		log:      slog.Default(),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/users", s.createUser)
		api.GET("/users/:id/streak", s.getStreak)
		api.GET("/users/:id/day", s.getDay)
		api.POST("/users/:id/items/:itemID/toggle", s.toggleItem)
		api.POST("/users/:id/routines", s.createRoutine)
		api.PUT("/routines/:id", s.updateRoutine)
		api.DELETE("/routines/:id", s.deleteRoutine)
		api.POST("/routines/:id/items", s.addItem)
		api.DELETE("/routines/:id/items/:itemID", s.deleteItem)
	}

	return r
}

func (s *Server) Run(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.Router().Run(addr)
}
