package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/captian10/adhan-engine/internal/api"
	"github.com/captian10/adhan-engine/internal/auth"
)

// RegisterRoutes sets up the engine API
func RegisterRoutes(r *gin.Engine, env Environment, ctl *api.EngineController) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	engine := r.Group("/api/engine")
	engine.Use(auth.JWTMiddleware(env.SecretKey))
	api.RegisterEngineRoutes(engine, ctl)
}
