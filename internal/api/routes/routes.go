package routes

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/api/handlers"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/api/middleware"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tokens *utils.TokenIssuer

	Auth        *handlers.AuthHandler
	CV          *handlers.CVHandler
	Skill       *handlers.SkillHandler
	Industry    *handlers.IndustryHandler
	Stats       *handlers.StatsHandler
	Company     *handlers.CompanyHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	WS          *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/ws/stats", d.WS.Stats)

	api := r.Group("/api")

	// public
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.GET("/stats", d.Stats.Get)
	api.GET("/skills", d.Skill.List)
	api.GET("/industries", d.Industry.List)
	api.GET("/jobs", d.Job.List)

	// any authenticated user
	auth := api.Group("")
	auth.Use(middleware.JWTAuth(d.Tokens))

	auth.GET("/auth/me", d.Auth.Me)
	auth.PUT("/auth/me", d.Auth.UpdateMe)
	auth.DELETE("/auth/me", d.Auth.DeleteMe)

	auth.POST("/cvs", d.CV.Upload)
	auth.GET("/cvs", d.CV.List)
	auth.GET("/cvs/ingestions", d.CV.History)
	auth.GET("/cvs/:id", d.CV.Get)
	auth.GET("/cvs/:id/file-url", d.CV.FileURL)

	auth.GET("/user/skills", d.Skill.Mine)
	auth.POST("/user/skills", d.Skill.AddMine)

	auth.POST("/match", d.Application.Match)
	auth.POST("/applications", d.Application.Apply)
	auth.DELETE("/applications/:id", d.Application.Delete)

	// recruiters and admins
	rec := auth.Group("")
	rec.Use(middleware.RequireRecruiter())

	rec.POST("/companies", d.Company.Create)
	rec.GET("/companies", d.Company.List)
	rec.POST("/jobs", d.Job.Create)
	rec.DELETE("/jobs/:id", d.Job.Delete)
	rec.GET("/recruiter/jobs", d.Job.Mine)
	rec.GET("/jobs/:id/applications", d.Job.Applications)

	// admins
	admin := auth.Group("")
	admin.Use(middleware.RequireAdmin())

	admin.PUT("/stats", d.Stats.Set)
	admin.POST("/stats/recompute", d.Stats.Recompute)
	admin.POST("/skills", d.Skill.Create)
	admin.POST("/industries", d.Industry.Create)
	admin.DELETE("/companies/:id", d.Company.Delete)
	admin.DELETE("/users/:id", d.Auth.DeleteUser)
	admin.POST("/users/:id/restore", d.Auth.RestoreUser)
	admin.POST("/companies/:id/restore", d.Company.Restore)
	admin.POST("/jobs/:id/restore", d.Job.Restore)
	admin.POST("/applications/:id/restore", d.Application.Restore)
}
