package http

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vboard/internal/mail"
	"vboard/internal/ws"
)

// SetupRoutes configures middleware and all application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, sender mail.Sender, hub *ws.Hub) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal("SECRET_KEY environment variable not set")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	env := &Env{DB: db, Mailer: sender, Hub: hub, Secret: secret, BaseURL: baseURL}

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	registerRoutes(router, env)

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(hub, c.Writer, c.Request)
	})
}

// registerRoutes wires the API surface onto the router. Split out from
// SetupRoutes so tests can build an Env directly.
func registerRoutes(router *gin.Engine, env *Env) {
	router.POST("/register", env.Register)
	router.GET("/verify-email", env.VerifyEmail)
	router.POST("/login", env.Login)
	router.GET("/check-username", env.CheckUsername)
	router.GET("/check-auth", env.CheckAuth)

	router.GET("/posts", env.ListPosts)
	router.GET("/posts/:id", env.GetPost)
	router.POST("/posts/:id/increment-views", env.IncrementViews)
	router.GET("/posts/:id/comments", env.ListComments)

	authed := router.Group("/")
	authed.Use(RequireAuth(env.Secret))
	{
		authed.POST("/posts", env.CreatePost)
		authed.PUT("/posts/:id", env.EditPost)
		authed.DELETE("/posts/:id", env.DeletePost)
		authed.POST("/posts/:id/like", env.LikePost)
		authed.POST("/posts/:id/comments", env.AddComment)
		authed.GET("/posts/:id/owner", env.IsOwner)
	}
}
