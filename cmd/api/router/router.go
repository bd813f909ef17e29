package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bloglist/cmd/api/handlers"
	"bloglist/cmd/api/metrics"
	"bloglist/cmd/api/middleware"
	"bloglist/cmd/api/services"
	_ "bloglist/docs"
)

// Deps are the collaborators of the HTTP surface. All fields are required.
type Deps struct {
	Blogs    *services.BlogService
	Users    *services.UserService
	Auth     *services.AuthService
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
	Ping     handlers.Pinger
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.RequestMetrics(d.Metrics), middleware.ErrorHandler())

	r.GET("/health", handlers.HealthHandler(d.Ping))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		userExtractor := middleware.UserExtractor(d.Auth)

		blogs := api.Group("/blogs")
		blogs.GET("", handlers.ListBlogsHandler(d.Blogs))
		blogs.GET("/:id", handlers.GetBlogHandler(d.Blogs))
		blogs.POST("", userExtractor, handlers.CreateBlogHandler(d.Blogs, d.Metrics))
		blogs.PUT("/:id/likes", userExtractor, handlers.UpdateLikesHandler(d.Blogs))
		blogs.PUT("/:id/dislikes", userExtractor, handlers.UpdateDislikesHandler(d.Blogs))
		blogs.DELETE("/:id", userExtractor, handlers.DeleteBlogHandler(d.Blogs))

		api.GET("/users", handlers.ListUsersHandler(d.Users))
		api.POST("/users", handlers.CreateUserHandler(d.Users))
		api.POST("/login", handlers.LoginHandler(d.Auth))
	}

	return r
}
