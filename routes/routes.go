package routes

import (
	"time"

	"reims-http-service/config"
	"reims-http-service/controllers"
	_ "reims-http-service/docs"
	"reims-http-service/internal/app/middleware"
	"reims-http-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由和服务容器
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 按IP限流
	api.Use(middleware.IPRateLimiter(50, 100))
	// 注册视图路由表
	registry := registerViewRoutes(api, container)
	// 注册公共路由
	registerPublicRoutes(api, container, registry)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
	// 启动时仅预载标记预载的视图（首页）
	registry.PreloadEager()
}

// registerViewRoutes 注册可导航视图的路由表。
// 视图处理函数延迟构造：启动时只预载首页，其余视图在首次访问或显式预载时解析。
func registerViewRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) *Registry {
	registry := NewRegistry()

	// 首页总览，标记为启动预载
	registry.Register("/", true, func() gin.HandlerFunc {
		return controllers.HandleKPIFunc(container, "getFinancialKPIs")
	})
	registry.Register("/alerts", false, func() gin.HandlerFunc {
		return controllers.HandleAlertFunc(container, "getAlerts")
	})
	registry.Register("/analytics", false, func() gin.HandlerFunc {
		return controllers.HandleKPIFunc(container, "getFinancialKPIs")
	})
	registry.Register("/documents", false, func() gin.HandlerFunc {
		return controllers.HandleDocumentFunc(container, "getDocuments")
	})
	registry.Register("/properties", false, func() gin.HandlerFunc {
		return controllers.HandlePropertyFunc(container, "getProperties")
	})

	views := api.Group("/views")
	views.GET("", registry.Handler("/"))
	views.GET("/alerts", registry.Handler("/alerts"))
	views.GET("/analytics", registry.Handler("/analytics"))
	views.GET("/documents", registry.Handler("/documents"))
	views.GET("/properties", registry.Handler("/properties"))

	// 视图加载状态与显式预载
	views.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{"routes": registry.Entries()})
	})
	views.POST("/preload", func(c *gin.Context) {
		registry.PreloadRoute(c.Query("path"))
		c.JSON(200, gin.H{"message": "ok"})
	})

	return registry
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	registry *Registry,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// KPI路由，带短时响应缓存
	api.GET("/kpis/financial", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}),
		controllers.HandleKPIFunc(container, "getFinancialKPIs"))

	// 文档路由
	api.GET("/documents", controllers.HandleDocumentFunc(container, "getDocuments"))
	api.POST("/documents/upload", controllers.HandleDocumentFunc(container, "uploadDocument"))

	// 物业财务曲线，按propertyID缓存
	api.GET("/properties/:id/financials", middleware.CacheByParams(time.Minute, "id"),
		controllers.HandlePropertyFunc(container, "getPropertyFinancials"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateSystemAdmin())

	// 预警路由
	auth.Group("/alerts").GET("", controllers.HandleAlertFunc(container, "getAlerts"))
	auth.Group("/alerts").GET("/:id", controllers.HandleAlertFunc(container, "getAlertByID"))
	auth.Group("/alerts").POST("/:id/approve", controllers.HandleAlertFunc(container, "approveAlert"))
	auth.Group("/alerts").POST("/:id/reject", controllers.HandleAlertFunc(container, "rejectAlert"))

	// 物业路由
	auth.Group("/properties").GET("", controllers.HandlePropertyFunc(container, "getProperties"))
	auth.Group("/properties").GET("/:id", controllers.HandlePropertyFunc(container, "getProperty"))
	auth.Group("/properties").POST("", controllers.HandlePropertyFunc(container, "createProperty"))
	auth.Group("/properties").PUT("/:id", controllers.HandlePropertyFunc(container, "updateProperty"))
	auth.Group("/properties").DELETE("/:id", controllers.HandlePropertyFunc(container, "deleteProperty"))

	// 委员会路由
	auth.Group("/committees").GET("", controllers.HandleCommitteeFunc(container, "getCommittees"))
	auth.Group("/committees").GET("/:id", controllers.HandleCommitteeFunc(container, "getCommittee"))
	auth.Group("/committees").GET("/:id/alerts", controllers.HandleCommitteeFunc(container, "getCommitteePendingAlerts"))

	// 文档管理路由
	auth.Group("/documents").GET("/:document_id", controllers.HandleDocumentFunc(container, "getDocumentByID"))
	auth.Group("/documents").PUT("/:document_id/status", controllers.HandleDocumentFunc(container, "updateDocumentStatus"))

	// KPI管理路由
	auth.Group("/kpis").POST("/refresh", controllers.HandleKPIFunc(container, "refreshKPIs"))

	// 管理员路由
	auth.Group("/admin").GET("", controllers.HandleAdminFunc(container, "getAdmins"))
	auth.Group("/admin").POST("", controllers.HandleAdminFunc(container, "createAdmin"))
	auth.Group("/admin").DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))
}
