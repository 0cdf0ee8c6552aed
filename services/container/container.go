package container

import (
	"context"
	"log"
	"sync"
	"time"

	"reims-http-service/config"
	"reims-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 上游与通知
	decisionClient      services.InterfaceDecisionClient
	notificationService services.InterfaceNotificationService

	// 业务服务
	adminService     services.InterfaceAdminService
	alertService     services.InterfaceAlertService
	propertyService  services.InterfacePropertyService
	committeeService services.InterfaceCommitteeService
	documentService  services.InterfaceDocumentService
	kpiService       services.InterfaceKPIService
	mockDataService  services.InterfaceMockDataService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)

	// 初始化上游决策客户端
	c.decisionClient = services.NewDecisionClient(c.config)

	// 初始化MQTT通知服务
	c.notificationService = services.NewNotificationService(c.config)

	// 连接MQTT服务器，失败不阻塞启动
	if err := c.notificationService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v", err)
	}

	// 初始化业务服务
	c.adminService = services.NewAdminService(c.db, c.config)
	c.alertService = services.NewAlertService(c.db, c.config, c.decisionClient, c.notificationService)
	c.propertyService = services.NewPropertyService(c.db, c.config)
	c.committeeService = services.NewCommitteeService(c.db, c.config)
	c.documentService = services.NewDocumentService(c.db, c.config)
	c.kpiService = services.NewKPIService(c.db, c.config, c.redisService)
	c.mockDataService = services.NewMockDataService(c.db, c.config, c.redisService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "decision_client":
		return c.decisionClient
	case "notification":
		return c.notificationService
	case "admin":
		return c.adminService
	case "alert":
		return c.alertService
	case "property":
		return c.propertyService
	case "committee":
		return c.committeeService
	case "document":
		return c.documentService
	case "kpi":
		return c.kpiService
	case "mock_data":
		return c.mockDataService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetJWTService 获取JWT服务
func (c *ServiceContainer) GetJWTService() services.InterfaceJWTService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jwtService
}

// GetRedisService 获取Redis服务
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}

// GetNotificationService 获取通知服务
func (c *ServiceContainer) GetNotificationService() services.InterfaceNotificationService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notificationService
}

// GetAdminService 获取管理员服务
func (c *ServiceContainer) GetAdminService() services.InterfaceAdminService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adminService
}

// GetAlertService 获取预警审批服务
func (c *ServiceContainer) GetAlertService() services.InterfaceAlertService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.alertService
}

// GetPropertyService 获取物业服务
func (c *ServiceContainer) GetPropertyService() services.InterfacePropertyService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.propertyService
}

// GetCommitteeService 获取委员会服务
func (c *ServiceContainer) GetCommitteeService() services.InterfaceCommitteeService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.committeeService
}

// GetDocumentService 获取文档服务
func (c *ServiceContainer) GetDocumentService() services.InterfaceDocumentService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.documentService
}

// GetKPIService 获取KPI服务
func (c *ServiceContainer) GetKPIService() services.InterfaceKPIService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kpiService
}

// GetMockDataService 获取财务序列服务
func (c *ServiceContainer) GetMockDataService() services.InterfaceMockDataService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mockDataService
}
