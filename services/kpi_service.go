package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"reims-http-service/config"
	"reims-http-service/models"

	"gorm.io/gorm"
)

// InterfaceKPIService defines the dashboard KPI service interface
type InterfaceKPIService interface {
	GetFinancialKPIs() (*KPISnapshot, error)
	Refresh() (*KPISnapshot, error)
	StartRefreshLoop(ctx context.Context)
}

// KPIValue 单个指标：展示字符串加原始数值
type KPIValue struct {
	Display string  `json:"display"`
	Raw     float64 `json:"raw"`
}

// CoreKPIs 仪表盘核心指标
type CoreKPIs struct {
	PortfolioValue     KPIValue `json:"portfolio_value"`
	TotalProperties    KPIValue `json:"total_properties"`
	OccupiedProperties KPIValue `json:"occupied_properties"`
	OccupancyRate      KPIValue `json:"occupancy_rate"`
	MonthlyIncome      KPIValue `json:"monthly_income"`
}

// KPISnapshot GET /api/kpis/financial 的响应体
type KPISnapshot struct {
	CoreKPIs    CoreKPIs  `json:"core_kpis"`
	GeneratedAt time.Time `json:"generated_at"`
}

// KPIService 聚合物业数据生成仪表盘指标，结果缓存在Redis，
// 由后台刷新循环定期重算
type KPIService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewKPIService 创建新的KPI服务
func NewKPIService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceKPIService {
	return &KPIService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// GetFinancialKPIs 返回KPI快照，优先读缓存，缓存缺失时现算
func (s *KPIService) GetFinancialKPIs() (*KPISnapshot, error) {
	if s.Redis != nil {
		var cached KPISnapshot
		if err := s.Redis.GetKPISnapshot(&cached); err == nil && !cached.GeneratedAt.IsZero() {
			return &cached, nil
		}
	}
	return s.Refresh()
}

// Refresh 重新聚合KPI并写入缓存
func (s *KPIService) Refresh() (*KPISnapshot, error) {
	type aggregate struct {
		PortfolioValue float64
		TotalCount     int64
		OccupiedCount  int64
		MonthlyIncome  float64
	}

	var agg aggregate
	row := s.DB.Model(&models.Property{}).
		Where("status = ?", "active").
		Select("COALESCE(SUM(market_value),0) AS portfolio_value," +
			" COUNT(*) AS total_count," +
			" COALESCE(SUM(occupied),0) AS occupied_count," +
			" COALESCE(SUM(CASE WHEN occupied THEN monthly_rent ELSE 0 END),0) AS monthly_income")
	if err := row.Scan(&agg).Error; err != nil {
		return nil, err
	}

	occupancyRate := 0.0
	if agg.TotalCount > 0 {
		occupancyRate = float64(agg.OccupiedCount) / float64(agg.TotalCount) * 100
	}

	snapshot := &KPISnapshot{
		CoreKPIs: CoreKPIs{
			PortfolioValue: KPIValue{
				Display: formatCurrency(agg.PortfolioValue),
				Raw:     agg.PortfolioValue,
			},
			TotalProperties: KPIValue{
				Display: fmt.Sprintf("%d", agg.TotalCount),
				Raw:     float64(agg.TotalCount),
			},
			OccupiedProperties: KPIValue{
				Display: fmt.Sprintf("%d", agg.OccupiedCount),
				Raw:     float64(agg.OccupiedCount),
			},
			OccupancyRate: KPIValue{
				Display: fmt.Sprintf("%.1f%%", occupancyRate),
				Raw:     occupancyRate,
			},
			MonthlyIncome: KPIValue{
				Display: formatCurrency(agg.MonthlyIncome),
				Raw:     agg.MonthlyIncome,
			},
		},
		GeneratedAt: time.Now(),
	}

	if s.Redis != nil {
		ttl := time.Duration(s.Config.KPIRefreshInterval*2) * time.Second
		if err := s.Redis.CacheKPISnapshot(snapshot, ttl); err != nil {
			log.Printf("[KPI] 缓存快照失败: %v", err)
		}
	}

	return snapshot, nil
}

// StartRefreshLoop 启动后台刷新循环，ctx取消时停止。
// 确保服务关停后不会残留定时器
func (s *KPIService) StartRefreshLoop(ctx context.Context) {
	interval := time.Duration(s.Config.KPIRefreshInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[KPI] 刷新循环已停止")
				return
			case <-ticker.C:
				if _, err := s.Refresh(); err != nil {
					log.Printf("[KPI] 定时刷新失败: %v", err)
				}
			}
		}
	}()
}

// formatCurrency 生成仪表盘展示用的金额字符串，如 $1.2M / $850.0K / $320
func formatCurrency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
