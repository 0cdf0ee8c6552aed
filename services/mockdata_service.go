package services

import (
	"errors"
	"math"
	"time"

	"reims-http-service/config"
	"reims-http-service/models"

	"gorm.io/gorm"
)

// InterfaceMockDataService defines the mock financial data service interface
type InterfaceMockDataService interface {
	GetMonthlyFinancials(propertyID uint) ([]models.MonthlyFinancialPoint, error)
}

// 月份名称，顺序即月份索引0-11
var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// GenerateMonthlyFinancials 为缺少真实历史数据的物业生成可复现的12个月收支曲线。
// 纯函数：相同输入永远产生逐位相同的序列，不做任何I/O。
//
// 算法：基础支出为月租金的60%；10-12月收入乘以1.05的季节系数，
// 1-3月乘以0.97；每月再叠加以propertyID为种子的正弦扰动。
func GenerateMonthlyFinancials(monthlyRent float64, propertyID int) []models.MonthlyFinancialPoint {
	if monthlyRent < 0 {
		monthlyRent = 0
	}
	if propertyID <= 0 {
		propertyID = 1
	}

	baseExpense := monthlyRent * 0.6
	seed := float64(propertyID) * 1000

	points := make([]models.MonthlyFinancialPoint, 0, 12)
	for m := 0; m < 12; m++ {
		seasonal := 1.0
		if m >= 9 {
			seasonal = 1.05
		} else if m <= 2 {
			seasonal = 0.97
		}

		revenueJitter := 1 + 0.05*math.Sin(seed+float64(m)*50)
		expenseJitter := 1 + 0.08*math.Sin(seed+float64(m)*75)

		revenue := int(math.Round(monthlyRent * seasonal * revenueJitter))
		expenses := int(math.Round(baseExpense * expenseJitter))

		points = append(points, models.MonthlyFinancialPoint{
			Month:    monthNames[m],
			Revenue:  revenue,
			Expenses: expenses,
			Profit:   revenue - expenses,
		})
	}

	return points
}

// MockDataService 为仪表盘提供月度财务序列，优先使用真实记录
type MockDataService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewMockDataService 创建新的财务序列服务
func NewMockDataService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceMockDataService {
	return &MockDataService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// GetMonthlyFinancials 返回物业最近年度的12个月收支序列。
// 有真实财务记录时按月份索引填充，缺失月份以及完全没有记录的物业
// 落回到确定性的生成序列，保证仪表盘始终有数据可画。
func (s *MockDataService) GetMonthlyFinancials(propertyID uint) ([]models.MonthlyFinancialPoint, error) {
	// 先查缓存
	if s.Redis != nil {
		var cached []models.MonthlyFinancialPoint
		if err := s.Redis.GetFinancialSeries(propertyID, &cached); err == nil && len(cached) == 12 {
			return cached, nil
		}
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	points := GenerateMonthlyFinancials(property.MonthlyRent, int(property.ID))

	// 用当年已有的真实记录覆盖生成值
	var records []models.FinancialRecord
	year := time.Now().Year()
	if err := s.DB.Where("property_id = ? AND year = ?", propertyID, year).
		Order("month_index ASC").Find(&records).Error; err == nil {
		for _, rec := range records {
			if rec.MonthIndex < 0 || rec.MonthIndex > 11 {
				continue
			}
			revenue := int(math.Round(rec.Revenue))
			expenses := int(math.Round(rec.Expenses))
			points[rec.MonthIndex] = models.MonthlyFinancialPoint{
				Month:    monthNames[rec.MonthIndex],
				Revenue:  revenue,
				Expenses: expenses,
				Profit:   revenue - expenses,
			}
		}
	}

	if s.Redis != nil {
		// 缓存失败不影响返回
		_ = s.Redis.CacheFinancialSeries(propertyID, points, 5*time.Minute)
	}

	return points, nil
}
