package services

import (
	"errors"

	"reims-http-service/config"
	"reims-http-service/models"

	"gorm.io/gorm"
)

// InterfacePropertyService defines the property service interface
type InterfacePropertyService interface {
	GetAllProperties(page, pageSize int) ([]models.Property, int64, error)
	GetPropertyByID(id uint) (*models.Property, error)
	CreateProperty(property *models.Property) error
	UpdateProperty(id uint, updates map[string]interface{}) (*models.Property, error)
	DeleteProperty(id uint) error
}

// PropertyService 提供物业资产相关服务
type PropertyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPropertyService 创建新的物业服务
func NewPropertyService(db *gorm.DB, cfg *config.Config) InterfacePropertyService {
	return &PropertyService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllProperties 分页获取物业列表
func (s *PropertyService) GetAllProperties(page, pageSize int) ([]models.Property, int64, error) {
	var properties []models.Property
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Property{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	if err := s.DB.Order("property_code ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&properties).Error; err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// GetPropertyByID 根据ID获取物业
func (s *PropertyService) GetPropertyByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

// CreateProperty 创建新物业
func (s *PropertyService) CreateProperty(property *models.Property) error {
	// 验证编码唯一性
	var count int64
	if err := s.DB.Model(&models.Property{}).Where("property_code = ?", property.PropertyCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("物业编码已存在")
	}

	if property.Status == "" {
		property.Status = "active"
	}

	return s.DB.Create(property).Error
}

// UpdateProperty 更新物业信息
func (s *PropertyService) UpdateProperty(id uint, updates map[string]interface{}) (*models.Property, error) {
	property, err := s.GetPropertyByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新编码，需要检查唯一性
	if propertyCode, ok := updates["property_code"].(string); ok && propertyCode != property.PropertyCode {
		var count int64
		if err := s.DB.Model(&models.Property{}).Where("property_code = ?", propertyCode).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("物业编码已存在")
		}
	}

	if err := s.DB.Model(property).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetPropertyByID(id)
}

// DeleteProperty 删除物业
func (s *PropertyService) DeleteProperty(id uint) error {
	property, err := s.GetPropertyByID(id)
	if err != nil {
		return err
	}

	// 仍有未决预警的物业不允许删除
	var pendingCount int64
	if err := s.DB.Model(&models.Alert{}).
		Where("property_id = ? AND status = ?", id, models.AlertStatusPending).
		Count(&pendingCount).Error; err != nil {
		return err
	}
	if pendingCount > 0 {
		return errors.New("该物业仍有待审批的预警，无法删除")
	}

	return s.DB.Delete(property).Error
}
