package services

import (
	"errors"

	"reims-http-service/config"
	"reims-http-service/models"

	"gorm.io/gorm"
)

// InterfaceCommitteeService defines the committee service interface
type InterfaceCommitteeService interface {
	GetAllCommittees() ([]models.Committee, error)
	GetCommitteeByID(id uint) (*models.Committee, error)
	GetCommitteePendingAlerts(id uint) ([]models.Alert, error)
}

// CommitteeService 提供委员会相关服务
type CommitteeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCommitteeService 创建新的委员会服务
func NewCommitteeService(db *gorm.DB, cfg *config.Config) InterfaceCommitteeService {
	return &CommitteeService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllCommittees 获取委员会列表
func (s *CommitteeService) GetAllCommittees() ([]models.Committee, error) {
	var committees []models.Committee
	if err := s.DB.Order("committee_code ASC").Find(&committees).Error; err != nil {
		return nil, err
	}
	return committees, nil
}

// GetCommitteeByID 根据ID获取委员会
func (s *CommitteeService) GetCommitteeByID(id uint) (*models.Committee, error) {
	var committee models.Committee
	if err := s.DB.First(&committee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitteeNotFound
		}
		return nil, err
	}
	return &committee, nil
}

// GetCommitteePendingAlerts 获取委员会待审批的预警
func (s *CommitteeService) GetCommitteePendingAlerts(id uint) ([]models.Alert, error) {
	if _, err := s.GetCommitteeByID(id); err != nil {
		return nil, err
	}

	var alerts []models.Alert
	if err := s.DB.Preload("Property").
		Where("committee_id = ? AND status = ?", id, models.AlertStatusPending).
		Order("created_at ASC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
