package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"reims-http-service/config"
	"reims-http-service/models"

	"gorm.io/gorm"
)

// InterfaceAlertService defines the alert review service interface
type InterfaceAlertService interface {
	GetAlerts(query *AlertQuery) ([]models.Alert, int64, error)
	GetAlertByID(id uint) (*models.Alert, error)
	CreateAlert(alert *models.Alert) error
	Approve(ctx context.Context, alertID, userID uint, notes string) (*models.Alert, error)
	Reject(ctx context.Context, alertID, userID uint, notes, reason string) (*models.Alert, error)
	IsProcessing(alertID uint) bool
}

// AlertQuery 预警列表查询条件
type AlertQuery struct {
	Status     string
	Severity   string
	PropertyID uint
	PageNum    int
	PageSize   int
}

// AlertService 管理预警的审批生命周期：
// pending -> approved 或 pending -> rejected，终态不可再变更。
// 同一预警同一时间至多允许一个决策请求，重复提交会被拒绝而不是排队。
type AlertService struct {
	DB       *gorm.DB
	Config   *config.Config
	Client   InterfaceDecisionClient
	Notifier InterfaceNotificationService

	// 记录决策处理中的预警ID，保证单预警决策串行
	inFlight sync.Map
}

// NewAlertService 创建新的预警审批服务
func NewAlertService(db *gorm.DB, cfg *config.Config, client InterfaceDecisionClient, notifier InterfaceNotificationService) InterfaceAlertService {
	return &AlertService{
		DB:       db,
		Config:   cfg,
		Client:   client,
		Notifier: notifier,
	}
}

// GetAlerts 获取预警列表，支持按状态、级别、物业过滤
func (s *AlertService) GetAlerts(query *AlertQuery) ([]models.Alert, int64, error) {
	db := s.DB.Model(&models.Alert{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Severity != "" {
		db = db.Where("severity = ?", query.Severity)
	}
	if query.PropertyID > 0 {
		db = db.Where("property_id = ?", query.PropertyID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageNum := query.PageNum
	pageSize := query.PageSize
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var alerts []models.Alert
	if err := db.Preload("Property").Preload("Committee").
		Order("created_at DESC").
		Offset((pageNum - 1) * pageSize).Limit(pageSize).
		Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// GetAlertByID 根据ID获取预警
func (s *AlertService) GetAlertByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.DB.Preload("Property").Preload("Committee").Preload("Decisions").
		First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// CreateAlert 创建预警记录（检测流程或种子数据使用）
func (s *AlertService) CreateAlert(alert *models.Alert) error {
	if alert.Status == "" {
		alert.Status = models.AlertStatusPending
	}
	return s.DB.Create(alert).Error
}

// IsProcessing 判断预警是否有决策请求处理中
func (s *AlertService) IsProcessing(alertID uint) bool {
	_, processing := s.inFlight.Load(alertID)
	return processing
}

// Approve 批准预警。成功后状态变为approved并记录审批人；
// 任何一步失败都不会改变本地状态，调用方可以直接重试。
func (s *AlertService) Approve(ctx context.Context, alertID, userID uint, notes string) (*models.Alert, error) {
	decision := &models.Decision{
		AlertID: alertID,
		UserID:  userID,
		Action:  models.DecisionActionApprove,
		Notes:   notes,
	}
	return s.decide(ctx, decision)
}

// Reject 驳回预警。原因代码缺失或不在枚举范围内时立即返回校验错误，
// 不会产生任何网络调用或数据库写入。
func (s *AlertService) Reject(ctx context.Context, alertID, userID uint, notes, reason string) (*models.Alert, error) {
	// 校验先于一切副作用
	if reason == "" {
		return nil, ErrRejectReasonRequired
	}
	if !models.IsValidRejectReason(reason) {
		return nil, ErrRejectReasonInvalid
	}

	decision := &models.Decision{
		AlertID: alertID,
		UserID:  userID,
		Action:  models.DecisionActionReject,
		Notes:   notes,
		Reason:  reason,
	}
	return s.decide(ctx, decision)
}

// decide 执行一次决策：占用单预警的处理槽位，检查状态，
// 转发上游，最后在事务中落库
func (s *AlertService) decide(ctx context.Context, decision *models.Decision) (*models.Alert, error) {
	// 同一预警只允许一个决策请求在途
	if _, loaded := s.inFlight.LoadOrStore(decision.AlertID, struct{}{}); loaded {
		return nil, ErrDecisionInFlight
	}
	defer s.inFlight.Delete(decision.AlertID)

	var alert models.Alert
	if err := s.DB.First(&alert, decision.AlertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}

	if alert.IsTerminal() {
		return nil, ErrAlertAlreadyResolved
	}

	// 先转发上游。失败时本地状态保持pending，操作可重试
	if s.Client != nil {
		if err := s.Client.SubmitDecision(ctx, decision); err != nil {
			return nil, err
		}
	}

	newStatus := models.AlertStatusApproved
	if decision.Action == models.DecisionActionReject {
		newStatus = models.AlertStatusRejected
	}
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(decision).Error; err != nil {
			return err
		}

		// WHERE带status条件，和并发写入竞争时保证终态只被写入一次
		result := tx.Model(&models.Alert{}).
			Where("id = ? AND status = ?", alert.ID, models.AlertStatusPending).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"approved_by": decision.UserID,
				"resolved_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlertAlreadyResolved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	alert.Status = newStatus
	alert.ApprovedBy = &decision.UserID
	alert.ResolvedAt = &now

	// 通知失败只记录，不影响已完成的决策
	if s.Notifier != nil {
		s.Notifier.PublishDecisionEvent(&alert, decision)
	}

	return &alert, nil
}
