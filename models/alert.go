package models

import "time"

// 预警严重级别
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// 预警状态
const (
	AlertStatusPending  = "pending"
	AlertStatusApproved = "approved"
	AlertStatusRejected = "rejected"
)

// Alert 表示等待人工审批的异常预警
type Alert struct {
	BaseModel
	Severity    string     `gorm:"type:varchar(20);not null;index" json:"severity"` // critical, warning, info
	Description string     `gorm:"type:varchar(500)" json:"description"`
	PropertyID  uint       `gorm:"index;not null" json:"property_id"` // 关联的物业
	CommitteeID *uint      `gorm:"index" json:"committee_id"`         // 负责审查的委员会
	Value       float64    `gorm:"type:decimal(14,2)" json:"value"`   // 观测值
	Threshold   float64    `gorm:"type:decimal(14,2)" json:"threshold"`
	Status      string     `gorm:"type:varchar(20);default:'pending';index" json:"status"` // pending, approved, rejected
	ApprovedBy  *uint      `json:"approved_by,omitempty"`                                  // 做出决策的用户ID
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`

	// 关联关系
	Property  *Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Committee *Committee `gorm:"foreignKey:CommitteeID" json:"committee,omitempty"`
	Decisions []Decision `gorm:"foreignKey:AlertID" json:"decisions,omitempty"`
}

// IsTerminal 判断预警是否已处于终态。approved/rejected之后不允许再变更
func (a *Alert) IsTerminal() bool {
	return a.Status == AlertStatusApproved || a.Status == AlertStatusRejected
}
