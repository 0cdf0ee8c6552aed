package models

// 决策动作
const (
	DecisionActionApprove = "approve"
	DecisionActionReject  = "reject"
)

// 驳回原因代码，固定枚举
const (
	RejectReasonDataIncorrect    = "data_incorrect"
	RejectReasonAlreadyAddressed = "already_addressed"
	RejectReasonNotUrgent        = "not_urgent"
	RejectReasonRequiresReview   = "requires_review"
	RejectReasonOther            = "other"
)

// Decision 表示用户对某条预警做出的审批记录
type Decision struct {
	BaseModel
	AlertID uint   `gorm:"index;not null" json:"alert_id"`
	UserID  uint   `gorm:"not null" json:"user_id"`
	Action  string `gorm:"type:varchar(20);not null" json:"action"` // approve, reject
	Notes   string `gorm:"type:varchar(500)" json:"notes"`
	Reason  string `gorm:"type:varchar(30)" json:"reason,omitempty"` // 仅驳回时必填
}

// IsValidRejectReason 校验驳回原因是否属于枚举集合
func IsValidRejectReason(reason string) bool {
	switch reason {
	case RejectReasonDataIncorrect,
		RejectReasonAlreadyAddressed,
		RejectReasonNotUrgent,
		RejectReasonRequiresReview,
		RejectReasonOther:
		return true
	}
	return false
}
