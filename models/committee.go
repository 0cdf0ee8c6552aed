package models

// Committee 表示负责审查预警的委员会
type Committee struct {
	BaseModel
	CommitteeName string `gorm:"type:varchar(100);not null" json:"committee_name"`       // 委员会名称，如"资产审查委员会"
	CommitteeCode string `gorm:"type:varchar(20);unique;not null" json:"committee_code"` // 委员会编码，如"C001"
	ContactEmail  string `gorm:"type:varchar(100)" json:"contact_email"`
	Status        string `gorm:"type:varchar(20);default:'active'" json:"status"` // 状态：active, inactive

	// 关联关系
	Properties []Property `gorm:"foreignKey:CommitteeID" json:"properties,omitempty"` // 委员会负责的物业（一对多）
	Alerts     []Alert    `gorm:"foreignKey:CommitteeID" json:"alerts,omitempty"`     // 委员会待审的预警（一对多）
}
