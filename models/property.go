package models

// Property 表示物业资产信息
type Property struct {
	BaseModel
	PropertyName string  `gorm:"type:varchar(100);not null" json:"property_name"`       // 物业名称，如"华庭公寓A座"
	PropertyCode string  `gorm:"type:varchar(20);unique;not null" json:"property_code"` // 物业编码，如"P001"
	Address      string  `gorm:"type:varchar(200)" json:"address"`
	MarketValue  float64 `gorm:"type:decimal(14,2);default:0" json:"market_value"` // 市场估值
	MonthlyRent  float64 `gorm:"type:decimal(12,2);default:0" json:"monthly_rent"` // 月租金
	Occupied     bool    `gorm:"default:false" json:"occupied"`                    // 是否已出租
	CommitteeID  *uint   `gorm:"index" json:"committee_id"`                        // 负责审查的委员会
	Status       string  `gorm:"type:varchar(20);default:'active'" json:"status"`  // 状态：active, inactive

	// 关联关系
	Alerts           []Alert           `gorm:"foreignKey:PropertyID" json:"alerts,omitempty"`            // 物业下的预警（一对多）
	Documents        []Document        `gorm:"foreignKey:PropertyID" json:"documents,omitempty"`         // 物业关联的文档（一对多）
	FinancialRecords []FinancialRecord `gorm:"foreignKey:PropertyID" json:"financial_records,omitempty"` // 月度财务记录（一对多）
}
