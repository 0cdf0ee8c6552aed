package models

// FinancialRecord 表示物业某个月份的真实财务数据
type FinancialRecord struct {
	BaseModel
	PropertyID uint    `gorm:"index;not null;uniqueIndex:idx_property_month" json:"property_id"`
	Year       int     `gorm:"not null;uniqueIndex:idx_property_month" json:"year"`
	MonthIndex int     `gorm:"not null;uniqueIndex:idx_property_month" json:"month_index"` // 0-11
	Revenue    float64 `gorm:"type:decimal(14,2)" json:"revenue"`
	Expenses   float64 `gorm:"type:decimal(14,2)" json:"expenses"`
	Profit     float64 `gorm:"type:decimal(14,2)" json:"profit"`
}

// MonthlyFinancialPoint 表示返回给仪表盘的单月收支数据点
type MonthlyFinancialPoint struct {
	Month    string `json:"month"` // Jan..Dec
	Revenue  int    `json:"revenue"`
	Expenses int    `json:"expenses"`
	Profit   int    `json:"profit"`
}
