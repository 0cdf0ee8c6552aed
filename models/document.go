package models

// 文档处理状态
const (
	DocumentStatusUploaded   = "uploaded"
	DocumentStatusProcessing = "processing"
	DocumentStatusProcessed  = "processed"
	DocumentStatusFailed     = "failed"
)

// Document 表示物业关联的文档
type Document struct {
	BaseModel
	DocumentID       string `gorm:"type:varchar(40);unique;not null" json:"document_id"` // 对外暴露的文档UUID
	OriginalFilename string `gorm:"type:varchar(255);not null" json:"original_filename"`
	PropertyID       uint   `gorm:"index;not null" json:"property_id"`
	Status           string `gorm:"type:varchar(20);default:'uploaded'" json:"status"` // uploaded, processing, processed, failed
	MinioURL         string `gorm:"type:varchar(500)" json:"minio_url"`                // 对象存储访问地址
	StoragePath      string `gorm:"type:varchar(500)" json:"-"`                        // 本地存储路径，不对外暴露
	SizeBytes        int64  `json:"size_bytes"`

	// 关联关系
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
