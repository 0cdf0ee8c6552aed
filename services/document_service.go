package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"reims-http-service/config"
	"reims-http-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceDocumentService defines the document service interface
type InterfaceDocumentService interface {
	GetDocuments(propertyID uint, page, pageSize int) ([]models.Document, int64, error)
	GetDocumentByID(documentID string) (*models.Document, error)
	UploadDocument(fileHeader *multipart.FileHeader, propertyID uint) (*models.Document, error)
	UpdateDocumentStatus(documentID, status string) (*models.Document, error)
}

// DocumentService 管理物业文档的登记与上传
type DocumentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDocumentService 创建新的文档服务
func NewDocumentService(db *gorm.DB, cfg *config.Config) InterfaceDocumentService {
	return &DocumentService{
		DB:     db,
		Config: cfg,
	}
}

// GetDocuments 获取文档列表，propertyID为0时返回全部
func (s *DocumentService) GetDocuments(propertyID uint, page, pageSize int) ([]models.Document, int64, error) {
	db := s.DB.Model(&models.Document{})
	if propertyID > 0 {
		db = db.Where("property_id = ?", propertyID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	var documents []models.Document
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&documents).Error; err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// GetDocumentByID 根据对外文档ID获取文档
func (s *DocumentService) GetDocumentByID(documentID string) (*models.Document, error) {
	var document models.Document
	if err := s.DB.Where("document_id = ?", documentID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

// UploadDocument 保存上传文件并登记文档记录。
// 文件落在本地上传目录，minio_url按对象存储地址规则生成
func (s *DocumentService) UploadDocument(fileHeader *multipart.FileHeader, propertyID uint) (*models.Document, error) {
	// 校验物业存在
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	documentID := uuid.New().String()
	ext := filepath.Ext(fileHeader.Filename)
	storageName := documentID + ext

	if err := os.MkdirAll(s.Config.DocumentUploadDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	storagePath := filepath.Join(s.Config.DocumentUploadDir, storageName)

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("创建存储文件失败: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		// 写入失败时清理半成品文件
		os.Remove(storagePath)
		return nil, fmt.Errorf("写入存储文件失败: %w", err)
	}

	document := &models.Document{
		DocumentID:       documentID,
		OriginalFilename: fileHeader.Filename,
		PropertyID:       propertyID,
		Status:           models.DocumentStatusUploaded,
		MinioURL:         s.Config.MinioBaseURL + "/" + storageName,
		StoragePath:      storagePath,
		SizeBytes:        size,
	}

	if err := s.DB.Create(document).Error; err != nil {
		os.Remove(storagePath)
		return nil, err
	}

	return document, nil
}

// UpdateDocumentStatus 更新文档处理状态
func (s *DocumentService) UpdateDocumentStatus(documentID, status string) (*models.Document, error) {
	document, err := s.GetDocumentByID(documentID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(document).Update("status", status).Error; err != nil {
		return nil, err
	}

	document.Status = status
	return document, nil
}
