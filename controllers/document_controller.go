package controllers

import (
	"errors"
	"strconv"

	"reims-http-service/internal/error/code"
	"reims-http-service/internal/error/response"
	"reims-http-service/models"
	"reims-http-service/services"
	"reims-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// DocumentController 处理物业文档相关的请求
type DocumentController struct {
	BaseControllerImpl
}

// NewDocumentController 创建一个新的文档控制器
func (f *ControllerFactory) NewDocumentController(ctx *gin.Context) *DocumentController {
	return &DocumentController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// UpdateDocumentStatusRequest 表示更新文档状态的请求
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"processed"` // uploaded, processing, processed, failed
}

// GetDocuments 处理获取文档列表的请求
// @Summary      获取文档列表
// @Description  获取文档列表，支持按物业过滤
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        property_id query int false "物业ID过滤"
// @Param        pageNum query int false "页码"
// @Param        pageSize query int false "每页数量"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /documents [get]
func (c *DocumentController) GetDocuments() {
	pageNum, _ := strconv.Atoi(c.Context.DefaultQuery("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("pageSize", "50"))
	propertyID, _ := strconv.ParseUint(c.Context.Query("property_id"), 10, 32)

	documentService := c.Container.GetDocumentService()
	documents, total, err := documentService.GetDocuments(uint(propertyID), pageNum, pageSize)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"documents":  documents,
		"pagination": models.NewPaginationResult(int(total), pageNum, pageSize),
	})
}

// UploadDocument 处理上传文档的请求
// @Summary      上传文档
// @Description  上传物业文档（multipart表单：file、property_id）
// @Tags         Document
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "文档文件"
// @Param        property_id formData int true "物业ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /documents/upload [post]
func (c *DocumentController) UploadDocument() {
	fileHeader, err := c.Context.FormFile("file")
	if err != nil {
		response.Fail(c.Context, code.ErrDocumentFileMissing, nil)
		return
	}

	propertyID, err := strconv.ParseUint(c.Context.PostForm("property_id"), 10, 32)
	if err != nil || propertyID == 0 {
		response.ParamError(c.Context, "无效的物业ID")
		return
	}

	documentService := c.Container.GetDocumentService()
	document, err := documentService.UploadDocument(fileHeader, uint(propertyID))
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			response.Fail(c.Context, code.ErrPropertyNotFound, nil)
			return
		}
		response.FailWithMessage(c.Context, code.ErrDocumentStoreFailed, err.Error(), nil)
		return
	}

	response.Success(c.Context, gin.H{
		"document_id":       document.DocumentID,
		"original_filename": document.OriginalFilename,
		"property_id":       document.PropertyID,
		"status":            document.Status,
		"minio_url":         document.MinioURL,
	})
}

// GetDocumentByID 处理获取单个文档的请求
// @Summary      获取文档详情
// @Description  根据对外文档ID获取文档
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        document_id path string true "文档ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /documents/{document_id} [get]
func (c *DocumentController) GetDocumentByID() {
	documentID := c.Context.Param("document_id")

	documentService := c.Container.GetDocumentService()
	document, err := documentService.GetDocumentByID(documentID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			response.Fail(c.Context, code.ErrDocumentNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, document)
}

// UpdateDocumentStatus 处理更新文档状态的请求
// @Summary      更新文档状态
// @Description  更新文档处理状态
// @Tags         Document
// @Accept       json
// @Produce      json
// @Param        document_id path string true "文档ID"
// @Param        request body UpdateDocumentStatusRequest true "状态请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /documents/{document_id}/status [put]
// @Security     BearerAuth
func (c *DocumentController) UpdateDocumentStatus() {
	documentID := c.Context.Param("document_id")

	var req UpdateDocumentStatusRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	documentService := c.Container.GetDocumentService()
	document, err := documentService.UpdateDocumentStatus(documentID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			response.Fail(c.Context, code.ErrDocumentNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, document)
}

// HandleDocumentFunc 返回一个处理文档请求的Gin处理函数
func HandleDocumentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewDocumentController(ctx)

		switch method {
		case "getDocuments":
			controller.GetDocuments()
		case "uploadDocument":
			controller.UploadDocument()
		case "getDocumentByID":
			controller.GetDocumentByID()
		case "updateDocumentStatus":
			controller.UpdateDocumentStatus()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
