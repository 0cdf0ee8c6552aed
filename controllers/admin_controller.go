package controllers

import (
	"strconv"

	"reims-http-service/internal/error/code"
	"reims-http-service/internal/error/response"
	"reims-http-service/models"
	"reims-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// CreateAdminRequest 创建管理员请求结构
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email"`
}

// AdminController 处理管理员账号相关的请求
type AdminController struct {
	BaseControllerImpl
}

// NewAdminController 创建一个新的管理员控制器
func (f *ControllerFactory) NewAdminController(ctx *gin.Context) *AdminController {
	return &AdminController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetAdmins 处理获取管理员列表的请求
// @Summary      获取管理员列表
// @Description  分页获取管理员账号
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        pageNum query int false "页码"
// @Param        pageSize query int false "每页数量"
// @Success      200  {object}  map[string]interface{}
// @Router       /admins [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmins() {
	pageNum, _ := strconv.Atoi(c.Context.DefaultQuery("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("pageSize", "10"))

	adminService := c.Container.GetAdminService()
	admins, total, err := adminService.GetAllAdmins(pageNum, pageSize)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"admins":     admins,
		"pagination": models.NewPaginationResult(int(total), pageNum, pageSize),
	})
}

// CreateAdmin 处理创建管理员的请求
// @Summary      创建管理员
// @Description  创建新的管理员账号
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body CreateAdminRequest true "管理员信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /admins [post]
// @Security     BearerAuth
func (c *AdminController) CreateAdmin() {
	var req CreateAdminRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Context, code.ErrBind, nil)
		return
	}

	admin := &models.Admin{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}

	adminService := c.Container.GetAdminService()
	if err := adminService.CreateAdmin(admin); err != nil {
		response.FailWithMessage(c.Context, code.ErrUserAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Context, admin)
}

// DeleteAdmin 处理删除管理员的请求
// @Summary      删除管理员
// @Description  删除指定管理员账号，至少保留一个
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /admins/{id} [delete]
// @Security     BearerAuth
func (c *AdminController) DeleteAdmin() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的管理员ID")
		return
	}

	adminService := c.Container.GetAdminService()
	if err := adminService.DeleteAdmin(uint(id)); err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Context, nil)
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAdminController(ctx)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "createAdmin":
			controller.CreateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
