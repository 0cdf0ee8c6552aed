package controllers

import (
	"reims-http-service/internal/error/code"
	"reims-http-service/internal/error/response"
	"reims-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JWTController 处理认证相关的请求
type JWTController struct {
	BaseControllerImpl
}

// NewJWTController 创建一个新的认证控制器
func (f *ControllerFactory) NewJWTController(ctx *gin.Context) *JWTController {
	return &JWTController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// Login 处理管理员登录请求
// @Summary      管理员登录
// @Description  校验用户名密码并签发JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Context, code.ErrBind, nil)
		return
	}

	adminService := c.Container.GetAdminService()
	admin, err := adminService.VerifyCredentials(req.Username, req.Password)
	if err != nil {
		response.Fail(c.Context, code.ErrUserPasswordIncorrect, nil)
		return
	}

	jwtService := c.Container.GetJWTService()
	token, err := jwtService.GenerateToken(admin.ID, "admin")
	if err != nil {
		response.ServerError(c.Context)
		return
	}

	response.Success(c.Context, gin.H{
		"token": token,
		"user": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewJWTController(ctx)

		switch method {
		case "login":
			controller.Login()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
