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

// AlertController 处理预警审批相关的请求
type AlertController struct {
	BaseControllerImpl
}

// NewAlertController 创建一个新的预警控制器
func (f *ControllerFactory) NewAlertController(ctx *gin.Context) *AlertController {
	return &AlertController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ApproveAlertRequest 表示批准预警的请求
type ApproveAlertRequest struct {
	UserID uint   `json:"user_id" example:"1"` // 可选，缺省使用当前登录用户
	Notes  string `json:"notes" example:"数据已人工核实，确认异常"`
}

// RejectAlertRequest 表示驳回预警的请求
type RejectAlertRequest struct {
	UserID uint   `json:"user_id" example:"1"` // 可选，缺省使用当前登录用户
	Notes  string `json:"notes" example:"该波动属于正常季节性调价"`
	Reason string `json:"reason" example:"data_incorrect"` // data_incorrect, already_addressed, not_urgent, requires_review, other
}

// AlertView 预警连同其样式标记
type AlertView struct {
	models.Alert
	Style models.SeverityStyle `json:"style"`
}

// GetAlerts 处理获取预警列表的请求
// @Summary      获取预警列表
// @Description  分页获取预警列表，支持按状态、级别、物业过滤
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        status query string false "状态过滤: pending, approved, rejected"
// @Param        severity query string false "级别过滤: critical, warning, info"
// @Param        property_id query int false "物业ID过滤"
// @Param        pageNum query int false "页码"
// @Param        pageSize query int false "每页数量"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /alerts [get]
// @Security     BearerAuth
func (c *AlertController) GetAlerts() {
	pageNum, _ := strconv.Atoi(c.Context.DefaultQuery("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("pageSize", "20"))
	propertyID, _ := strconv.ParseUint(c.Context.Query("property_id"), 10, 32)

	query := &services.AlertQuery{
		Status:     c.Context.Query("status"),
		Severity:   c.Context.Query("severity"),
		PropertyID: uint(propertyID),
		PageNum:    pageNum,
		PageSize:   pageSize,
	}

	alertService := c.Container.GetAlertService()
	alerts, total, err := alertService.GetAlerts(query)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	views := make([]AlertView, 0, len(alerts))
	for _, alert := range alerts {
		views = append(views, AlertView{
			Alert: alert,
			Style: models.StyleForSeverity(alert.Severity),
		})
	}

	response.Success(c.Context, gin.H{
		"alerts":     views,
		"pagination": models.NewPaginationResult(int(total), pageNum, pageSize),
	})
}

// GetAlertByID 处理获取单条预警的请求
// @Summary      获取预警详情
// @Description  根据ID获取预警及其决策历史
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        id path int true "预警ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /alerts/{id} [get]
// @Security     BearerAuth
func (c *AlertController) GetAlertByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的预警ID")
		return
	}

	alertService := c.Container.GetAlertService()
	alert, err := alertService.GetAlertByID(uint(id))
	if err != nil {
		c.failWithAlertError(err)
		return
	}

	response.Success(c.Context, AlertView{
		Alert: *alert,
		Style: models.StyleForSeverity(alert.Severity),
	})
}

// ApproveAlert 处理批准预警的请求
// @Summary      批准预警
// @Description  批准待审批的预警，成功后状态变为approved并记录审批人
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        id path int true "预警ID"
// @Param        request body ApproveAlertRequest true "批准请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /alerts/{id}/approve [post]
// @Security     BearerAuth
func (c *AlertController) ApproveAlert() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的预警ID")
		return
	}

	var req ApproveAlertRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userID := req.UserID
	if userID == 0 {
		userID = c.currentUserID()
	}

	alertService := c.Container.GetAlertService()
	alert, err := alertService.Approve(c.Context.Request.Context(), uint(id), userID, req.Notes)
	if err != nil {
		c.failWithAlertError(err)
		return
	}

	response.Success(c.Context, gin.H{
		"alert_id":    alert.ID,
		"status":      alert.Status,
		"approved_by": alert.ApprovedBy,
		"resolved_at": alert.ResolvedAt,
	})
}

// RejectAlert 处理驳回预警的请求
// @Summary      驳回预警
// @Description  驳回待审批的预警，必须提供枚举范围内的原因代码
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        id path int true "预警ID"
// @Param        request body RejectAlertRequest true "驳回请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /alerts/{id}/reject [post]
// @Security     BearerAuth
func (c *AlertController) RejectAlert() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的预警ID")
		return
	}

	var req RejectAlertRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userID := req.UserID
	if userID == 0 {
		userID = c.currentUserID()
	}

	alertService := c.Container.GetAlertService()
	alert, err := alertService.Reject(c.Context.Request.Context(), uint(id), userID, req.Notes, req.Reason)
	if err != nil {
		c.failWithAlertError(err)
		return
	}

	response.Success(c.Context, gin.H{
		"alert_id":    alert.ID,
		"status":      alert.Status,
		"approved_by": alert.ApprovedBy,
		"resolved_at": alert.ResolvedAt,
	})
}

// failWithAlertError 把预警服务的业务错误映射到统一错误码
func (c *AlertController) failWithAlertError(err error) {
	var upstreamErr *services.UpstreamError

	switch {
	case errors.Is(err, services.ErrRejectReasonRequired):
		response.Fail(c.Context, code.ErrRejectReasonRequired, nil)
	case errors.Is(err, services.ErrRejectReasonInvalid):
		response.Fail(c.Context, code.ErrRejectReasonInvalid, nil)
	case errors.Is(err, services.ErrAlertNotFound):
		response.Fail(c.Context, code.ErrAlertNotFound, nil)
	case errors.Is(err, services.ErrAlertAlreadyResolved):
		response.Fail(c.Context, code.ErrAlertAlreadyResolved, nil)
	case errors.Is(err, services.ErrDecisionInFlight):
		response.Fail(c.Context, code.ErrAlertDecisionInFlight, nil)
	case errors.As(err, &upstreamErr):
		response.FailWithMessage(c.Context, code.ErrDecisionUpstream, err.Error(), nil)
	default:
		response.Fail(c.Context, code.ErrDatabase, nil)
	}
}

// HandleAlertFunc 返回一个处理预警请求的Gin处理函数
func HandleAlertFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAlertController(ctx)

		switch method {
		case "getAlerts":
			controller.GetAlerts()
		case "getAlertByID":
			controller.GetAlertByID()
		case "approveAlert":
			controller.ApproveAlert()
		case "rejectAlert":
			controller.RejectAlert()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
