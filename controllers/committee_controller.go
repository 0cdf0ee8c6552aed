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

// CommitteeController 处理委员会相关的请求
type CommitteeController struct {
	BaseControllerImpl
}

// NewCommitteeController 创建一个新的委员会控制器
func (f *ControllerFactory) NewCommitteeController(ctx *gin.Context) *CommitteeController {
	return &CommitteeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetCommittees 处理获取委员会列表的请求
// @Summary      获取委员会列表
// @Description  获取全部委员会
// @Tags         Committee
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /committees [get]
// @Security     BearerAuth
func (c *CommitteeController) GetCommittees() {
	committeeService := c.Container.GetCommitteeService()

	committees, err := committeeService.GetAllCommittees()
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"committees": committees,
		"total":      len(committees),
	})
}

// GetCommittee 处理获取单个委员会的请求
// @Summary      获取委员会详情
// @Description  根据ID获取委员会
// @Tags         Committee
// @Accept       json
// @Produce      json
// @Param        id path int true "委员会ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /committees/{id} [get]
// @Security     BearerAuth
func (c *CommitteeController) GetCommittee() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的委员会ID")
		return
	}

	committeeService := c.Container.GetCommitteeService()
	committee, err := committeeService.GetCommitteeByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCommitteeNotFound) {
			response.Fail(c.Context, code.ErrCommitteeNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, committee)
}

// GetCommitteePendingAlerts 处理获取委员会待审预警的请求
// @Summary      获取委员会待审预警
// @Description  获取指定委员会所有待审批的预警
// @Tags         Committee
// @Accept       json
// @Produce      json
// @Param        id path int true "委员会ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /committees/{id}/alerts [get]
// @Security     BearerAuth
func (c *CommitteeController) GetCommitteePendingAlerts() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的委员会ID")
		return
	}

	committeeService := c.Container.GetCommitteeService()
	alerts, err := committeeService.GetCommitteePendingAlerts(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCommitteeNotFound) {
			response.Fail(c.Context, code.ErrCommitteeNotFound, nil)
			return
		}
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
		"alerts": views,
		"total":  len(views),
	})
}

// HandleCommitteeFunc 返回一个处理委员会请求的Gin处理函数
func HandleCommitteeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewCommitteeController(ctx)

		switch method {
		case "getCommittees":
			controller.GetCommittees()
		case "getCommittee":
			controller.GetCommittee()
		case "getCommitteePendingAlerts":
			controller.GetCommitteePendingAlerts()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
