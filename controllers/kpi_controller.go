package controllers

import (
	"reims-http-service/internal/error/code"
	"reims-http-service/internal/error/response"
	"reims-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// KPIController 处理仪表盘KPI相关的请求
type KPIController struct {
	BaseControllerImpl
}

// NewKPIController 创建一个新的KPI控制器
func (f *ControllerFactory) NewKPIController(ctx *gin.Context) *KPIController {
	return &KPIController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetFinancialKPIs 处理获取核心财务指标的请求
// @Summary      获取核心财务指标
// @Description  获取仪表盘核心指标：组合估值、物业数量、出租率、月收入
// @Tags         KPI
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /kpis/financial [get]
func (c *KPIController) GetFinancialKPIs() {
	kpiService := c.Container.GetKPIService()

	snapshot, err := kpiService.GetFinancialKPIs()
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, snapshot)
}

// RefreshKPIs 处理手动刷新KPI缓存的请求
// @Summary      刷新KPI缓存
// @Description  立即重新聚合KPI并写入缓存
// @Tags         KPI
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /kpis/refresh [post]
// @Security     BearerAuth
func (c *KPIController) RefreshKPIs() {
	kpiService := c.Container.GetKPIService()

	snapshot, err := kpiService.Refresh()
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, snapshot)
}

// HandleKPIFunc 返回一个处理KPI请求的Gin处理函数
func HandleKPIFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewKPIController(ctx)

		switch method {
		case "getFinancialKPIs":
			controller.GetFinancialKPIs()
		case "refreshKPIs":
			controller.RefreshKPIs()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
