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

// PropertyController 处理物业相关的请求
type PropertyController struct {
	BaseControllerImpl
}

// NewPropertyController 创建一个新的物业控制器
func (f *ControllerFactory) NewPropertyController(ctx *gin.Context) *PropertyController {
	return &PropertyController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// CreatePropertyRequest 表示创建物业的请求
type CreatePropertyRequest struct {
	PropertyName string  `json:"property_name" binding:"required" example:"华庭公寓A座"`
	PropertyCode string  `json:"property_code" binding:"required" example:"P001"`
	Address      string  `json:"address" example:"城东新区滨江路88号"`
	MarketValue  float64 `json:"market_value" example:"2500000"`
	MonthlyRent  float64 `json:"monthly_rent" example:"8500"`
	Occupied     bool    `json:"occupied" example:"true"`
	CommitteeID  *uint   `json:"committee_id" example:"1"`
}

// UpdatePropertyRequest 表示更新物业的请求
type UpdatePropertyRequest struct {
	PropertyName *string  `json:"property_name"`
	PropertyCode *string  `json:"property_code"`
	Address      *string  `json:"address"`
	MarketValue  *float64 `json:"market_value"`
	MonthlyRent  *float64 `json:"monthly_rent"`
	Occupied     *bool    `json:"occupied"`
	CommitteeID  *uint    `json:"committee_id"`
	Status       *string  `json:"status"`
}

// GetProperties 处理获取物业列表的请求
// @Summary      获取物业列表
// @Description  分页获取物业列表
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        pageNum query int false "页码"
// @Param        pageSize query int false "每页数量"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /properties [get]
// @Security     BearerAuth
func (c *PropertyController) GetProperties() {
	pageNum, _ := strconv.Atoi(c.Context.DefaultQuery("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("pageSize", "20"))

	propertyService := c.Container.GetPropertyService()
	properties, total, err := propertyService.GetAllProperties(pageNum, pageSize)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"properties": properties,
		"pagination": models.NewPaginationResult(int(total), pageNum, pageSize),
	})
}

// GetProperty 处理获取单个物业的请求
// @Summary      获取物业详情
// @Description  根据ID获取物业
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /properties/{id} [get]
// @Security     BearerAuth
func (c *PropertyController) GetProperty() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的物业ID")
		return
	}

	propertyService := c.Container.GetPropertyService()
	property, err := propertyService.GetPropertyByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			response.Fail(c.Context, code.ErrPropertyNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, property)
}

// GetPropertyFinancials 处理获取物业月度财务序列的请求
// @Summary      获取物业月度收支序列
// @Description  返回12个月的收入/支出/利润序列，缺少真实记录时使用确定性生成数据
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /properties/{id}/financials [get]
func (c *PropertyController) GetPropertyFinancials() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的物业ID")
		return
	}

	mockDataService := c.Container.GetMockDataService()
	points, err := mockDataService.GetMonthlyFinancials(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			response.Fail(c.Context, code.ErrPropertyNotFound, nil)
			return
		}
		response.Fail(c.Context, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Context, gin.H{
		"property_id": id,
		"series":      points,
	})
}

// CreateProperty 处理创建物业的请求
// @Summary      创建物业
// @Description  创建新的物业记录
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "物业请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /properties [post]
// @Security     BearerAuth
func (c *PropertyController) CreateProperty() {
	var req CreatePropertyRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	property := &models.Property{
		PropertyName: req.PropertyName,
		PropertyCode: req.PropertyCode,
		Address:      req.Address,
		MarketValue:  req.MarketValue,
		MonthlyRent:  req.MonthlyRent,
		Occupied:     req.Occupied,
		CommitteeID:  req.CommitteeID,
	}

	propertyService := c.Container.GetPropertyService()
	if err := propertyService.CreateProperty(property); err != nil {
		response.FailWithMessage(c.Context, code.ErrPropertyAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Context, property)
}

// UpdateProperty 处理更新物业的请求
// @Summary      更新物业
// @Description  更新物业信息
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Param        request body UpdatePropertyRequest true "更新请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /properties/{id} [put]
// @Security     BearerAuth
func (c *PropertyController) UpdateProperty() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的物业ID")
		return
	}

	var req UpdatePropertyRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.PropertyName != nil {
		updates["property_name"] = *req.PropertyName
	}
	if req.PropertyCode != nil {
		updates["property_code"] = *req.PropertyCode
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.MarketValue != nil {
		updates["market_value"] = *req.MarketValue
	}
	if req.MonthlyRent != nil {
		updates["monthly_rent"] = *req.MonthlyRent
	}
	if req.Occupied != nil {
		updates["occupied"] = *req.Occupied
	}
	if req.CommitteeID != nil {
		updates["committee_id"] = *req.CommitteeID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	propertyService := c.Container.GetPropertyService()
	property, err := propertyService.UpdateProperty(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			response.Fail(c.Context, code.ErrPropertyNotFound, nil)
			return
		}
		response.FailWithMessage(c.Context, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Context, property)
}

// DeleteProperty 处理删除物业的请求
// @Summary      删除物业
// @Description  删除物业记录，仍有待审批预警的物业不允许删除
// @Tags         Property
// @Accept       json
// @Produce      json
// @Param        id path int true "物业ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /properties/{id} [delete]
// @Security     BearerAuth
func (c *PropertyController) DeleteProperty() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Context, "无效的物业ID")
		return
	}

	propertyService := c.Container.GetPropertyService()
	if err := propertyService.DeleteProperty(uint(id)); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			response.Fail(c.Context, code.ErrPropertyNotFound, nil)
			return
		}
		response.FailWithMessage(c.Context, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Context, gin.H{"deleted": id})
}

// HandlePropertyFunc 返回一个处理物业请求的Gin处理函数
func HandlePropertyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewPropertyController(ctx)

		switch method {
		case "getProperties":
			controller.GetProperties()
		case "getProperty":
			controller.GetProperty()
		case "getPropertyFinancials":
			controller.GetPropertyFinancials()
		case "createProperty":
			controller.CreateProperty()
		case "updateProperty":
			controller.UpdateProperty()
		case "deleteProperty":
			controller.DeleteProperty()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}
