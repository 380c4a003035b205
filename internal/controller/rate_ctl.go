package controller

import (
	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/service"
)

type RateController struct {
	currencyService *service.CurrencyService
}

func NewRateController(currencyService *service.CurrencyService) *RateController {
	return &RateController{currencyService: currencyService}
}

// GetRates 汇率历史
// @Summary 获取全部汇率记录
// @Tags Rate
// @Success 200 {object} dto.Resp
// @Router /api/rates [get]
func (ctrl *RateController) GetRates(c *gin.Context) {
	rates, err := ctrl.currencyService.ListRates(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rates)
}

// AddRate 录入汇率
// @Summary 追加一条汇率记录
// @Tags Rate
// @Param req body dto.AddRateReq true "汇率信息"
// @Success 200 {object} dto.Resp
// @Router /api/rates [post]
func (ctrl *RateController) AddRate(c *gin.Context) {
	var req dto.AddRateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	rate, err := ctrl.currencyService.AddRate(c.Request.Context(),
		req.CurrencyCode, req.RateToBase, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rate)
}

// CheckRates 汇率完整性检查
// @Summary 找出缺少汇率的供应商币种
// @Tags Rate
// @Success 200 {object} dto.Resp
// @Router /api/rates/check [get]
func (ctrl *RateController) CheckRates(c *gin.Context) {
	missing, err := ctrl.currencyService.CheckRates(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"missing_currencies": missing})
}

// GetDeliveryCosts 运费规则列表
// @Summary 获取全部区域运费规则
// @Tags Rate
// @Success 200 {object} dto.Resp
// @Router /api/delivery-costs [get]
func (ctrl *RateController) GetDeliveryCosts(c *gin.Context) {
	costs, err := ctrl.currencyService.ListDeliveryCosts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, costs)
}

// UpsertDeliveryCost 设置运费规则
// @Summary 写入区域运费规则（同区域覆盖）
// @Tags Rate
// @Param req body dto.UpsertDeliveryCostReq true "运费规则"
// @Success 200 {object} dto.Resp
// @Router /api/delivery-costs [put]
func (ctrl *RateController) UpsertDeliveryCost(c *gin.Context) {
	var req dto.UpsertDeliveryCostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	cost := &model.DeliveryCost{
		RegionID:    req.RegionID,
		CostPerKg:   req.CostPerKg,
		MinCost:     req.MinCost,
		Description: req.Description,
	}
	if err := ctrl.currencyService.UpsertDeliveryCost(c.Request.Context(), cost); err != nil {
		fail(c, err)
		return
	}
	ok(c, cost)
}
