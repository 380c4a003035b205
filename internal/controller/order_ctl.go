package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/service"
)

type OrderController struct {
	orderService    *service.OrderService
	expectedService *service.ExpectedPriceService
}

func NewOrderController(orderService *service.OrderService, expectedService *service.ExpectedPriceService) *OrderController {
	return &OrderController{
		orderService:    orderService,
		expectedService: expectedService,
	}
}

// PriceOrder 订单核价
// @Summary 整单核价：跨区域比价或指定供应商
// @Tags Order
// @Param req body dto.PriceOrderReq true "订单明细"
// @Success 200 {object} dto.Resp
// @Router /api/orders/price [post]
func (ctrl *OrderController) PriceOrder(c *gin.Context) {
	var req dto.PriceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	items := make([]service.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItem{
			Brand:    item.Brand,
			Article:  item.Article,
			Quantity: item.Quantity,
		})
	}
	opts := service.OrderOptions{
		MarginCoefficient: req.MarginCoefficient,
		MaxAgeDays:        req.MaxAgeDays,
	}

	ctx := c.Request.Context()
	var (
		priced  []service.PricedOrderItem
		missing []string
		err     error
	)
	if req.SupplierID > 0 {
		priced, missing, err = ctrl.orderService.PriceForSupplier(ctx, items, req.SupplierID, opts)
	} else {
		priced, missing, err = ctrl.orderService.PriceAcrossRegions(ctx, items, opts)
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": priced, "missing_currencies": missing})
}

// ==================== 预期售价 ====================

// GetExpectedPrices 当前售价列表
// @Summary 每个配件当前生效的预期售价
// @Tags ExpectedPrice
// @Success 200 {object} dto.Resp
// @Router /api/expected-prices [get]
func (ctrl *OrderController) GetExpectedPrices(c *gin.Context) {
	prices, err := ctrl.expectedService.ListCurrent(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, prices)
}

// SetExpectedPrice 手工录入售价
// @Summary 录入一条预期售价（追加，不覆盖历史）
// @Tags ExpectedPrice
// @Param req body dto.ExpectedPriceReq true "售价信息"
// @Success 200 {object} dto.Resp
// @Router /api/expected-prices [post]
func (ctrl *OrderController) SetExpectedPrice(c *gin.Context) {
	var req dto.ExpectedPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	var effectiveDate time.Time
	if req.EffectiveDate != "" {
		var err error
		effectiveDate, err = time.Parse("2006-01-02", req.EffectiveDate)
		if err != nil {
			c.JSON(400, gin.H{"code": 400, "message": "无效的日期格式，应为 YYYY-MM-DD"})
			return
		}
	}

	record, err := ctrl.expectedService.Set(c.Request.Context(),
		req.Brand, req.Article, req.Price, effectiveDate, req.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, record)
}

// ImportExpectedPrices 售价批量导入
// @Summary 导入预期售价表格
// @Tags ExpectedPrice
// @Param req body dto.ImportReq true "表格数据"
// @Success 200 {object} dto.Resp
// @Router /api/expected-prices/import [post]
func (ctrl *OrderController) ImportExpectedPrices(c *gin.Context) {
	var req dto.ImportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	report, err := ctrl.expectedService.Import(c.Request.Context(), req.Table.ToTable(), req.FileName)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, report)
}

// GetExpectedPriceHistory 售价历史
// @Summary 单配件的售价时间序列
// @Tags ExpectedPrice
// @Param brand query string true "品牌"
// @Param article query string true "货号"
// @Success 200 {object} dto.Resp
// @Router /api/expected-prices/history [get]
func (ctrl *OrderController) GetExpectedPriceHistory(c *gin.Context) {
	brand := c.Query("brand")
	article := c.Query("article")
	if brand == "" || article == "" {
		c.JSON(400, gin.H{"code": 400, "message": "brand 和 article 必填"})
		return
	}

	history, err := ctrl.expectedService.History(c.Request.Context(), brand, article)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, history)
}

// DeleteExpectedPrice 删除售价记录
// @Summary 删除一条预期售价
// @Tags ExpectedPrice
// @Param id path int true "记录ID"
// @Success 200 {object} dto.Resp
// @Router /api/expected-prices/{id} [delete]
func (ctrl *OrderController) DeleteExpectedPrice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的记录ID"})
		return
	}

	if err := ctrl.expectedService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
