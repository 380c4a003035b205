package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/service"
)

type PriceListController struct {
	priceService *service.PriceService
}

func NewPriceListController(priceService *service.PriceService) *PriceListController {
	return &PriceListController{priceService: priceService}
}

// ImportPriceList 价格表导入
// @Summary 导入供应商价格表
// @Tags PriceList
// @Param req body dto.ImportPriceListReq true "价格表数据"
// @Success 200 {object} dto.Resp
// @Router /api/price-lists/import [post]
func (ctrl *PriceListController) ImportPriceList(c *gin.Context) {
	var req dto.ImportPriceListReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	var uploadDate time.Time
	if req.UploadDate != "" {
		var err error
		uploadDate, err = time.Parse("2006-01-02", req.UploadDate)
		if err != nil {
			c.JSON(400, gin.H{"code": 400, "message": "无效的日期格式，应为 YYYY-MM-DD"})
			return
		}
	}

	list, report, err := ctrl.priceService.ImportPriceList(c.Request.Context(), service.PriceListImport{
		SupplierID:  req.SupplierID,
		UploadDate:  uploadDate,
		FileName:    req.FileName,
		Description: req.Description,
		Table:       req.Table.ToTable(),
		FileData:    req.FileData,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"list": list, "report": report})
}

// GetPriceLists 批次列表
// @Summary 获取全部价格表批次
// @Tags PriceList
// @Success 200 {object} dto.Resp
// @Router /api/price-lists [get]
func (ctrl *PriceListController) GetPriceLists(c *gin.Context) {
	lists, err := ctrl.priceService.ListPriceLists(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, lists)
}

// GetPriceList 批次详情
// @Summary 获取单个价格表批次
// @Tags PriceList
// @Param id path int true "批次ID"
// @Success 200 {object} dto.Resp
// @Router /api/price-lists/{id} [get]
func (ctrl *PriceListController) GetPriceList(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的批次ID"})
		return
	}

	list, err := ctrl.priceService.GetPriceList(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, list)
}

// SetListActive 批次启停
// @Summary 启用/停用整批报价
// @Tags PriceList
// @Param id path int true "批次ID"
// @Param req body dto.SetListActiveReq true "目标状态"
// @Success 200 {object} dto.Resp
// @Router /api/price-lists/{id}/active [patch]
func (ctrl *PriceListController) SetListActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的批次ID"})
		return
	}

	var req dto.SetListActiveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误"})
		return
	}

	if err := ctrl.priceService.SetListActive(c.Request.Context(), id, *req.IsActive); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// UpdateListDescription 修改批次备注
// @Summary 修改批次备注
// @Tags PriceList
// @Param id path int true "批次ID"
// @Param req body dto.UpdateListDescriptionReq true "备注"
// @Success 200 {object} dto.Resp
// @Router /api/price-lists/{id}/description [patch]
func (ctrl *PriceListController) UpdateListDescription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的批次ID"})
		return
	}

	var req dto.UpdateListDescriptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	if err := ctrl.priceService.UpdateListDescription(c.Request.Context(), id, req.Description); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// AnalyzeList 批次分析
// @Summary 批次环比 + 区域对比分析
// @Tags Analysis
// @Param id path int true "批次ID"
// @Success 200 {object} dto.Resp
// @Router /api/price-lists/{id}/analysis [get]
func (ctrl *PriceListController) AnalyzeList(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的批次ID"})
		return
	}

	analysis, err := ctrl.priceService.AnalyzeList(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, analysis)
}

// GetAnalysis 全目录比价
// @Summary 全目录最优价汇总
// @Tags Analysis
// @Success 200 {object} dto.Resp
// @Router /api/analysis/prices [get]
func (ctrl *PriceListController) GetAnalysis(c *gin.Context) {
	summaries, warnings, err := ctrl.priceService.Analysis(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": summaries, "missing_currencies": warnings})
}

// CompareSuppliers 供应商对比
// @Summary 两供应商最新报价逐配件对比
// @Tags Analysis
// @Param supplier1 query int true "供应商1 ID"
// @Param supplier2 query int true "供应商2 ID"
// @Param show_all query bool false "是否带上只有一边报价的配件"
// @Success 200 {object} dto.Resp
// @Router /api/analysis/compare [get]
func (ctrl *PriceListController) CompareSuppliers(c *gin.Context) {
	s1, err1 := strconv.ParseInt(c.Query("supplier1"), 10, 64)
	s2, err2 := strconv.ParseInt(c.Query("supplier2"), 10, 64)
	if err1 != nil || err2 != nil || s1 <= 0 || s2 <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的供应商ID"})
		return
	}
	showAll := c.DefaultQuery("show_all", "false") == "true"

	rows, err := ctrl.priceService.CompareSuppliers(c.Request.Context(), s1, s2, showAll)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rows)
}

// GetUploadHistory 导入历史
// @Summary 最近的导入记录
// @Tags PriceList
// @Param limit query int false "条数" default(50)
// @Success 200 {object} dto.Resp
// @Router /api/uploads [get]
func (ctrl *PriceListController) GetUploadHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := ctrl.priceService.UploadHistory(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, logs)
}
