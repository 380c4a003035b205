package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/internal/service"
)

type SalesStatController struct {
	statService *service.SalesStatService
}

func NewSalesStatController(statService *service.SalesStatService) *SalesStatController {
	return &SalesStatController{statService: statService}
}

// ImportStats 统计导入
// @Summary 导入销售统计表格
// @Tags SalesStat
// @Param req body dto.ImportStatsReq true "统计数据"
// @Success 200 {object} dto.Resp
// @Router /api/sales-stats/import [post]
func (ctrl *SalesStatController) ImportStats(c *gin.Context) {
	var req dto.ImportStatsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	report, err := ctrl.statService.Import(c.Request.Context(),
		req.Table.ToTable(), req.FileName, req.DataType, req.SourceName)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, report)
}

// GetStats 统计列表
// @Summary 查询销售统计
// @Tags SalesStat
// @Param data_type query string false "来源筛选"
// @Param volume_group query string false "销量分组筛选"
// @Param search query string false "货号/品牌搜索"
// @Success 200 {object} dto.Resp
// @Router /api/sales-stats [get]
func (ctrl *SalesStatController) GetStats(c *gin.Context) {
	stats, err := ctrl.statService.List(c.Request.Context(), repository.SalesStatFilter{
		DataType:    c.Query("data_type"),
		VolumeGroup: c.Query("volume_group"),
		Search:      c.Query("search"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}

// GetAggregated 统计总览
// @Summary 每个配件各来源最近周期的统计
// @Tags SalesStat
// @Success 200 {object} dto.Resp
// @Router /api/sales-stats/aggregated [get]
func (ctrl *SalesStatController) GetAggregated(c *gin.Context) {
	stats, err := ctrl.statService.Aggregated(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}

// UpdateStat 修正统计记录
// @Summary 人工修正一条销售统计
// @Tags SalesStat
// @Param id path int true "记录ID"
// @Param req body dto.UpdateStatReq true "修正后的字段"
// @Success 200 {object} dto.Resp
// @Router /api/sales-stats/{id} [put]
func (ctrl *SalesStatController) UpdateStat(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的记录ID"})
		return
	}

	var req dto.UpdateStatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	stat, err := ctrl.statService.Update(c.Request.Context(), id, service.StatFields{
		Quantity:         req.Quantity,
		VolumeGroup:      req.VolumeGroup,
		RequestsPerMonth: req.RequestsPerMonth,
		Notes:            req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stat)
}

// DeleteStat 删除统计记录
// @Summary 删除一条销售统计
// @Tags SalesStat
// @Param id path int true "记录ID"
// @Success 200 {object} dto.Resp
// @Router /api/sales-stats/{id} [delete]
func (ctrl *SalesStatController) DeleteStat(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的记录ID"})
		return
	}

	if err := ctrl.statService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
