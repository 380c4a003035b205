package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/internal/service"
)

type CatalogController struct {
	catalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetParts 配件列表
// @Summary 分页查询配件目录
// @Tags Catalog
// @Param brand query string false "品牌展示名精确匹配"
// @Param keyword query string false "货号/名称模糊搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(50)
// @Success 200 {object} dto.ListResp
// @Router /api/parts [get]
func (ctrl *CatalogController) GetParts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	parts, total, err := ctrl.catalogService.ListParts(c.Request.Context(), repository.PartFilter{
		BrandName: c.Query("brand"),
		Keyword:   c.Query("keyword"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, dto.ListResp{
		Code:     0,
		Message:  "success",
		Data:     parts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetPart 配件详情
// @Summary 获取单个配件
// @Tags Catalog
// @Param id path int true "配件ID"
// @Success 200 {object} dto.Resp
// @Router /api/parts/{id} [get]
func (ctrl *CatalogController) GetPart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的配件ID"})
		return
	}

	part, err := ctrl.catalogService.GetPart(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, part)
}

// UpdatePart 编辑配件
// @Summary 人工编辑配件（全量覆盖）
// @Tags Catalog
// @Param id path int true "配件ID"
// @Param req body dto.UpdatePartReq true "配件信息"
// @Success 200 {object} dto.Resp
// @Router /api/parts/{id} [put]
func (ctrl *CatalogController) UpdatePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的配件ID"})
		return
	}

	var req dto.UpdatePartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	part, err := ctrl.catalogService.GetPart(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	part.MainArticle = req.MainArticle
	part.AdditionalArticle = req.AdditionalArticle
	part.NameRu = req.NameRu
	part.NameEn = req.NameEn
	part.Weight = req.Weight
	part.VolumeCoefficient = req.VolumeCoefficient
	part.Notes = req.Notes

	if err := ctrl.catalogService.UpdatePart(ctx, part); err != nil {
		fail(c, err)
		return
	}
	ok(c, part)
}

// DeletePart 删除配件
// @Summary 删除配件（有报价引用时拒绝）
// @Tags Catalog
// @Param id path int true "配件ID"
// @Success 200 {object} dto.Resp
// @Router /api/parts/{id} [delete]
func (ctrl *CatalogController) DeletePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的配件ID"})
		return
	}

	if err := ctrl.catalogService.DeletePart(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ImportCatalog 目录导入
// @Summary 导入配件目录表格
// @Tags Catalog
// @Param req body dto.ImportReq true "表格数据"
// @Success 200 {object} dto.Resp
// @Router /api/catalog/import [post]
func (ctrl *CatalogController) ImportCatalog(c *gin.Context) {
	var req dto.ImportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	report, err := ctrl.catalogService.ImportCatalog(c.Request.Context(), req.Table.ToTable(), req.FileName)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, report)
}

// MatchBrands 货号反查品牌
// @Summary 按货号反查目录里的候选品牌
// @Tags Catalog
// @Param req body dto.ImportReq true "表格数据"
// @Success 200 {object} dto.Resp
// @Router /api/catalog/match-brands [post]
func (ctrl *CatalogController) MatchBrands(c *gin.Context) {
	var req dto.ImportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	results, err := ctrl.catalogService.MatchBrands(c.Request.Context(), req.Table.ToTable())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, results)
}
