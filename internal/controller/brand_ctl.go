package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/service"
)

type BrandController struct {
	brandService *service.BrandService
}

func NewBrandController(brandService *service.BrandService) *BrandController {
	return &BrandController{brandService: brandService}
}

// GetBrands 品牌列表
// @Summary 获取全部品牌
// @Tags Brand
// @Success 200 {object} dto.Resp
// @Router /api/brands [get]
func (ctrl *BrandController) GetBrands(c *gin.Context) {
	brands, err := ctrl.brandService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, brands)
}

// GetSynonyms 同义词列表
// @Summary 获取全部品牌同义词
// @Tags Brand
// @Success 200 {object} dto.Resp
// @Router /api/brands/synonyms [get]
func (ctrl *BrandController) GetSynonyms(c *gin.Context) {
	synonyms, err := ctrl.brandService.ListSynonyms(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, synonyms)
}

// AddSynonym 给品牌挂别名
// @Summary 给品牌添加同义词
// @Tags Brand
// @Param id path int true "品牌ID"
// @Param req body dto.AddSynonymReq true "别名"
// @Success 200 {object} dto.Resp
// @Router /api/brands/{id}/synonyms [post]
func (ctrl *BrandController) AddSynonym(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的品牌ID"})
		return
	}

	var req dto.AddSynonymReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	if err := ctrl.brandService.AddSynonym(c.Request.Context(), id, req.Name); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// DeleteSynonym 删除同义词
// @Summary 删除品牌同义词
// @Tags Brand
// @Param id path int true "同义词ID"
// @Success 200 {object} dto.Resp
// @Router /api/brands/synonyms/{id} [delete]
func (ctrl *BrandController) DeleteSynonym(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的同义词ID"})
		return
	}

	if err := ctrl.brandService.DeleteSynonym(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
