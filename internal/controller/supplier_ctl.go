package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"autoparts_erp_v1_202608/internal/api/dto"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/service"
)

type SupplierController struct {
	supplierService *service.SupplierService
}

func NewSupplierController(supplierService *service.SupplierService) *SupplierController {
	return &SupplierController{supplierService: supplierService}
}

// GetSuppliers 供应商列表
// @Summary 获取全部供应商
// @Tags Supplier
// @Success 200 {object} dto.Resp
// @Router /api/suppliers [get]
func (ctrl *SupplierController) GetSuppliers(c *gin.Context) {
	suppliers, err := ctrl.supplierService.ListSuppliers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, suppliers)
}

// CreateSupplier 新建供应商
// @Summary 新建供应商
// @Tags Supplier
// @Param req body dto.CreateSupplierReq true "供应商信息"
// @Success 200 {object} dto.Resp
// @Router /api/suppliers [post]
func (ctrl *SupplierController) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	supplier := &model.Supplier{
		Name:        req.Name,
		RegionID:    req.RegionID,
		Currency:    req.Currency,
		ContactInfo: req.ContactInfo,
	}
	if err := ctrl.supplierService.CreateSupplier(c.Request.Context(), supplier); err != nil {
		fail(c, err)
		return
	}
	ok(c, supplier)
}

// DeleteSupplier 删除供应商
// @Summary 删除供应商（已有价格表时拒绝）
// @Tags Supplier
// @Param id path int true "供应商ID"
// @Success 200 {object} dto.Resp
// @Router /api/suppliers/{id} [delete]
func (ctrl *SupplierController) DeleteSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的供应商ID"})
		return
	}

	if err := ctrl.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// GetRegions 区域列表
// @Summary 获取全部采购区域
// @Tags Supplier
// @Success 200 {object} dto.Resp
// @Router /api/regions [get]
func (ctrl *SupplierController) GetRegions(c *gin.Context) {
	regions, err := ctrl.supplierService.ListRegions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, regions)
}

// CreateRegion 新建区域
// @Summary 新建采购区域
// @Tags Supplier
// @Param req body dto.CreateRegionReq true "区域信息"
// @Success 200 {object} dto.Resp
// @Router /api/regions [post]
func (ctrl *SupplierController) CreateRegion(c *gin.Context) {
	var req dto.CreateRegionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	region := &model.Region{Name: req.Name}
	if err := ctrl.supplierService.CreateRegion(c.Request.Context(), region); err != nil {
		fail(c, err)
		return
	}
	ok(c, region)
}

// DeleteRegion 删除区域
// @Summary 删除采购区域（还有供应商时拒绝）
// @Tags Supplier
// @Param id path int true "区域ID"
// @Success 200 {object} dto.Resp
// @Router /api/regions/{id} [delete]
func (ctrl *SupplierController) DeleteRegion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的区域ID"})
		return
	}

	if err := ctrl.supplierService.DeleteRegion(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
