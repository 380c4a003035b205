package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"autoparts_erp_v1_202608/internal/controller"
	"autoparts_erp_v1_202608/internal/middleware"

	_ "autoparts_erp_v1_202608/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	Brand     *controller.BrandController
	Supplier  *controller.SupplierController
	Catalog   *controller.CatalogController
	PriceList *controller.PriceListController
	Order     *controller.OrderController
	Rate      *controller.RateController
	SalesStat *controller.SalesStatController
}

// SetupRouter 注册所有路由
func SetupRouter(ctrls *Controllers) *gin.Engine {
	r := gin.Default()

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 开放路由：登录不需要 token
	r.POST("/api/auth/login", ctrls.Auth.Login)
	r.POST("/api/auth/refresh", ctrls.Auth.Refresh)

	// 3. API 路由组，全部走 JWT 鉴权
	api := r.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// brand 品牌与同义词
		brands := api.Group("/brands")
		{
			brands.GET("", ctrls.Brand.GetBrands)
			brands.GET("/synonyms", ctrls.Brand.GetSynonyms)
			brands.POST("/:id/synonyms", ctrls.Brand.AddSynonym)
			brands.DELETE("/synonyms/:id", ctrls.Brand.DeleteSynonym)
		}

		// supplier 供应商与区域
		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", ctrls.Supplier.GetSuppliers)
			suppliers.POST("", ctrls.Supplier.CreateSupplier)
			suppliers.DELETE("/:id", middleware.RequireRole("admin"), ctrls.Supplier.DeleteSupplier)
		}
		regions := api.Group("/regions")
		{
			regions.GET("", ctrls.Supplier.GetRegions)
			regions.POST("", ctrls.Supplier.CreateRegion)
			regions.DELETE("/:id", middleware.RequireRole("admin"), ctrls.Supplier.DeleteRegion)
		}

		// catalog 配件目录
		parts := api.Group("/parts")
		{
			parts.GET("", ctrls.Catalog.GetParts)
			parts.GET("/:id", ctrls.Catalog.GetPart)
			parts.PUT("/:id", ctrls.Catalog.UpdatePart)
			parts.DELETE("/:id", middleware.RequireRole("admin"), ctrls.Catalog.DeletePart)
		}
		catalog := api.Group("/catalog")
		{
			catalog.POST("/import", ctrls.Catalog.ImportCatalog)
			catalog.POST("/match-brands", ctrls.Catalog.MatchBrands)
		}

		// price-list 价格表批次
		priceLists := api.Group("/price-lists")
		{
			priceLists.GET("", ctrls.PriceList.GetPriceLists)
			priceLists.GET("/:id", ctrls.PriceList.GetPriceList)
			priceLists.POST("/import", ctrls.PriceList.ImportPriceList)
			priceLists.PATCH("/:id/active", ctrls.PriceList.SetListActive)
			priceLists.PATCH("/:id/description", ctrls.PriceList.UpdateListDescription)
			priceLists.GET("/:id/analysis", ctrls.PriceList.AnalyzeList)
		}
		api.GET("/uploads", ctrls.PriceList.GetUploadHistory)

		// analysis 比价分析
		analysis := api.Group("/analysis")
		{
			analysis.GET("/prices", ctrls.PriceList.GetAnalysis)
			analysis.GET("/compare", ctrls.PriceList.CompareSuppliers)
		}

		// order 订单核价与预期售价
		api.POST("/orders/price", ctrls.Order.PriceOrder)
		expected := api.Group("/expected-prices")
		{
			expected.GET("", ctrls.Order.GetExpectedPrices)
			expected.POST("", ctrls.Order.SetExpectedPrice)
			expected.POST("/import", ctrls.Order.ImportExpectedPrices)
			expected.GET("/history", ctrls.Order.GetExpectedPriceHistory)
			expected.DELETE("/:id", ctrls.Order.DeleteExpectedPrice)
		}

		// rate 汇率与运费
		rates := api.Group("/rates")
		{
			rates.GET("", ctrls.Rate.GetRates)
			rates.POST("", ctrls.Rate.AddRate)
			rates.GET("/check", ctrls.Rate.CheckRates)
		}
		deliveryCosts := api.Group("/delivery-costs")
		{
			deliveryCosts.GET("", ctrls.Rate.GetDeliveryCosts)
			deliveryCosts.POST("", ctrls.Rate.UpsertDeliveryCost)
			deliveryCosts.PUT("", ctrls.Rate.UpsertDeliveryCost)
		}

		// sales-stat 销售统计
		salesStats := api.Group("/sales-stats")
		{
			salesStats.GET("", ctrls.SalesStat.GetStats)
			salesStats.GET("/aggregated", ctrls.SalesStat.GetAggregated)
			salesStats.POST("/import", ctrls.SalesStat.ImportStats)
			salesStats.PUT("/:id", ctrls.SalesStat.UpdateStat)
			salesStats.DELETE("/:id", ctrls.SalesStat.DeleteStat)
		}
	}

	return r
}
