package shopController

import (
	"strconv"

	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func pageOf(c *gin.Context) (int, int) {
	return queryInt(c, "page", 1), queryInt(c, "limit", 10)
}

// GetProducts lists active products for the storefront.
func GetProducts(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageOf(c)
		result, err := svc.ListActive(page, limit)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": result.Data, "pagination": result.Pagination})
	}
}

func GetProductsByCategory(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			respond.BadRequest(c, "شناسه دسته‌بندی معتبر نیست")
			return
		}
		page, limit := pageOf(c)
		result, err := svc.ListByCategory(uint(id), page, limit)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": result.Data, "pagination": result.Pagination})
	}
}

func GetProductsByLabel(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageOf(c)
		result, err := svc.ListByLabel(c.Param("name"), page, limit)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": result.Data, "pagination": result.Pagination})
	}
}

func GetProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			respond.BadRequest(c, "شناسه محصول معتبر نیست")
			return
		}
		product, err := svc.Get(uint(id))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, product)
	}
}

// GetCategories exposes the category tree to the storefront.
func GetCategories(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.List()
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, categories)
	}
}

// GetBanners exposes content banners to the storefront.
func GetBanners(svc *services.BannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := svc.List(c.Query("type"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, banners)
	}
}
