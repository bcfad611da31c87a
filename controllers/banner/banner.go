package bannerController

import (
	"strconv"

	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

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

func CreateBanner(svc *services.BannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, err := c.FormFile("image")
		if err != nil {
			respond.BadRequest(c, "تصویر بنر الزامی است")
			return
		}

		banner, err := svc.Create(c.PostForm("type"), c.PostForm("title"), c.PostForm("link"), image)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.Created(c, banner, "بنر با موفقیت ایجاد شد")
	}
}

func DeleteBanner(svc *services.BannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			respond.BadRequest(c, "شناسه معتبر نیست")
			return
		}
		if err := svc.Delete(uint(id)); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "بنر با موفقیت حذف شد")
	}
}
