package userController

import (
	"strconv"

	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respond.BadRequest(c, "شناسه معتبر نیست")
		return 0, false
	}
	return uint(id), true
}

// GetUsers lists users with the admin filter set and order aggregates.
func GetUsers(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.DefaultQuery("filter", "all"), c.Query("search"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, users)
	}
}

func GetUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		user, err := svc.Get(id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, user)
	}
}

func DeleteUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "کاربر با موفقیت حذف شد")
	}
}
