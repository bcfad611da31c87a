package productController

import (
	"encoding/json"
	"mime/multipart"
	"strconv"

	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respond.BadRequest(c, "شناسه معتبر نیست")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

// GetProducts composes the admin listing filters: categoryId, status,
// minPrice/maxPrice, search, page, limit.
func GetProducts(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := services.ProductListParams{
			Status: c.Query("status"),
			Search: c.Query("search"),
			Page:   queryInt(c, "page", 1),
			Limit:  queryInt(c, "limit", 10),
		}

		if raw := c.Query("categoryId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				respond.BadRequest(c, "شناسه دسته‌بندی معتبر نیست")
				return
			}
			params.CategoryID = uint(id)
		}
		if raw := c.Query("minPrice"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respond.BadRequest(c, "حداقل قیمت معتبر نیست")
				return
			}
			params.MinPrice = &v
		}
		if raw := c.Query("maxPrice"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respond.BadRequest(c, "حداکثر قیمت معتبر نیست")
				return
			}
			params.MaxPrice = &v
		}

		page, err := svc.List(params)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(200, gin.H{
			"success":    true,
			"data":       page.Data,
			"pagination": page.Pagination,
		})
	}
}

func GetProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		product, err := svc.Get(id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, product)
	}
}

// parseProductForm reads the multipart product payload. "fields" and
// "labels" arrive as JSON strings.
func parseProductForm(c *gin.Context) (services.ProductInput, error) {
	input := services.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	// Omitted parts stay nil so updates leave the stored values alone.
	if raw, ok := c.GetPostForm("isActive"); ok {
		active := raw == "true"
		input.IsActive = &active
	}
	if raw := c.PostForm("price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, errBadForm("قیمت معتبر نیست")
		}
		input.Price = v
	}
	if raw, ok := c.GetPostForm("stock"); ok && raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return input, errBadForm("موجودی معتبر نیست")
		}
		input.Stock = &v
	}
	if raw := c.PostForm("discount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, errBadForm("تخفیف معتبر نیست")
		}
		input.Discount = v
	}
	if raw := c.PostForm("discountType"); raw != "" {
		input.DiscountType = models.DiscountType(raw)
	}
	if raw := c.PostForm("categoryId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return input, errBadForm("شناسه دسته‌بندی معتبر نیست")
		}
		input.CategoryID = uint(v)
	}

	if raw := c.PostForm("fields"); raw != "" {
		var fields []services.FieldValueInput
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return input, errBadForm("فرمت فیلدها نامعتبر است")
		}
		input.Fields = fields
	}
	if raw := c.PostForm("labels"); raw != "" {
		var labels []uint
		if err := json.Unmarshal([]byte(raw), &labels); err != nil {
			return input, errBadForm("فرمت لیبل‌ها نامعتبر است")
		}
		input.Labels = labels
	}
	return input, nil
}

type formError struct{ msg string }

func (e formError) Error() string { return e.msg }
func errBadForm(msg string) error { return formError{msg: msg} }

// formFiles pulls the uploaded image set; both "images" and single "image"
// part names are accepted.
func formFiles(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files, ok := form.File["images"]; ok && len(files) > 0 {
		return files
	}
	return form.File["image"]
}

func CreateProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := parseProductForm(c)
		if err != nil {
			respond.BadRequest(c, err.Error())
			return
		}

		form, _ := c.MultipartForm()
		product, err := svc.Create(input, formFiles(form))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.Created(c, product, "محصول با موفقیت ایجاد شد")
	}
}

func UpdateProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		input, err := parseProductForm(c)
		if err != nil {
			respond.BadRequest(c, err.Error())
			return
		}

		form, _ := c.MultipartForm()
		product, err := svc.Update(id, input, formFiles(form))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OKMessage(c, product, "محصول با موفقیت بروزرسانی شد")
	}
}

func DeleteProduct(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "محصول با موفقیت حذف شد")
	}
}
