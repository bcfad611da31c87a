package categoryController

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

// parseFieldsForm decodes the multipart "fields" value, a JSON array of
// field definitions.
func parseFieldsForm(c *gin.Context) ([]services.FieldInput, bool, error) {
	raw := c.PostForm("fields")
	if raw == "" {
		return nil, false, nil
	}
	var fields []services.FieldInput
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, false, err
	}
	return fields, true, nil
}

func formImage(c *gin.Context) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

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

func GetCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		category, err := svc.Get(id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, category)
	}
}

func CreateCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			respond.BadRequest(c, "نام دسته‌بندی الزامی است")
			return
		}

		fields, _, err := parseFieldsForm(c)
		if err != nil {
			respond.BadRequest(c, "فرمت فیلدها نامعتبر است")
			return
		}

		category, err := svc.Create(services.CategoryInput{Name: name, Fields: fields}, formImage(c))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.Created(c, category, "دسته‌بندی با موفقیت ایجاد شد")
	}
}

func UpdateCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		fields, replace, err := parseFieldsForm(c)
		if err != nil {
			respond.BadRequest(c, "فرمت فیلدها نامعتبر است")
			return
		}

		input := services.CategoryInput{Name: c.PostForm("name"), Fields: fields}
		category, err := svc.Update(id, input, replace, formImage(c))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OKMessage(c, category, "دسته‌بندی با موفقیت بروزرسانی شد")
	}
}

func DeleteCategory(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "دسته‌بندی با موفقیت حذف شد")
	}
}

// GetCategoryFields lists a category's field definitions with options
// stripped; the category detail endpoint is the one that exposes options.
func GetCategoryFields(svc *services.FieldService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		fields, err := svc.GetCategoryFields(id)
		if err != nil {
			respond.Error(c, err)
			return
		}

		sanitized := make([]services.SanitizedFieldView, 0, len(fields))
		for _, f := range fields {
			sanitized = append(sanitized, services.SanitizeField(f))
		}
		respond.OK(c, sanitized)
	}
}

type addFieldRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required *bool  `json:"required"`
}

func AddCategoryField(svc *services.FieldService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req addFieldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		field, err := svc.AddField(id, services.FieldInput{
			Name:     req.Name,
			Type:     models.FieldType(req.Type),
			Required: req.Required,
		})
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.Created(c, services.SanitizeField(*field), "فیلد با موفقیت افزوده شد")
	}
}

func RemoveCategoryField(svc *services.FieldService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "fieldId")
		if !ok {
			return
		}
		if err := svc.RemoveField(id); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "فیلد با موفقیت حذف شد")
	}
}
