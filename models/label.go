package models

type Label struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Title string `gorm:"not null" json:"title"`
	Color string `json:"color"`
}

// ProductLabel attaches a static label to a product (many-to-many).
type ProductLabel struct {
	ProductID uint   `gorm:"primaryKey" json:"product_id"`
	LabelID   uint   `gorm:"primaryKey" json:"label_id"`
	Label     *Label `gorm:"foreignKey:LabelID" json:"label,omitempty"`
}

// DefaultLabels is the static taxonomy seeded at startup.
var DefaultLabels = []Label{
	{Name: "bestseller", Title: "پرفروش", Color: "#FF4500"},
	{Name: "discounted", Title: "پر تخفیف", Color: "#32CD32"},
	{Name: "recommended", Title: "پیشنهادی", Color: "#1E90FF"},
	{Name: "new", Title: "جدید", Color: "#FFD700"},
	{Name: "limited", Title: "تعداد محدود", Color: "#FF1493"},
	{Name: "pack", Title: "پک", Color: "#8A2BE2"},
	{Name: "special", Title: "ویژه", Color: "#FF6347"},
	{Name: "seasonal", Title: "مناسب فصل", Color: "#20B2AA"},
	{Name: "featured", Title: "محصول منتخب", Color: "#FF8C00"},
}
