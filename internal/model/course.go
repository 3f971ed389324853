package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Instructor  string  `gorm:"size:100;not null" json:"instructor"`
	Price       float64 `gorm:"default:0" json:"price"`
}

func (Course) TableName() string {
	return "courses"
}
