package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question belongs to a quiz. Questions are served in creation order.
type Question struct {
	BaseModel
	QuizID uint   `gorm:"index;not null" json:"quizId"`
	Text   string `gorm:"type:text;not null" json:"text"`
}

func (Question) TableName() string {
	return "questions"
}

// Option belongs to a question. Nothing enforces that a question has at least
// one correct option; authoring is trusted.
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:512;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
