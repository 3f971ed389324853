package model

// Lesson belongs to a course. VideoURL is gated content: it is stripped from
// responses for callers who are not enrolled in the course.
type Lesson struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	VideoURL string `gorm:"size:512;not null" json:"videoUrl,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonResource is supplementary material attached to a lesson. Reads are
// enrollment-gated like the lesson video.
type LessonResource struct {
	BaseModel
	LessonID    uint   `gorm:"index;not null" json:"lessonId"`
	ResourceURL string `gorm:"size:512;not null" json:"resourceUrl"`
}

func (LessonResource) TableName() string {
	return "lesson_resources"
}
