package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, CourseRepo: courseRepo}
}

// QuestionDetail is a question with its options inlined.
type QuestionDetail struct {
	model.Question
	Options []model.Option `json:"options"`
}

// QuizDetail is a quiz with its full question tree, as served on quiz reads.
type QuizDetail struct {
	model.Quiz
	Questions []QuestionDetail `json:"questions"`
}

type CreateQuestionInput struct {
	Text string `json:"text" binding:"required"`
}

type CreateOptionInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type UpdateOptionInput struct {
	Text      *string `json:"text"`
	IsCorrect *bool   `json:"isCorrect"`
}

func (s *QuizService) Create(courseID uint, title string) (*model.Quiz, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	quiz := &model.Quiz{CourseID: courseID, Title: title}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByCourse(courseID uint) ([]model.Quiz, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}
	return s.QuizRepo.FindByCourse(courseID)
}

// GetDetail returns the quiz with its questions and options. Option
// correctness is included; quizzes are only reachable by authenticated users.
func (s *QuizService) GetDetail(id uint) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.QuizRepo.FindQuestionsByQuiz(id)
	if err != nil {
		return nil, err
	}

	detail := &QuizDetail{Quiz: *quiz, Questions: make([]QuestionDetail, 0, len(questions))}
	for _, q := range questions {
		options, err := s.QuizRepo.FindOptionsByQuestion(q.ID)
		if err != nil {
			return nil, err
		}
		detail.Questions = append(detail.Questions, QuestionDetail{Question: q, Options: options})
	}
	return detail, nil
}

// ListQuestions returns a quiz's questions with their options inlined.
func (s *QuizService) ListQuestions(quizID uint) ([]QuestionDetail, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		return nil, util.ErrQuizNotFound
	}

	questions, err := s.QuizRepo.FindQuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	details := make([]QuestionDetail, 0, len(questions))
	for _, q := range questions {
		options, err := s.QuizRepo.FindOptionsByQuestion(q.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, QuestionDetail{Question: q, Options: options})
	}
	return details, nil
}

func (s *QuizService) GetQuestion(id uint) (*QuestionDetail, error) {
	question, err := s.QuizRepo.FindQuestionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	options, err := s.QuizRepo.FindOptionsByQuestion(id)
	if err != nil {
		return nil, err
	}
	return &QuestionDetail{Question: *question, Options: options}, nil
}

func (s *QuizService) Update(id uint, title string) (*model.Quiz, error) {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	rows, err := s.QuizRepo.UpdateFields(id, map[string]interface{}{"title": title})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, util.ErrNoChanges
	}
	return s.QuizRepo.FindByID(id)
}

func (s *QuizService) Delete(id uint) error {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	return s.QuizRepo.Delete(id)
}

func (s *QuizService) AddQuestion(quizID uint, input CreateQuestionInput) (*model.Question, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	question := &model.Question{QuizID: quizID, Text: input.Text}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) UpdateQuestion(id uint, input CreateQuestionInput) (*model.Question, error) {
	if _, err := s.QuizRepo.FindQuestionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.QuizRepo.UpdateQuestionFields(id, map[string]interface{}{"text": input.Text}); err != nil {
		return nil, err
	}
	return s.QuizRepo.FindQuestionByID(id)
}

func (s *QuizService) DeleteQuestion(id uint) error {
	if _, err := s.QuizRepo.FindQuestionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuizRepo.DeleteQuestion(id)
}

func (s *QuizService) AddOption(questionID uint, input CreateOptionInput) (*model.Option, error) {
	if _, err := s.QuizRepo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	option := &model.Option{QuestionID: questionID, Text: input.Text, IsCorrect: input.IsCorrect}
	if err := s.QuizRepo.CreateOption(option); err != nil {
		return nil, err
	}
	return option, nil
}

// UpdateOption applies only the provided fields. Correctness edits do not
// touch recorded attempt answers.
func (s *QuizService) UpdateOption(id uint, input UpdateOptionInput) (*model.Option, error) {
	fields := map[string]interface{}{}
	if input.Text != nil {
		fields["text"] = *input.Text
	}
	if input.IsCorrect != nil {
		fields["is_correct"] = *input.IsCorrect
	}
	if len(fields) == 0 {
		return nil, util.ErrNoChanges
	}

	if _, err := s.QuizRepo.FindOptionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrOptionNotFound
		}
		return nil, err
	}
	if _, err := s.QuizRepo.UpdateOptionFields(id, fields); err != nil {
		return nil, err
	}
	return s.QuizRepo.FindOptionByID(id)
}

func (s *QuizService) DeleteOption(id uint) error {
	rows, err := s.QuizRepo.DeleteOption(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrOptionNotFound
	}
	return nil
}
