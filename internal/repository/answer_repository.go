package repository

import (
	"feedback_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Submit records the answer and appends the test to the student's attempted list.
// A second submission for the same test fails with gorm.ErrDuplicatedKey.
func (r *AnswerRepository) Submit(answer *model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Answer{}).
			Where("test_id = ? AND student_id = ?", answer.TestID, answer.StudentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		return addTest(tx, answer.StudentID, answer.TestID)
	})
}

func (r *AnswerRepository) FindByID(id string) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.First(&answer, "id = ?", id).Error
	return &answer, err
}

func (r *AnswerRepository) ListByTest(testID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("test_id = ?", testID).Order("created_at asc").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) UpdateGrade(answer *model.Answer) error {
	return r.DB.Model(answer).Select("grade", "explanation").Updates(answer).Error
}
