package repository

import (
	"feedback_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create stores the test and puts it on the owning teacher's list.
func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		return addTest(tx, test.TeacherID, test.ID)
	})
}

func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, "id = ?", id).Error
	return &test, err
}

// FindWithSets loads the test and its question sets in position order.
func (r *TestRepository) FindWithSets(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.
		Preload("QuestionSets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, created_at asc")
		}).
		First(&test, "id = ?", id).Error
	return &test, err
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Model(test).Select("title", "topic", "start_time", "end_time").Updates(test).Error
}

// CountStudentAttempts counts student accounts whose list references the test.
func (r *TestRepository) CountStudentAttempts(testID string) (int64, error) {
	var count int64
	err := r.DB.Table("user_tests ut").
		Joins("JOIN users u ON u.id = ut.user_id").
		Where("ut.test_id = ? AND u.role = ?", testID, model.Student).
		Count(&count).Error
	return count, err
}

// Delete removes the test, its sets and every list entry pointing at it.
// The attempt check runs inside the transaction so a submission that lands
// between check and delete is not orphaned.
func (r *TestRepository) Delete(testID string, guard func(tx *gorm.DB) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if guard != nil {
			if err := guard(tx); err != nil {
				return err
			}
		}
		if err := tx.Where("test_id = ?", testID).Delete(&model.QuestionSet{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_tests WHERE test_id = ?", testID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, "id = ?", testID).Error
	})
}

// WithTx returns a repository bound to tx.
func (r *TestRepository) WithTx(tx *gorm.DB) *TestRepository {
	return &TestRepository{DB: tx}
}

func (r *TestRepository) CountSets(testID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuestionSet{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}

func (r *TestRepository) CreateSet(set *model.QuestionSet) error {
	return r.DB.Create(set).Error
}

func (r *TestRepository) FindSet(testID, setID string) (*model.QuestionSet, error) {
	var set model.QuestionSet
	err := r.DB.Where("id = ? AND test_id = ?", setID, testID).First(&set).Error
	return &set, err
}

func (r *TestRepository) UpdateSet(set *model.QuestionSet) error {
	return r.DB.Model(set).Select("questions").Updates(set).Error
}

func (r *TestRepository) DeleteSet(testID, setID string) error {
	result := r.DB.Where("id = ? AND test_id = ?", setID, testID).Delete(&model.QuestionSet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
