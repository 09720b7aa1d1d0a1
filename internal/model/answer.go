package model

// swagger:model Answer
type Answer struct {
	UUIDBase
	TestID        string   `gorm:"type:varchar(36);not null;uniqueIndex:idx_answer_test_student" json:"testId"`
	StudentID     uint     `gorm:"not null;uniqueIndex:idx_answer_test_student" json:"studentId"`
	QuestionSetID string   `gorm:"type:varchar(36);index;not null" json:"questionSetId"`
	Responses     []string `gorm:"serializer:json;type:text;not null" json:"responses"`
	Grade         *int     `json:"grade,omitempty"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}

func (a *Answer) Graded() bool {
	return a.Grade != nil
}
