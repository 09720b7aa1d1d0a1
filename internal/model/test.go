package model

import "time"

// swagger:model Test
type Test struct {
	UUIDBase
	Title        string        `gorm:"size:30;not null" json:"title"`
	Topic        string        `gorm:"size:50;not null" json:"topic"`
	StartTime    time.Time     `gorm:"not null" json:"startTime"`
	EndTime      time.Time     `gorm:"not null" json:"endTime"`
	TeacherID    uint          `gorm:"index;not null" json:"teacherId"`
	QuestionSets []QuestionSet `gorm:"foreignKey:TestID" json:"questionSets,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

func (t *Test) Started(now time.Time) bool {
	return !now.Before(t.StartTime)
}

// Open reports whether now falls inside [StartTime, EndTime).
func (t *Test) Open(now time.Time) bool {
	return t.Started(now) && now.Before(t.EndTime)
}

// MaxQuestionSets caps the number of sets a teacher may attach to one test.
const MaxQuestionSets = 10

// swagger:model QuestionSet
type QuestionSet struct {
	UUIDBase
	TestID    string   `gorm:"type:varchar(36);index;not null" json:"testId"`
	Position  int      `gorm:"not null;default:0" json:"position"`
	Questions []string `gorm:"serializer:json;type:text;not null" json:"questions"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}
