package model

// swagger:model Message
type Message struct {
	BaseModel
	UserID  uint   `gorm:"index;not null" json:"-"`
	Content string `gorm:"size:500;not null" json:"content"`
}

func (Message) TableName() string {
	return "messages"
}
