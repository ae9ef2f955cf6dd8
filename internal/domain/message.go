package domain

// Message is one stored submission of a form
type Message struct {
	BaseModel
	FormID uint           `gorm:"not null;index:idx_messages_form_created,priority:1" json:"form_id"`
	Values []MessageValue `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}

// MessageValue is a raw submitted value.
// FieldID is a weak reference: the field is looked up by id when the message is read.
type MessageValue struct {
	BaseModel
	MessageID uint   `gorm:"not null;index:idx_message_values_message_id" json:"message_id"`
	FieldID   uint   `gorm:"not null;index:idx_message_values_field_id" json:"field_id"`
	Value     string `gorm:"type:text" json:"value"`
}

// TableName specifies the table name for MessageValue
func (MessageValue) TableName() string {
	return "message_values"
}
