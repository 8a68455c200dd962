package models

import "time"

// UploadedFile is an attachment that belongs to exactly one order
type UploadedFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	Filename     string    `gorm:"not null" json:"filename"`      // stored name, unique
	OriginalName string    `gorm:"not null" json:"original_name"` // name the customer uploaded
	FilePath     string    `gorm:"not null" json:"file_path"`     // disk path or S3 key
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	URL          string    `gorm:"-" json:"url,omitempty"` // computed download URL
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the UploadedFile model
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
