package models

import "time"

// Tag 标签表
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`                     // 主键
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"` // 名称（全局唯一）
	Slug      string    `gorm:"size:50;uniqueIndex;not null" json:"slug"` // 唯一标识（由名称派生）
	CreatedAt time.Time `json:"created_at"`                               // 创建时间
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
