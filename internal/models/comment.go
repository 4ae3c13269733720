package models

import "time"

// Comment 评论表（创建后不可修改，仅追加）
type Comment struct {
	ID              uint      `gorm:"primarykey" json:"id"`                      // 主键
	Content         string    `gorm:"type:text;not null" json:"content"`         // 内容
	IsReviewComment bool      `gorm:"default:false" json:"is_review_comment"`    // 是否审稿备注
	ArticleID       uint      `gorm:"not null;index" json:"article_id"`          // 所属文章
	UserID          uint      `gorm:"not null" json:"user_id"`                   // 评论作者
	Author          *User     `gorm:"foreignKey:UserID" json:"author,omitempty"` // 作者（按需加载）
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                   // 创建时间
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
