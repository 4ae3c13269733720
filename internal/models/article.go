package models

import (
	"time"

	"github.com/inkstone-cms/internal/constants"
)

// Article 文章表
type Article struct {
	ID            uint       `gorm:"primarykey" json:"id"`                                       // 主键
	Title         string     `gorm:"size:200;not null" json:"title"`                             // 标题
	Slug          string     `gorm:"size:200;uniqueIndex;not null" json:"slug"`                  // 唯一标识
	Content       string     `gorm:"type:text;not null" json:"content"`                          // 正文
	Summary       string     `gorm:"type:text" json:"summary"`                                   // 摘要
	FeaturedImage string     `gorm:"size:255" json:"featured_image"`                             // 封面图（相对路径）
	Status        string     `gorm:"size:20;not null;default:'in_progress';index" json:"status"` // 工作流状态
	PublishedAt   *time.Time `gorm:"index" json:"published_at"`                                  // 发布时间（仅发布态有值）
	AuthorID      uint       `gorm:"not null;index" json:"author_id"`                            // 作者（创建后不可变更）
	Author        *User      `json:"author,omitempty"`
	CategoryID    *uint      `gorm:"index" json:"category_id"` // 所属分类（可空）
	Category      *Category  `json:"category,omitempty"`
	Tags          []Tag      `gorm:"many2many:article_tags" json:"tags,omitempty"` // 标签（多对多）
	Comments      []Comment  `json:"comments,omitempty"`                           // 评论（仅追加）
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// IsPublished 是否处于发布态
func (a *Article) IsPublished() bool {
	return a != nil && a.Status == constants.ArticleStatusPublished
}
