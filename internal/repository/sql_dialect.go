package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildSearchCondition 构建多列不区分大小写的 LIKE 条件，并返回参数数量。
// postgres 使用 ILIKE；sqlite 对 ASCII 的 LIKE 本身不区分大小写，
// 为覆盖非 ASCII 内容统一对两侧做 LOWER。
func buildSearchCondition(db *gorm.DB, columns []string) (string, int) {
	return buildSearchConditionByDialect(dbDialectName(db), columns)
}

func buildSearchConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	argCount := 0
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(dialect)) {
		case "postgres", "postgresql":
			parts = append(parts, fmt.Sprintf("%s ILIKE ?", trimmed))
		default:
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", trimmed))
		}
		argCount++
	}
	return strings.Join(parts, " OR "), argCount
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
