package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, perPage int) *gorm.DB {
	if query == nil || perPage <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(perPage).Offset((page - 1) * perPage)
}

// TotalPages 计算总页数。
func TotalPages(total int64, perPage int) int64 {
	if perPage <= 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}
