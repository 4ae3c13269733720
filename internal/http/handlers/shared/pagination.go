package shared

import "github.com/inkstone-cms/internal/constants"

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, perPage int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if perPage <= 0 {
		perPage = constants.DefaultPerPage
	}
	if perPage > constants.MaxPerPage {
		perPage = constants.MaxPerPage
	}
	return page, perPage
}
