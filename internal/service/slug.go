package service

import (
	"fmt"
	"strings"

	"github.com/inkstone-cms/internal/constants"
)

// slugify 标题转 slug：小写、非字母数字折叠成单个连字符、去掉首尾连字符。
// 非 ASCII 字符（含中文）不做音译，直接按分隔符处理。
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // 抑制开头的连字符
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// GenerateSlug 根据标题生成唯一 slug。base 冲突时依次尝试 base-1、base-2……
// exists 回调查询候选是否已被占用（更新场景下排除自身）。
func GenerateSlug(title string, exists func(slug string) (bool, error)) (string, error) {
	base := slugify(title)
	if base == "" {
		return "", ErrInvalidTitle
	}
	if len(base) > constants.SlugMaxLength {
		base = strings.TrimRight(base[:constants.SlugMaxLength], "-")
	}

	candidate := base
	for i := 1; i <= constants.SlugMaxGenerateTries; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("generate slug for %q: %w", title, ErrSlugExists)
}
