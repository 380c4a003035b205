package utils

import (
	"math"
	"strings"
)

// NormalizeArticle 货号归一化：只保留 ASCII 字母和数字，统一大写
// "A-123/b" -> "A123B"；空输入返回空串
func NormalizeArticle(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - ('a' - 'A'))
		}
	}
	return b.String()
}

// NormalizeBrandKey 品牌查找键：去首尾空格 + 大写
// 只用于查找，展示名永远保留原始写法
func NormalizeBrandKey(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Round2 金额和百分比展示用，保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
