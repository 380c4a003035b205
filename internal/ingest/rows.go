// Package ingest 把外部解析好的表格（表头 + 字符串单元格）转成强类型行。
// 文件格式解析（xlsx 等）是外部职责，这里只做表头识别和取值转换；
// 单行出错只跳过该行，绝不中断整批导入。
package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Table 外部解析器交付的原始表格
type Table struct {
	Headers []string
	Rows    [][]string
}

// 表头识别出的逻辑字段
const (
	FieldArticle           = "article"
	FieldAdditionalArticle = "additional_article"
	FieldBrand             = "brand"
	FieldName              = "name"
	FieldNameEn            = "name_en"
	FieldPrice             = "price"
	FieldWeight            = "weight"
	FieldVolumeCoef        = "volume_coefficient"
	FieldDate              = "date"
	FieldPeriod            = "period"
	FieldQuantity          = "quantity"
	FieldVolumeGroup       = "volume_group"
	FieldRequests          = "requests"
	FieldSource            = "source"
	FieldNotes             = "notes"
)

// MapColumns 按表头子串识别列含义（源文件是俄语表头）
// 返回 列下标 -> 逻辑字段；无法识别的列忽略
func MapColumns(headers []string) map[int]string {
	mapping := make(map[int]string)
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "артикул") && strings.Contains(lower, "доп"):
			mapping[i] = FieldAdditionalArticle
		case strings.Contains(lower, "артикул") || strings.Contains(lower, "article"):
			mapping[i] = FieldArticle
		case strings.Contains(lower, "марка") || strings.Contains(lower, "бренд"):
			mapping[i] = FieldBrand
		case (strings.Contains(lower, "название") || strings.Contains(lower, "наименование")) &&
			strings.Contains(lower, "англ"):
			mapping[i] = FieldNameEn
		case strings.Contains(lower, "название") || strings.Contains(lower, "наименование"):
			mapping[i] = FieldName
		case strings.Contains(lower, "цена"):
			mapping[i] = FieldPrice
		case strings.Contains(lower, "вес"):
			mapping[i] = FieldWeight
		case strings.Contains(lower, "коэф") && strings.Contains(lower, "объем"):
			mapping[i] = FieldVolumeCoef
		case strings.Contains(lower, "период"):
			mapping[i] = FieldPeriod
		case strings.Contains(lower, "дата"):
			mapping[i] = FieldDate
		case strings.Contains(lower, "количество") || strings.Contains(lower, "продажи") ||
			strings.Contains(lower, "шт"):
			mapping[i] = FieldQuantity
		case strings.Contains(lower, "группа"):
			mapping[i] = FieldVolumeGroup
		case strings.Contains(lower, "запрос"):
			mapping[i] = FieldRequests
		case strings.Contains(lower, "источник"):
			mapping[i] = FieldSource
		case strings.Contains(lower, "примеч"):
			mapping[i] = FieldNotes
		}
	}
	return mapping
}

// Row 一行已识别的数据，逻辑字段 -> 原始单元格文本
type Row map[string]string

// MapRows 按列映射展开所有行
func MapRows(table Table) []Row {
	mapping := MapColumns(table.Headers)
	rows := make([]Row, 0, len(table.Rows))
	for _, cells := range table.Rows {
		row := make(Row, len(mapping))
		for i, field := range mapping {
			if i < len(cells) {
				row[field] = strings.TrimSpace(cells[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Str 取字符串字段
func (r Row) Str(field string) string {
	return r[field]
}

// Float 取数值字段；俄语文件里小数点常写成逗号
func (r Row) Float(field string) (float64, bool) {
	raw := strings.TrimSpace(r[field])
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	raw = strings.ReplaceAll(raw, " ", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int 取整数字段
func (r Row) Int(field string) (int, bool) {
	v, ok := r.Float(field)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// 支持的日期写法
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
}

// Date 取日期字段；解析失败返回 (零值, false)，由调用方决定兜底
func (r Row) Date(field string) (time.Time, bool) {
	raw := strings.TrimSpace(r[field])
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
