package sample

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// MaxValues 是单行数据最多可携带的数值列数量（与调色板长度一致）。
const MaxValues = 5

// ErrMalformedRow 表示缺少标识或没有任何可解析数值的行。
var ErrMalformedRow = errors.New("malformed row")

// Sample 是经过校验的一行数据：一个标识与 1..MaxValues 个有限数值。
type Sample struct {
	ID     string
	Values []float64
}

// Len returns the number of slices the sample describes.
func (s Sample) Len() int { return len(s.Values) }

// Schema 描述原始记录中的列名：标识列与按顺序排列的数值列。
type Schema struct {
	IDColumn     string
	ValueColumns []string
}

// DefaultSchema 返回默认列名：Filename 与 Field1..Field5。
func DefaultSchema() Schema {
	return Schema{
		IDColumn:     "Filename",
		ValueColumns: []string{"Field1", "Field2", "Field3", "Field4", "Field5"},
	}
}

// Validate 检查列配置是否合法。
func (s Schema) Validate() error {
	if strings.TrimSpace(s.IDColumn) == "" {
		return fmt.Errorf("标识列不能为空")
	}
	if len(s.ValueColumns) == 0 {
		return fmt.Errorf("至少需要一个数值列")
	}
	if len(s.ValueColumns) > MaxValues {
		return fmt.Errorf("数值列最多 %d 个，实际 %d 个", MaxValues, len(s.ValueColumns))
	}
	return nil
}

// Validate 将原始记录规范化为 Sample。
// 标识去除首尾空白后作为文件名使用，仅含空白的标识视为缺失。
// 无法解析的数值单元格被忽略（不补零），因此 Values 的长度可以是 1..MaxValues。
func Validate(record map[string]string, schema Schema) (Sample, error) {
	id := strings.TrimSpace(record[schema.IDColumn])
	if id == "" {
		return Sample{}, fmt.Errorf("%w: 缺少 %s", ErrMalformedRow, schema.IDColumn)
	}

	columns := schema.ValueColumns
	if len(columns) > MaxValues {
		columns = columns[:MaxValues]
	}
	values := make([]float64, 0, len(columns))
	for _, col := range columns {
		if v, ok := parseValue(record[col]); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return Sample{}, fmt.Errorf("%w: %s 没有可解析的数值", ErrMalformedRow, id)
	}
	return Sample{ID: id, Values: values}, nil
}

// leadingNumber 匹配单元格开头的十进制数，其后的单位、百分号、千分位等被忽略。
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// parseValue 取单元格开头最长的十进制数（"12%" → 12，"1,000" → 1，"0x1p4" → 0）。
// 开头不是数字或结果不是有限值时视为缺失。
func parseValue(raw string) (float64, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
