// Package source 读取表格数据（CSV 或 XLSX），每行生成一条以表头为键的记录。
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record 是一行原始数据；Line 为源文件中的行号（从 1 开始，表头为第 1 行）。
type Record struct {
	Line   int
	Fields map[string]string
}

// Options 控制读取行为。
type Options struct {
	// Sheet 为 XLSX 工作表名，为空时读取第一个工作表。
	Sheet string
	// Comma 为 CSV 分隔符，为 0 时使用逗号。
	Comma rune
}

// Load 按扩展名选择读取方式：.xlsx/.xlsm 使用 excelize，其余按 CSV 读取。
func Load(path string, opts Options) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts.Sheet)
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("无法打开数据文件 %s: %w", path, err)
		}
		defer file.Close()
		return ReadCSV(file, opts.Comma)
	}
}

// ReadCSV 读取带表头的分隔文本。输入可带 BOM（UTF-8 或 UTF-16），缺少的列不会出现在记录中。
func ReadCSV(r io.Reader, comma rune) ([]Record, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	if comma != 0 {
		cr.Comma = comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取 CSV 失败: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, Record{Line: line, Fields: zipRow(header, row)})
	}
	return records, nil
}

// ReadXLSX 读取工作表，第一行为表头。
func ReadXLSX(path, sheet string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开工作簿 %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("工作簿 %s 中没有工作表", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, Record{Line: i + 2, Fields: zipRow(header, row)})
	}
	return records, nil
}

func zipRow(header, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i >= len(row) {
			break
		}
		fields[name] = row[i]
	}
	return fields
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
