// Package config 将 chart 配置文档解析为批处理所需的参数，未出现的项保持默认值。
package config

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/piechart/chartspec"
	"github.com/ByLCY/piechart/dsl"
	"github.com/ByLCY/piechart/layout"
	"github.com/ByLCY/piechart/sample"
	"github.com/ByLCY/piechart/sink"
)

// Config 是一次批处理的完整配置。
type Config struct {
	Input  Input
	Canvas Canvas
	Pie    Pie
	Output Output
}

// Input 描述数据来源。
type Input struct {
	Path      string
	Sheet     string
	Delimiter rune
	Schema    sample.Schema
}

// Canvas 描述画布。Background 为 nil 表示透明背景。
type Canvas struct {
	Width      int
	Height     int
	Background color.Color
	Font       string
}

// Pie 描述饼图外观。Rotation 单位为弧度。
type Pie struct {
	BorderWidth   float64
	Cutout        float64
	Rotation      float64
	TitleTemplate string
	ShowTitle     bool
}

// Output 描述输出位置与格式。
type Output struct {
	Dir         string
	Format      sink.ImageFormat
	JPEGQuality int
	DebugDir    string
}

// Default 返回默认配置：data/charts.csv → chart-images/<id>.png，600x600 白底。
func Default() Config {
	return Config{
		Input: Input{
			Path:   "data/charts.csv",
			Schema: sample.DefaultSchema(),
		},
		Canvas: Canvas{
			Width:      600,
			Height:     600,
			Background: color.White,
		},
		Pie: Pie{
			BorderWidth:   chartspec.DefaultBorderWidth,
			TitleTemplate: chartspec.DefaultTitleTemplate,
		},
		Output: Output{
			Dir:         "chart-images",
			Format:      sink.FormatPNG,
			JPEGQuality: 90,
		},
	}
}

// Load 读取并解析配置文件。
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()
	return parse(path, file)
}

// Parse 从 io.Reader 解析配置。
func Parse(r io.Reader) (Config, error) {
	return parse("", r)
}

func parse(name string, r io.Reader) (Config, error) {
	doc, err := dsl.ParseNamed(name, r)
	if err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg := Default()
	if err := cfg.Apply(doc); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply 将文档中的各段覆盖到 cfg 上。
func (c *Config) Apply(doc *dsl.Document) error {
	if doc == nil {
		return fmt.Errorf("配置文档为空")
	}
	for _, section := range doc.Sections {
		block := section.Body()
		if block == nil {
			continue
		}
		for _, a := range block.Assignments {
			if err := c.assign(section.Kind(), a); err != nil {
				return fmt.Errorf("%s: %s.%s: %w", a.Pos, section.Kind(), a.Key, err)
			}
		}
	}
	return c.Validate()
}

func (c *Config) assign(section string, a *dsl.Assignment) error {
	key := strings.ToLower(a.Key)
	val := a.Value
	var err error
	switch section + "." + key {
	case "input.path":
		c.Input.Path = valueToString(val)
	case "input.sheet":
		c.Input.Sheet = valueToString(val)
	case "input.id":
		c.Input.Schema.IDColumn = valueToString(val)
	case "input.fields":
		c.Input.Schema.ValueColumns = valueToStringSlice(val)
	case "input.delimiter":
		c.Input.Delimiter, err = parseDelimiter(valueToString(val))
	case "canvas.width":
		c.Canvas.Width, err = parsePixels(valueToString(val))
	case "canvas.height":
		c.Canvas.Height, err = parsePixels(valueToString(val))
	case "canvas.background":
		c.Canvas.Background, err = ParseColor(valueToString(val))
	case "canvas.font":
		c.Canvas.Font = valueToString(val)
	case "pie.border":
		c.Pie.BorderWidth, err = parseBorder(valueToString(val))
	case "pie.cutout":
		c.Pie.Cutout, err = parseRatio(valueToString(val))
	case "pie.rotation":
		c.Pie.Rotation, err = parseDegrees(valueToString(val))
	case "pie.title":
		c.Pie.TitleTemplate = valueToString(val)
	case "pie.show-title":
		c.Pie.ShowTitle, err = strconv.ParseBool(valueToString(val))
	case "output.dir":
		c.Output.Dir = valueToString(val)
	case "output.format":
		c.Output.Format, err = sink.ParseFormat(valueToString(val))
	case "output.quality":
		c.Output.JPEGQuality, err = strconv.Atoi(valueToString(val))
	case "output.debug":
		c.Output.DebugDir = valueToString(val)
	default:
		return fmt.Errorf("未知配置项")
	}
	return err
}

// Validate 检查配置的取值范围。
func (c Config) Validate() error {
	if err := c.Input.Schema.Validate(); err != nil {
		return err
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("画布尺寸无效: %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Pie.BorderWidth < 0 {
		return fmt.Errorf("描边宽度不能为负数: %g", c.Pie.BorderWidth)
	}
	if c.Pie.Cutout < 0 || c.Pie.Cutout >= 1 {
		return fmt.Errorf("cutout 必须在 [0, 100%%) 范围内: %g", c.Pie.Cutout)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("输出目录不能为空")
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("JPEG 质量必须在 1-100 之间: %d", c.Output.JPEGQuality)
	}
	return nil
}

// ParseColor 解析 #rgb / #rrggbb / #rrggbbaa，或 none / transparent（返回 nil）。
func ParseColor(value string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "none", "transparent":
		return nil, nil
	case "white":
		return color.White, nil
	case "black":
		return color.Black, nil
	}
	v = strings.TrimPrefix(v, "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]}) + "ff"
	case 6:
		v += "ff"
	case 8:
	default:
		return nil, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}

func parseBorder(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.Pixels()
}

func parsePixels(value string) (int, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	px, err := l.Pixels()
	return int(math.Round(px)), err
}

// parseRatio 接受 "50%" 或 0.5。
func parseRatio(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.Ratio()
}

// parseDegrees 接受 "90"、"90deg" 或 "1.5rad"，返回弧度。
func parseDegrees(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.Radians()
}

func parseDelimiter(value string) (rune, error) {
	if value == `\t` || value == "tab" {
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("分隔符必须是单个字符: %q", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
