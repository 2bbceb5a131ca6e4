package layout

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxFontSize 是标签字号上限（像素），与扇区大小无关。
	MaxFontSize = 80.0
	// GlyphWidthRatio 是平均字宽相对字号的估计值。
	GlyphWidthRatio = 0.6
	// HeightRatio 是为标签高度预留的外半径比例。
	HeightRatio = 0.4
)

// LabelPlacement 是布局引擎输出的绘制指令：居中、粗体、白色文本。
type LabelPlacement struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Text       string  `json:"text"`
	FontSizePx int     `json:"fontSizePx"`
}

// FormatLabel 生成扇区标签文本，例如 " 42% "。
// 前后空格用于避免字形贴边被裁切。
func FormatLabel(value float64) string {
	return " " + formatNumber(value) + "% "
}

// FontSize 计算标签字号：
//
//	angle           = |end - start|
//	arcLength       = (outerRadius / 2) * angle
//	availableHeight = outerRadius * 0.4
//	sizeByWidth     = arcLength / (len(text) * 0.6)
//	fontSize        = floor(min(sizeByWidth, availableHeight, 80))
//
// 文本为空时 sizeByWidth 取 availableHeight。结果可能为 0。
func FontSize(g SliceGeometry, text string) int {
	if g.OuterRadius <= 0 {
		return 0
	}
	midRadius := g.OuterRadius / 2
	arcLength := midRadius * g.Sweep()
	availableHeight := g.OuterRadius * HeightRatio

	sizeByWidth := availableHeight
	if n := len(text); n > 0 {
		sizeByWidth = arcLength / (float64(n) * GlyphWidthRatio)
	}

	size := math.Min(math.Min(sizeByWidth, availableHeight), MaxFontSize)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int(math.Floor(size))
}

// Place 为单个扇区计算标签位置与字号。
// 字号小于 1px（零角度扇区或过于拥挤的饼图）时返回 false，调用方跳过绘制。
func Place(g SliceGeometry, value float64) (LabelPlacement, bool) {
	text := FormatLabel(value)
	size := FontSize(g, text)
	x, y := g.Anchor()
	p := LabelPlacement{X: x, Y: y, Text: text, FontSizePx: size}
	return p, size >= 1
}

// formatNumber 按最短往返十进制输出数值；绝对值不在 [1e-6, 1e21) 内时使用指数形式（如 1e+21、1.5e-7）。
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, ok := strings.Cut(s, "e")
		if !ok || len(exp) < 2 {
			return s
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
