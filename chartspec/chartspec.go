// Package chartspec 将校验后的样本映射为声明式的饼图描述。
package chartspec

import (
	"fmt"
	"image/color"

	"github.com/ByLCY/piechart/binding"
	"github.com/ByLCY/piechart/sample"
)

// DefaultTitleTemplate 是默认标题模板，${id} 为行标识。
const DefaultTitleTemplate = "Chart for ${id}"

// DefaultBorderWidth 是扇区描边宽度（像素）。
const DefaultBorderWidth = 1.0

// PaletteEntry 是调色板中的一项：图例标签、填充色与描边色。
type PaletteEntry struct {
	Label  string
	Fill   color.NRGBA
	Stroke color.NRGBA
}

// palette 按位置索引，扇区 i 总是使用第 i 项。
var palette = [sample.MaxValues]PaletteEntry{
	{Label: "Field 1", Fill: rgba(255, 99, 132, 0.8), Stroke: rgba(255, 99, 132, 1)},
	{Label: "Field 2", Fill: rgba(54, 162, 235, 0.8), Stroke: rgba(54, 162, 235, 1)},
	{Label: "Field 3", Fill: rgba(255, 206, 86, 0.8), Stroke: rgba(255, 206, 86, 1)},
	{Label: "Field 4", Fill: rgba(75, 192, 192, 0.8), Stroke: rgba(75, 192, 192, 1)},
	{Label: "Field 5", Fill: rgba(153, 102, 255, 0.8), Stroke: rgba(153, 102, 255, 1)},
}

// Palette returns a copy of the fixed slice palette.
func Palette() [sample.MaxValues]PaletteEntry { return palette }

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// Description 是一次渲染所需的完整图表描述；四个并列切片长度相同。
type Description struct {
	Title        string
	Labels       []string
	Values       []float64
	FillColors   []color.NRGBA
	StrokeColors []color.NRGBA
	BorderWidth  float64
}

// Len returns the number of slices.
func (d *Description) Len() int { return len(d.Values) }

// Options 控制标题模板与描边宽度。
type Options struct {
	TitleTemplate string
	BorderWidth   float64
	// Record 为原始记录，可在标题模板中以 ${record.<列名>} 引用。
	Record map[string]string
}

// Build 将样本映射为图表描述：调色板按样本长度截断，数值原样透传（不做归一化）。
func Build(s sample.Sample, opts Options) (*Description, error) {
	n := s.Len()
	if n == 0 || n > len(palette) {
		return nil, fmt.Errorf("样本 %q 的数值个数 %d 超出范围 1..%d", s.ID, n, len(palette))
	}

	tmpl := opts.TitleTemplate
	if tmpl == "" {
		tmpl = DefaultTitleTemplate
	}
	border := opts.BorderWidth
	if border < 0 {
		border = 0
	}

	desc := &Description{
		Title:        binding.Interpolate(tmpl, titleData(s, opts.Record)),
		Labels:       make([]string, n),
		Values:       make([]float64, n),
		FillColors:   make([]color.NRGBA, n),
		StrokeColors: make([]color.NRGBA, n),
		BorderWidth:  border,
	}
	copy(desc.Values, s.Values)
	for i := 0; i < n; i++ {
		desc.Labels[i] = palette[i].Label
		desc.FillColors[i] = palette[i].Fill
		desc.StrokeColors[i] = palette[i].Stroke
	}
	return desc, nil
}

func titleData(s sample.Sample, record map[string]string) map[string]any {
	data := map[string]any{
		"id":     s.ID,
		"count":  s.Len(),
		"values": s.Values,
	}
	if record != nil {
		data["record"] = record
	}
	return data
}
