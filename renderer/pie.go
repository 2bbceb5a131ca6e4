package renderer

import (
	"fmt"
	"image/color"

	"github.com/ByLCY/piechart/chartspec"
	"github.com/ByLCY/piechart/layout"
)

const (
	titleFontSize = 12.0
	titlePadding  = 10.0
)

// PieOptions 配置画布尺寸与饼图外观。
type PieOptions struct {
	Width  int
	Height int
	// Background 为 nil 时不填充背景（透明）。
	Background color.Color
	// Cutout 为环形图内半径比例，0 表示实心饼图。
	Cutout float64
	// Rotation 是相对默认起始角（正上方）的顺时针偏移，单位弧度。
	Rotation  float64
	ShowTitle bool
}

// DefaultPieOptions 返回默认外观：600x600、白色背景、不显示标题。
func DefaultPieOptions() PieOptions {
	return PieOptions{
		Width:      600,
		Height:     600,
		Background: color.White,
	}
}

// Pie 使用注入的 SurfaceFactory 绘制饼图。
type Pie struct {
	factory SurfaceFactory
	opts    PieOptions
}

var _ Renderer = (*Pie)(nil)

// NewPie creates a pie renderer drawing through factory.
func NewPie(factory SurfaceFactory, opts PieOptions) *Pie {
	return &Pie{factory: factory, opts: opts}
}

// Render 依次绘制背景、扇区、扇区标签与可选标题，然后栅格化。
// 绘图库内部的 panic 会被转换为错误返回。
func (p *Pie) Render(desc *chartspec.Description) (img *Image, dbg *layout.Debug, err error) {
	if p.factory == nil {
		return nil, nil, fmt.Errorf("renderer 不能为空")
	}
	if desc == nil || desc.Len() == 0 {
		return nil, nil, fmt.Errorf("图表描述为空")
	}
	defer func() {
		if r := recover(); r != nil {
			img, dbg, err = nil, nil, fmt.Errorf("绘制失败: %v", r)
		}
	}()

	surface, err := p.factory.NewSurface(p.opts.Width, p.opts.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("创建绘图上下文失败: %w", err)
	}
	if p.opts.Background != nil {
		surface.DrawBackground(p.opts.Background)
	}

	area := layout.Area{Width: float64(p.opts.Width), Height: float64(p.opts.Height)}
	if p.opts.ShowTitle {
		titleHeight := titleFontSize*1.2 + 2*titlePadding
		area.Y = titleHeight
		area.Height -= titleHeight
	}
	frame := layout.NewFrame(area, desc.BorderWidth, p.opts.Cutout)
	frame.StartAngle += p.opts.Rotation

	geoms := layout.SliceGeometries(desc.Values, frame)
	dbg = &layout.Debug{Title: desc.Title, Frame: frame, Slices: make([]layout.SliceDebug, len(geoms))}

	for i, g := range geoms {
		if g.Sweep() == 0 {
			continue
		}
		surface.DrawSlice(g, desc.FillColors[i], desc.StrokeColors[i], desc.BorderWidth)
	}
	// 标签在全部扇区绘制完成后再绘制，避免被相邻扇区覆盖
	for i, g := range geoms {
		placement, ok := layout.Place(g, desc.Values[i])
		dbg.Slices[i] = layout.SliceDebug{
			Index:     i,
			Label:     desc.Labels[i],
			Value:     desc.Values[i],
			Geometry:  g,
			Placement: placement,
			Drawn:     ok,
		}
		if ok {
			surface.DrawText(placement)
		}
	}

	if p.opts.ShowTitle && desc.Title != "" {
		surface.DrawTitle(desc.Title, float64(p.opts.Width)/2, titlePadding+titleFontSize*0.6, titleFontSize)
	}

	img, err = surface.Raster()
	if err != nil {
		return nil, nil, fmt.Errorf("栅格化失败: %w", err)
	}
	return img, dbg, nil
}
