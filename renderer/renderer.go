package renderer

import (
	"image"
	"image/color"

	"github.com/ByLCY/piechart/chartspec"
	"github.com/ByLCY/piechart/layout"
)

// Image 是渲染得到的像素缓冲区。
type Image struct {
	Pixels *image.RGBA
	Width  int
	Height int
}

// Surface 是一次渲染使用的绘图上下文，坐标以像素为单位、原点在左上角、y 轴向下。
type Surface interface {
	DrawBackground(c color.Color)
	DrawSlice(g layout.SliceGeometry, fill, stroke color.Color, strokeWidth float64)
	// DrawText 以 (X, Y) 为中心绘制白色粗体标签。
	DrawText(p layout.LabelPlacement)
	DrawTitle(text string, x, y, sizePx float64)
	Raster() (*Image, error)
}

// SurfaceFactory 在启动时创建一次并注入流水线，每行数据复用同一实例创建新的 Surface。
type SurfaceFactory interface {
	NewSurface(width, height int) (Surface, error)
}

// Renderer 将图表描述输出为像素图，同时返回扇区排布信息用于调试。
type Renderer interface {
	Render(desc *chartspec.Description) (*Image, *layout.Debug, error)
}
