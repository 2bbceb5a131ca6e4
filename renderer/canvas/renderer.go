package canvasrenderer

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/piechart/fonts"
	"github.com/ByLCY/piechart/layout"
	"github.com/ByLCY/piechart/renderer"
)

// arcStep 是用折线逼近圆弧时每段的最大角度（弧度）。
const arcStep = math.Pi / 180

var titleColor = canvas.Hex("#666666")

// Factory creates tdewolff/canvas backed surfaces. 字体只加载一次，之后每张图复用。
type Factory struct {
	fontSrc string

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.SurfaceFactory = (*Factory)(nil)

// Options configures the canvas backend.
type Options struct {
	// Font 为标签字体：内置名称（embed:Go-Bold）或 TTF/OTF 文件路径，为空时使用 Go Bold。
	Font string
}

// NewFactory creates a factory using the built-in bold sans-serif face.
func NewFactory() *Factory { return NewFactoryWithOptions(Options{}) }

// NewFactoryWithOptions creates a factory with an optional custom label font.
func NewFactoryWithOptions(opts Options) *Factory {
	return &Factory{fontSrc: opts.Font}
}

// NewSurface 创建一张 width x height 像素的画布。
func (f *Factory) NewSurface(width, height int) (renderer.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", width, height)
	}
	family, err := f.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，y 轴向下，与布局坐标一致
	return &surface{
		canvas: c,
		ctx:    ctx,
		family: family,
		width:  float64(width),
		height: float64(height),
	}, nil
}

func (f *Factory) ensureFontFamily() (*canvas.FontFamily, error) {
	f.fontMu.Lock()
	defer f.fontMu.Unlock()

	if f.family != nil {
		return f.family, nil
	}
	family := canvas.NewFontFamily("piechart-label")
	data, err := loadFontBytes(f.fontSrc)
	if err == nil {
		err = family.LoadFont(data, 0, canvas.FontBold)
	}
	if err != nil {
		if f.fontSrc == "" {
			return nil, fmt.Errorf("加载标签字体失败: %w", err)
		}
		// 自定义字体不可用时回退到内置字体
		fallback, fbErr := fallbackFamily()
		if fbErr != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", f.fontSrc, err)
		}
		family = fallback
	}
	f.family = family
	return family, nil
}

func loadFontBytes(src string) ([]byte, error) {
	if src == "" {
		return fonts.Load(fonts.Bold)
	}
	if data, err := fonts.Load(src); err == nil {
		return data, nil
	}
	return os.ReadFile(src)
}

func fallbackFamily() (*canvas.FontFamily, error) {
	data, err := fonts.Load(fonts.Bold)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("piechart-fallback")
	if err := family.LoadFont(data, 0, canvas.FontBold); err != nil {
		return nil, err
	}
	return family, nil
}

type surface struct {
	canvas *canvas.Canvas
	ctx    *canvas.Context
	family *canvas.FontFamily
	width  float64
	height float64
}

func (s *surface) DrawBackground(c color.Color) {
	s.ctx.SetFillColor(c)
	s.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	s.ctx.SetStrokeWidth(0)
	s.ctx.DrawPath(0, 0, canvas.Rectangle(s.width, s.height))
}

// DrawSlice 绘制一个扇区（环形图时为环段），圆弧用折线逼近。
func (s *surface) DrawSlice(g layout.SliceGeometry, fill, stroke color.Color, strokeWidth float64) {
	p := &canvas.Path{}
	sweep := g.EndAngle - g.StartAngle
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	if steps < 1 {
		steps = 1
	}

	point := func(r, a float64) (float64, float64) {
		return g.CenterX + r*math.Cos(a), g.CenterY + r*math.Sin(a)
	}

	if g.InnerRadius > 0 {
		x, y := point(g.InnerRadius, g.StartAngle)
		p.MoveTo(x, y)
	} else {
		p.MoveTo(g.CenterX, g.CenterY)
	}
	for i := 0; i <= steps; i++ {
		x, y := point(g.OuterRadius, g.StartAngle+sweep*float64(i)/float64(steps))
		p.LineTo(x, y)
	}
	if g.InnerRadius > 0 {
		for i := steps; i >= 0; i-- {
			x, y := point(g.InnerRadius, g.StartAngle+sweep*float64(i)/float64(steps))
			p.LineTo(x, y)
		}
	}
	p.Close()

	s.ctx.SetFillColor(fill)
	if strokeWidth > 0 {
		s.ctx.SetStrokeColor(stroke)
		s.ctx.SetStrokeWidth(strokeWidth)
	} else {
		s.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		s.ctx.SetStrokeWidth(0)
	}
	s.ctx.DrawPath(0, 0, p)
}

// DrawText 以 (X, Y) 为中心（水平与垂直）绘制白色粗体标签。
func (s *surface) DrawText(pl layout.LabelPlacement) {
	if pl.FontSizePx < 1 {
		return
	}
	s.drawCentered(pl.Text, pl.X, pl.Y, float64(pl.FontSizePx), canvas.White)
}

func (s *surface) DrawTitle(text string, x, y, sizePx float64) {
	if sizePx <= 0 || text == "" {
		return
	}
	s.drawCentered(text, x, y, sizePx, titleColor)
}

func (s *surface) drawCentered(text string, x, y, sizePx float64, col color.Color) {
	face := s.family.Face(sizePx*layout.MmToPt, col, canvas.FontBold, canvas.FontNormal)
	line := canvas.NewTextLine(face, text, canvas.Center)
	// 基线位置：让上升部与下降部的中点落在 y 上
	metrics := face.Metrics()
	baseline := y + (metrics.Ascent-math.Abs(metrics.Descent))/2
	s.ctx.DrawText(x, baseline, line)
}

func (s *surface) Raster() (*renderer.Image, error) {
	img := rasterizer.Draw(s.canvas, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	if img == nil {
		return nil, fmt.Errorf("栅格化结果为空")
	}
	b := img.Bounds()
	return &renderer.Image{Pixels: img, Width: b.Dx(), Height: b.Dy()}, nil
}
