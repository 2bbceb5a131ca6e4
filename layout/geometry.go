package layout

import "math"

// DefaultStartAngle 从正上方（垂直方向）开始排布扇区；坐标系为 y 轴向下。
const DefaultStartAngle = -math.Pi / 2

// SliceGeometry 描述一个已排布扇区的几何信息（弧度，y 轴向下的画布坐标）。
type SliceGeometry struct {
	StartAngle  float64 `json:"startAngle"`
	EndAngle    float64 `json:"endAngle"`
	InnerRadius float64 `json:"innerRadius"` // 饼图为 0，环形图大于 0
	OuterRadius float64 `json:"outerRadius"`
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
}

// Sweep returns the wedge's non-negative angular extent.
func (g SliceGeometry) Sweep() float64 { return math.Abs(g.EndAngle - g.StartAngle) }

// Anchor 返回标签锚点：扇区角平分线上、内外半径中点处（饼图即 OuterRadius/2）。
func (g SliceGeometry) Anchor() (float64, float64) {
	mid := (g.StartAngle + g.EndAngle) / 2
	r := (g.InnerRadius + g.OuterRadius) / 2
	return g.CenterX + math.Cos(mid)*r, g.CenterY + math.Sin(mid)*r
}

// Frame 是整张饼图的圆心、半径与起始角。
type Frame struct {
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
	StartAngle  float64 `json:"startAngle"`
}

// Area 是可用于绘制图表的矩形区域（像素）。
type Area struct {
	X, Y, Width, Height float64
}

// NewFrame 在给定区域内居中放置饼图。外半径为短边扣除描边宽度后的一半，
// cutout 为环形图内半径占外半径的比例（0 表示实心饼图）。
func NewFrame(area Area, borderWidth, cutout float64) Frame {
	outer := (math.Min(area.Width, area.Height) - math.Max(borderWidth, 0)) / 2
	if outer < 0 {
		outer = 0
	}
	cutout = math.Min(math.Max(cutout, 0), 1)
	return Frame{
		CenterX:     area.X + area.Width/2,
		CenterY:     area.Y + area.Height/2,
		InnerRadius: outer * cutout,
		OuterRadius: outer,
		StartAngle:  DefaultStartAngle,
	}
}

// SliceGeometries 按数组顺序连续分配角度：扇区 i 的角度为 2π·|v_i|/Σ|v|。
// 总和为 0 时所有扇区的角度均为 0。
func SliceGeometries(values []float64, f Frame) []SliceGeometry {
	total := 0.0
	for _, v := range values {
		total += math.Abs(v)
	}

	out := make([]SliceGeometry, len(values))
	angle := f.StartAngle
	for i, v := range values {
		sweep := 0.0
		if total > 0 {
			sweep = 2 * math.Pi * math.Abs(v) / total
		}
		out[i] = SliceGeometry{
			StartAngle:  angle,
			EndAngle:    angle + sweep,
			InnerRadius: f.InnerRadius,
			OuterRadius: f.OuterRadius,
			CenterX:     f.CenterX,
			CenterY:     f.CenterY,
		}
		angle += sweep
	}
	return out
}
