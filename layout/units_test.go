package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

func TestParseLengthPixels(t *testing.T) {
	cases := map[string]float64{
		"600":    600,
		"800px":  800,
		"72pt":   96,
		"1in":    96,
		"2.54cm": 96,
		"25.4mm": 96,
	}
	for in, want := range cases {
		l, err := ParseLength(in)
		if err != nil {
			t.Fatalf("%s 解析失败: %v", in, err)
		}
		got, err := l.Pixels()
		if err != nil {
			t.Fatalf("%s 转像素失败: %v", in, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("%s 期望 %gpx，实际 %g", in, want, got)
		}
	}
}

func TestParseLengthAnglesAndRatios(t *testing.T) {
	l, err := ParseLength("-90deg")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if got, _ := l.Radians(); math.Abs(got+math.Pi/2) > 1e-12 {
		t.Fatalf("-90deg 期望 -π/2，实际 %g", got)
	}
	l, _ = ParseLength("1.5rad")
	if got, _ := l.Radians(); got != 1.5 {
		t.Fatalf("1.5rad 期望 1.5，实际 %g", got)
	}
	l, _ = ParseLength("40%")
	if got, _ := l.Ratio(); math.Abs(got-0.4) > 1e-12 {
		t.Fatalf("40%% 期望 0.4，实际 %g", got)
	}
	if _, err := l.Pixels(); err == nil {
		t.Fatalf("百分比不应被当作长度")
	}
	if _, err := l.Radians(); err == nil {
		t.Fatalf("百分比不应被当作角度")
	}
}

func TestParseLengthRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "px", "wide", "NaN", "1e400"} {
		if _, err := ParseLength(in); err == nil {
			t.Fatalf("%q 应当解析失败", in)
		}
	}
}
