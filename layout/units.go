package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe helpers for lengths, angles and ratios written in config.

// Unit represents the original unit of a value as specified in config.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers
	UnitPX                  // pixels
	UnitPT                  // points
	UnitMM                  // millimeters
	UnitCM                  // centimeters
	UnitIN                  // inches
	UnitPercent             // percentage of a reference value
	UnitDeg                 // degrees
	UnitRad                 // radians
)

// Conversion constants between pt and mm.
// 画布以 1 dot/mm 栅格化，因此绘图单位 mm 即像素，字号需要从 mm 换算成 pt。
const (
	PtToMm = 25.4 / 72
	MmToPt = 1.0 / PtToMm
)

// PxPerInch 是物理长度换算成像素时使用的分辨率。
const PxPerInch = 96.0

var unitSuffixes = []struct {
	s string
	u Unit
}{
	{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN},
	{"%", UnitPercent}, {"deg", UnitDeg}, {"rad", UnitRad},
}

// String returns a short string for a Unit value.
func (u Unit) String() string {
	for _, suf := range unitSuffixes {
		if suf.u == u {
			return suf.s
		}
	}
	return ""
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ParseLength parses "12", "12px", "9pt", "40%", "90deg" and the like.
func ParseLength(value string) (Length, error) {
	lower := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	num := lower
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, fmt.Errorf("数值 %q 无法解析", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// Pixels converts an absolute length to pixels. 无单位视为像素。
func (l Length) Pixels() (float64, error) {
	switch l.Unit {
	case UnitNone, UnitPX:
		return l.Value, nil
	case UnitPT:
		return l.Value * PxPerInch / 72, nil
	case UnitMM:
		return l.Value * PxPerInch / 25.4, nil
	case UnitCM:
		return l.Value * 10 * PxPerInch / 25.4, nil
	case UnitIN:
		return l.Value * PxPerInch, nil
	}
	return 0, fmt.Errorf("%g%s 不是长度", l.Value, l.Unit)
}

// Radians converts an angle to radians. 无单位视为角度。
func (l Length) Radians() (float64, error) {
	switch l.Unit {
	case UnitNone, UnitDeg:
		return l.Value * math.Pi / 180, nil
	case UnitRad:
		return l.Value, nil
	}
	return 0, fmt.Errorf("%g%s 不是角度", l.Value, l.Unit)
}

// Ratio converts a percentage or a plain fraction to a fraction.
func (l Length) Ratio() (float64, error) {
	switch l.Unit {
	case UnitNone:
		return l.Value, nil
	case UnitPercent:
		return l.Value / 100, nil
	}
	return 0, fmt.Errorf("%g%s 不是比例", l.Value, l.Unit)
}
