package chartspec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/piechart/chartspec"
	"github.com/ByLCY/piechart/sample"
)

func TestBuildParallelSequencesFollowSampleLength(t *testing.T) {
	pal := chartspec.Palette()
	for k := 1; k <= sample.MaxValues; k++ {
		values := make([]float64, k)
		for i := range values {
			// 降序数值，确认颜色按位置分配而非按大小排序
			values[i] = float64(100 - i*10)
		}
		desc, err := chartspec.Build(sample.Sample{ID: "s", Values: values}, chartspec.Options{})
		require.NoError(t, err)
		require.Len(t, desc.Labels, k)
		require.Len(t, desc.Values, k)
		require.Len(t, desc.FillColors, k)
		require.Len(t, desc.StrokeColors, k)
		for i := 0; i < k; i++ {
			require.Equal(t, values[i], desc.Values[i])
			require.Equal(t, pal[i].Label, desc.Labels[i])
			require.Equal(t, pal[i].Fill, desc.FillColors[i])
			require.Equal(t, pal[i].Stroke, desc.StrokeColors[i])
		}
	}
}

func TestBuildPositionalNotSorted(t *testing.T) {
	desc, err := chartspec.Build(sample.Sample{ID: "a", Values: []float64{1, 50, 3}}, chartspec.Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"Field 1", "Field 2", "Field 3"}, desc.Labels)
	require.Equal(t, []float64{1, 50, 3}, desc.Values)
}

func TestBuildTitle(t *testing.T) {
	s := sample.Sample{ID: "chart1", Values: []float64{10, 20, 30}}
	desc, err := chartspec.Build(s, chartspec.Options{})
	require.NoError(t, err)
	require.Equal(t, "Chart for chart1", desc.Title)

	desc, err = chartspec.Build(s, chartspec.Options{
		TitleTemplate: "${id}: ${record.Region} (${count})",
		Record:        map[string]string{"Region": "north"},
	})
	require.NoError(t, err)
	require.Equal(t, "chart1: north (3)", desc.Title)
}

func TestBuildDeterministicAndDoesNotAlias(t *testing.T) {
	s := sample.Sample{ID: "d", Values: []float64{4, 5}}
	a, err := chartspec.Build(s, chartspec.Options{BorderWidth: 2})
	require.NoError(t, err)
	b, err := chartspec.Build(s, chartspec.Options{BorderWidth: 2})
	require.NoError(t, err)
	require.Equal(t, a, b)

	a.Values[0] = 99
	require.Equal(t, 4.0, s.Values[0])
}

func TestBuildRejectsOutOfRangeSamples(t *testing.T) {
	_, err := chartspec.Build(sample.Sample{ID: "e"}, chartspec.Options{})
	require.Error(t, err)
	_, err = chartspec.Build(sample.Sample{ID: "e", Values: make([]float64, 6)}, chartspec.Options{})
	require.Error(t, err)
}
