package binding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpolateTitle(t *testing.T) {
	data := map[string]any{
		"id":     "chart1",
		"count":  3,
		"values": []float64{10, 20.5, 30},
		"record": map[string]string{"Field1": "10"},
	}
	require.Equal(t, "Chart for chart1", Interpolate("Chart for ${id}", data))
	require.Equal(t, "3 slices, first 10", Interpolate("${count} slices, first ${record.Field1}", data))
	require.Equal(t, "second=20.5", Interpolate("second=${ values[1] }", data))
}

func TestInterpolateKeepsUnknownPlaceholders(t *testing.T) {
	data := map[string]any{"id": "x", "values": []float64{1}}
	require.Equal(t, "${missing} x", Interpolate("${missing} ${id}", data))
	require.Equal(t, "${values[4]}", Interpolate("${values[4]}", data))
	require.Equal(t, "${id}", Interpolate("${id}", nil))
}
