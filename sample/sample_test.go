package sample_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/piechart/sample"
)

func TestValidateKeepsColumnOrder(t *testing.T) {
	rec := map[string]string{"Filename": "chart1", "Field1": "10", "Field2": "20", "Field3": "30"}
	s, err := sample.Validate(rec, sample.DefaultSchema())
	require.NoError(t, err)
	require.Equal(t, "chart1", s.ID)
	require.Equal(t, []float64{10, 20, 30}, s.Values)
}

func TestValidateDropsUnparsableFields(t *testing.T) {
	rec := map[string]string{"Filename": "x", "Field1": "abc", "Field2": "", "Field3": "15"}
	s, err := sample.Validate(rec, sample.DefaultSchema())
	require.NoError(t, err)
	require.Equal(t, []float64{15}, s.Values)
}

func TestValidateSkipsWhitespaceAndNonFinite(t *testing.T) {
	rec := map[string]string{
		"Filename": "y",
		"Field1":   "   ",
		"Field2":   " 2.5 ",
		"Field3":   "NaN",
		"Field4":   "+Inf",
		"Field5":   "-4",
	}
	s, err := sample.Validate(rec, sample.DefaultSchema())
	require.NoError(t, err)
	require.Equal(t, []float64{2.5, -4}, s.Values)
}

func TestValidateRejectsMalformedRows(t *testing.T) {
	cases := map[string]map[string]string{
		"empty id":    {"Filename": "", "Field1": "5"},
		"blank id":    {"Filename": "  ", "Field1": "5"},
		"missing id":  {"Field1": "5"},
		"no values":   {"Filename": "z"},
		"all invalid": {"Filename": "z", "Field1": "a", "Field2": "b", "Field3": " "},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := sample.Validate(rec, sample.DefaultSchema())
			require.Error(t, err)
			require.True(t, errors.Is(err, sample.ErrMalformedRow), "got %v", err)
		})
	}
}

func TestValidateCustomSchema(t *testing.T) {
	schema := sample.Schema{IDColumn: "name", ValueColumns: []string{"b", "a"}}
	require.NoError(t, schema.Validate())

	s, err := sample.Validate(map[string]string{"name": "n", "a": "1", "b": "2"}, schema)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1}, s.Values)
}

func TestSchemaValidate(t *testing.T) {
	require.Error(t, sample.Schema{ValueColumns: []string{"a"}}.Validate())
	require.Error(t, sample.Schema{IDColumn: "id"}.Validate())
	require.Error(t, sample.Schema{IDColumn: "id", ValueColumns: []string{"a", "b", "c", "d", "e", "f"}}.Validate())
	require.NoError(t, sample.DefaultSchema().Validate())
}

func TestValidateKeepsLeadingNumber(t *testing.T) {
	cases := map[string]float64{
		"12%":     12,
		"12abc":   12,
		"3.5 kg":  3.5,
		"1,000":   1,
		"0x1p4":   0,
		"  -.5e2": -50,
		"7e":      7,
		"12.":     12,
	}
	for cell, want := range cases {
		t.Run(cell, func(t *testing.T) {
			s, err := sample.Validate(map[string]string{"Filename": "p", "Field1": cell}, sample.DefaultSchema())
			require.NoError(t, err)
			require.Equal(t, []float64{want}, s.Values)
			require.Equal(t, 1, s.Len())
		})
	}
}

func TestValidateDropsCellsWithoutLeadingNumber(t *testing.T) {
	for _, cell := range []string{"abc", "%12", "Infinity", "1e400", "-", "."} {
		t.Run(cell, func(t *testing.T) {
			_, err := sample.Validate(map[string]string{"Filename": "p", "Field1": cell}, sample.DefaultSchema())
			require.ErrorIs(t, err, sample.ErrMalformedRow)
		})
	}
}

func TestValidateTrimsID(t *testing.T) {
	s, err := sample.Validate(map[string]string{"Filename": " chart1 ", "Field1": "1"}, sample.DefaultSchema())
	require.NoError(t, err)
	require.Equal(t, "chart1", s.ID)
}
