package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
)

const chartsCSV = `Filename,Field1,Field2,Field3,Field4,Field5
chart1,10,20,30,,
,5,,,,
x,abc,,15
`

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(chartsCSV), 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, 2, records[0].Line)
	require.Equal(t, "chart1", records[0].Fields["Filename"])
	require.Equal(t, "30", records[0].Fields["Field3"])

	require.Equal(t, "", records[1].Fields["Filename"])

	// 短行：缺少的列不出现在记录中
	_, ok := records[2].Fields["Field4"]
	require.False(t, ok)
	require.Equal(t, "15", records[2].Fields["Field3"])
}

func TestReadCSVStripsUTF8BOM(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("\ufeffFilename;Field1\na;1\n"), ';')
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "a", records[0].Fields["Filename"])
}

func TestReadCSVDecodesUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("Filename,Field1\nb,2\n"))
	require.NoError(t, err)

	records, err := ReadCSV(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "b", records[0].Fields["Filename"])
	require.Equal(t, "2", records[0].Fields["Field1"])
}

func TestReadCSVEmptyInput(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(""), 0)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Filename", "Field1", "Field2"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"chart1", 10, 20.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"chart2", "abc", 3}))

	path := filepath.Join(t.TempDir(), "charts.xlsx")
	require.NoError(t, f.SaveAs(path))

	records, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "chart1", records[0].Fields["Filename"])
	require.Equal(t, "20.5", records[0].Fields["Field2"])
	require.Equal(t, 4, records[1].Line)
	require.Equal(t, "abc", records[1].Fields["Field1"])

	_, err = ReadXLSX(path, "Missing")
	require.Error(t, err)
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.csv")
	require.NoError(t, os.WriteFile(path, []byte(chartsCSV), 0o644))
	records, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.Error(t, err)
}
