package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/piechart/config"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunWritesOneImagePerValidRow(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Path = writeCSV(t, "Filename,Field1,Field2,Field3,Field4,Field5\n"+
		"chart1,10,20,30,,\n"+
		",5,,,,\n"+
		"x,abc,,15,,\n")
	cfg.Output.Dir = filepath.Join(t.TempDir(), "chart-images")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, false, &stdout, &stderr))

	file, err := os.Open(filepath.Join(cfg.Output.Dir, "chart1.png"))
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, 600, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())

	require.FileExists(t, filepath.Join(cfg.Output.Dir, "x.png"))
	require.Contains(t, stdout.String(), "共 3 行，生成 2 张，无效 1 行，失败 0 行")
	require.NotEmpty(t, stderr.String())
}

func TestRunStrictFailsOnRejectedRows(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Path = writeCSV(t, "Filename,Field1\nok,1\n,2\n")
	cfg.Output.Dir = t.TempDir()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, true, &stdout, &stderr)
	require.ErrorIs(t, err, errRowsFailed)
	require.FileExists(t, filepath.Join(cfg.Output.Dir, "ok.png"))
}

func TestRunMissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Path = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Output.Dir = t.TempDir()

	var stdout, stderr bytes.Buffer
	require.Error(t, run(context.Background(), cfg, false, &stdout, &stderr))
}
