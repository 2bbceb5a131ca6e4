package sink

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/piechart/renderer"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// ParseFormat 解析 "png" / "jpeg" / "jpg"（不区分大小写）。
func ParseFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return FormatPNG, fmt.Errorf("不支持的图片格式: %s（可选 png、jpeg）", s)
	}
}

// Ext returns the file extension including the dot.
func (f ImageFormat) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

func (f ImageFormat) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// Dir 将图片写入固定目录，文件名为 <id>.<ext>。
type Dir struct {
	Root   string
	Format ImageFormat
	// JPEGQuality 为 JPEG 质量（1-100），<=0 时为 90。
	JPEGQuality int
}

// Path 返回 id 对应的输出路径；id 必须是单个路径片段。
func (d Dir) Path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return "", fmt.Errorf("非法的输出文件名: %q", id)
	}
	return filepath.Join(d.Root, id+d.Format.Ext()), nil
}

// Write 编码并写入图片，按需创建目录，返回最终路径。
func (d Dir) Write(id string, img *renderer.Image) (string, error) {
	if img == nil || img.Pixels == nil {
		return "", fmt.Errorf("图片为空")
	}
	path, err := d.Path(id)
	if err != nil {
		return "", err
	}
	data, err := Encode(img, d.Format, d.JPEGQuality)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入图片文件失败: %w", err)
	}
	return path, nil
}

// Encode 将像素缓冲区编码为指定格式的字节。
func Encode(img *renderer.Image, format ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img.Pixels, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("编码 JPEG 失败: %w", err)
		}
	default:
		if err := png.Encode(&buf, img.Pixels); err != nil {
			return nil, fmt.Errorf("编码 PNG 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}
