package layout

import (
	"encoding/json"
	"os"
)

// SliceDebug 记录单个扇区的几何与标签排布结果。
type SliceDebug struct {
	Index     int            `json:"index"`
	Label     string         `json:"label"`
	Value     float64        `json:"value"`
	Geometry  SliceGeometry  `json:"geometry"`
	Placement LabelPlacement `json:"placement"`
	Drawn     bool           `json:"drawn"`
}

// Debug 汇总一张图的排布信息。
type Debug struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Frame  Frame        `json:"frame"`
	Slices []SliceDebug `json:"slices"`
}

// WriteDebugJSON 将排布结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Debug, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
