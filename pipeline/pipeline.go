// Package pipeline 逐行串行执行 校验 → 构建图表描述 → 渲染 → 写出。
//
// 行与行之间严格顺序执行：同一个渲染后端实例在所有行之间共享，
// 一行的完整流程结束后才开始下一行。单行失败只记录日志，不影响后续行。
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/piechart/chartspec"
	"github.com/ByLCY/piechart/layout"
	"github.com/ByLCY/piechart/renderer"
	"github.com/ByLCY/piechart/sample"
	"github.com/ByLCY/piechart/source"
)

// Sink 持久化渲染结果并返回最终路径。
type Sink interface {
	Write(id string, img *renderer.Image) (string, error)
}

// Runner 持有一次批处理所需的全部依赖。
type Runner struct {
	Schema   sample.Schema
	Spec     chartspec.Options
	Renderer renderer.Renderer
	Sink     Sink
	// DebugDir 非空时为每张图输出 <id>.layout.json。
	DebugDir string

	// Out 记录成功写出的文件，Err 记录被拒绝或失败的行；为 nil 时丢弃。
	Out *log.Logger
	Err *log.Logger
}

// Report 汇总一次批处理的结果。
type Report struct {
	Written  []string
	Rejected int
	Failed   int
	Errors   []error
}

// Total returns the number of processed rows.
func (r Report) Total() int { return len(r.Written) + r.Rejected + r.Failed }

// Run 按顺序处理所有记录。只有在 ctx 被取消时返回错误；进行中的行会先完成。
func (r *Runner) Run(ctx context.Context, records []source.Record) (Report, error) {
	var report Report
	if err := r.Schema.Validate(); err != nil {
		return report, fmt.Errorf("列配置无效: %w", err)
	}
	if r.Renderer == nil || r.Sink == nil {
		return report, fmt.Errorf("pipeline 缺少 renderer 或 sink")
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		path, err := r.ProcessRow(rec)
		if err == nil {
			report.Written = append(report.Written, path)
			r.logf(r.Out, "已保存 %s", path)
			continue
		}

		report.Errors = append(report.Errors, err)
		if errors.Is(err, sample.ErrMalformedRow) {
			report.Rejected++
			r.logf(r.Err, "无效行（至少需要 1 个有效数值）: %s", rawRecord(rec))
			continue
		}
		report.Failed++
		r.logf(r.Err, "处理 %s 失败: %v", displayID(err, rec, r.Schema), err)
	}
	return report, nil
}

// ProcessRow 处理单行记录并返回写出的文件路径。
func (r *Runner) ProcessRow(rec source.Record) (string, error) {
	s, err := sample.Validate(rec.Fields, r.Schema)
	if err != nil {
		return "", newRowError("", rec.Line, StageValidate, nil, err)
	}

	opts := r.Spec
	opts.Record = rec.Fields
	desc, err := chartspec.Build(s, opts)
	if err != nil {
		return "", newRowError(s.ID, rec.Line, StageBuild, nil, err)
	}

	img, dbg, err := r.Renderer.Render(desc)
	if err != nil {
		return "", newRowError(s.ID, rec.Line, StageRender, ErrRender, err)
	}

	path, err := r.Sink.Write(s.ID, img)
	if err != nil {
		return "", newRowError(s.ID, rec.Line, StageWrite, ErrSink, err)
	}

	if r.DebugDir != "" && dbg != nil {
		dbg.ID = s.ID
		if err := writeDebug(r.DebugDir, dbg); err != nil {
			r.logf(r.Err, "输出 %s 的调试 JSON 失败: %v", s.ID, err)
		}
	}
	return path, nil
}

func writeDebug(dir string, dbg *layout.Debug) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	return layout.WriteDebugJSON(dbg, filepath.Join(dir, filepath.Base(dbg.ID)+".layout.json"))
}

func (r *Runner) logf(l *log.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Printf(format, args...)
}

func rawRecord(rec source.Record) string {
	data, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Sprint(rec.Fields)
	}
	return string(data)
}

func displayID(err error, rec source.Record, schema sample.Schema) string {
	var rowErr *RowError
	if errors.As(err, &rowErr) && rowErr.ID != "" {
		return rowErr.ID
	}
	return rec.Fields[schema.IDColumn]
}
