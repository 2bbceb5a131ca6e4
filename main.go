package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ByLCY/piechart/chartspec"
	"github.com/ByLCY/piechart/config"
	"github.com/ByLCY/piechart/pipeline"
	"github.com/ByLCY/piechart/renderer"
	canvasrenderer "github.com/ByLCY/piechart/renderer/canvas"
	"github.com/ByLCY/piechart/sink"
	"github.com/ByLCY/piechart/source"
)

// errRowsFailed 在 --strict 模式下表示存在被拒绝或失败的行。
var errRowsFailed = errors.New("存在未生成图片的行")

type flags struct {
	configPath string
	input      string
	output     string
	sheet      string
	format     string
	width      int
	height     int
	debugDir   string
	strict     bool
}

func main() {
	var f flags
	rootCmd := &cobra.Command{
		Use:   "piechart",
		Short: "为 CSV/XLSX 中的每一行生成一张饼图",
		Long: `piechart 读取带表头的数据文件，每行最多取 5 个数值，
渲染带百分比标签的饼图并写入输出目录（默认 chart-images/<id>.png）。`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cfg, f.strict, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "配置文件路径（.piechart）")
	fl.StringVarP(&f.input, "in", "i", "", "输入 CSV/XLSX 路径（默认 data/charts.csv）")
	fl.StringVarP(&f.output, "out", "o", "", "图片输出目录（默认 chart-images）")
	fl.StringVar(&f.sheet, "sheet", "", "XLSX 工作表名，默认第一个")
	fl.StringVar(&f.format, "format", "", "输出格式：png 或 jpeg")
	fl.IntVar(&f.width, "width", 0, "画布宽度（像素）")
	fl.IntVar(&f.height, "height", 0, "画布高度（像素）")
	fl.StringVar(&f.debugDir, "debug-dir", "", "输出每张图的布局调试 JSON")
	fl.BoolVar(&f.strict, "strict", false, "存在无效或失败的行时以非零状态退出")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRowsFailed) {
			log.Printf("生成饼图失败: %v", err)
		}
		os.Exit(1)
	}
}

// resolveConfig 先加载配置文件（如有），再用显式给出的命令行参数覆盖。
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("in") {
		cfg.Input.Path = f.input
	}
	if changed("out") {
		cfg.Output.Dir = f.output
	}
	if changed("sheet") {
		cfg.Input.Sheet = f.sheet
	}
	if changed("format") {
		format, err := sink.ParseFormat(f.format)
		if err != nil {
			return cfg, err
		}
		cfg.Output.Format = format
	}
	if changed("width") {
		cfg.Canvas.Width = f.width
	}
	if changed("height") {
		cfg.Canvas.Height = f.height
	}
	if changed("debug-dir") {
		cfg.Output.DebugDir = f.debugDir
	}
	return cfg, cfg.Validate()
}

// run 串联读取、逐行处理与汇总输出。
func run(ctx context.Context, cfg config.Config, strict bool, stdout, stderr io.Writer) error {
	records, err := source.Load(cfg.Input.Path, source.Options{
		Sheet: cfg.Input.Sheet,
		Comma: cfg.Input.Delimiter,
	})
	if err != nil {
		return err
	}

	runner := newRunner(cfg, stdout, stderr)
	report, err := runner.Run(ctx, records)
	fmt.Fprintf(stdout, "完成：共 %d 行，生成 %d 张，无效 %d 行，失败 %d 行\n",
		report.Total(), len(report.Written), report.Rejected, report.Failed)
	if err != nil {
		return err
	}
	if strict && (report.Rejected > 0 || report.Failed > 0) {
		return errRowsFailed
	}
	return nil
}

func newRunner(cfg config.Config, stdout, stderr io.Writer) *pipeline.Runner {
	factory := canvasrenderer.NewFactoryWithOptions(canvasrenderer.Options{Font: cfg.Canvas.Font})
	pie := renderer.NewPie(factory, renderer.PieOptions{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Background: cfg.Canvas.Background,
		Cutout:     cfg.Pie.Cutout,
		Rotation:   cfg.Pie.Rotation,
		ShowTitle:  cfg.Pie.ShowTitle,
	})
	return &pipeline.Runner{
		Schema: cfg.Input.Schema,
		Spec: chartspec.Options{
			TitleTemplate: cfg.Pie.TitleTemplate,
			BorderWidth:   cfg.Pie.BorderWidth,
		},
		Renderer: pie,
		Sink: sink.Dir{
			Root:        cfg.Output.Dir,
			Format:      cfg.Output.Format,
			JPEGQuality: cfg.Output.JPEGQuality,
		},
		DebugDir: cfg.Output.DebugDir,
		Out:      log.New(stdout, "", 0),
		Err:      log.New(stderr, "", 0),
	}
}
