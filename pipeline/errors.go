package pipeline

import (
	"errors"
	"fmt"
)

// ErrRender indicates the raster backend failed while drawing a row.
var ErrRender = errors.New("render failed")

// ErrSink indicates the rendered image could not be persisted.
var ErrSink = errors.New("write failed")

// Stage 标识出错的处理阶段。
type Stage string

const (
	StageValidate Stage = "validate"
	StageBuild    Stage = "build"
	StageRender   Stage = "render"
	StageWrite    Stage = "write"
)

// RowError 表示单行处理失败；不会中断整个批次。
type RowError struct {
	ID    string
	Line  int
	Stage Stage
	Err   error
}

func (e *RowError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Stage, e.Err)
	}
	return fmt.Sprintf("row %q line %d (%s): %v", e.ID, e.Line, e.Stage, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func newRowError(id string, line int, stage Stage, sentinel, err error) *RowError {
	if sentinel != nil {
		err = fmt.Errorf("%w: %w", sentinel, err)
	}
	return &RowError{ID: id, Line: line, Stage: stage, Err: err}
}
