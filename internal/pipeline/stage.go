package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// StageName identifies one step of a build.
type StageName string

const (
	StagePrepare        StageName = "prepare"
	StageSynthesize     StageName = "synthesize"
	StageBuildTree      StageName = "build_tree"
	StageFlatten        StageName = "flatten"
	StageWriteArtifacts StageName = "write_artifacts"
)

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the failing stage and cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newStageError(stage StageName, err error) *StageError {
	kind := StageErrorFatal
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = StageErrorCanceled
	}
	return &StageError{Kind: kind, Stage: stage, Err: err}
}
