package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions a caller may want to match with errors.Is.
var (
	ErrExecutorNotFound  = errors.New("node compiler not registered for type")
	ErrMissingInputNode  = errors.New("document must declare exactly one inputNode")
	ErrCyclicGraph       = errors.New("document graph is cyclic")
	ErrNodeNotCompilable = errors.New("node cannot be compiled")
	ErrConditionParse    = errors.New("condition cell could not be parsed")
)

// CompileErrorReason classifies why plan compilation failed.
type CompileErrorReason string

const (
	ReasonMissingInputNode  CompileErrorReason = "missing-input-node"
	ReasonNodeNotCompilable CompileErrorReason = "node-not-compilable"
	ReasonCyclicGraph       CompileErrorReason = "cyclic-graph"
	ReasonConditionParse    CompileErrorReason = "condition-parse"
)

// CompileError reports why Compile failed to produce a plan. Only the
// Reason-specific fields matching the Reason are populated;
// ReasonMissingInputNode and ReasonCyclicGraph populate none of them.
type CompileError struct {
	Reason CompileErrorReason

	// NodeID/NodeKind populate ReasonNodeNotCompilable.
	NodeID   string
	NodeKind string

	// RuleID/CellID populate ReasonConditionParse.
	RuleID string
	CellID string

	Err error
}

func (e *CompileError) Error() string {
	switch e.Reason {
	case ReasonNodeNotCompilable:
		return fmt.Sprintf("node-not-compilable: node %q (kind %q)%s", e.NodeID, e.NodeKind, suffix(e.Err))
	case ReasonConditionParse:
		return fmt.Sprintf("condition-parse: rule %q cell %q%s", e.RuleID, e.CellID, suffix(e.Err))
	case ReasonCyclicGraph:
		return "cyclic-graph: document is not acyclic"
	case ReasonMissingInputNode:
		return "missing-input-node: document must declare exactly one inputNode"
	default:
		return fmt.Sprintf("compile error: %s%s", e.Reason, suffix(e.Err))
	}
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func suffix(err error) string {
	if err == nil {
		return ""
	}
	return ": " + err.Error()
}

// ValidationError reports a single structural problem with a document.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// EvaluationError wraps a failure evaluating a single node's expression.
// Evaluate never returns one: the node evaluators log evaluation failures
// at Debug and return an empty partial result instead.
type EvaluationError struct {
	NodeID string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("node %s evaluation failed: %s", e.NodeID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
