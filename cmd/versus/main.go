package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Evaluation ran and every gate passed
	ExitGateFailed = 1 // One or more quality gates failed
	ExitError      = 2 // Invalid input, configuration or runtime error
)

// GateFailureError indicates that the evaluation ran successfully,
// but one or more quality gates failed.
type GateFailureError struct {
	Message string
}

func (e *GateFailureError) Error() string {
	return e.Message
}

// exitCode maps an error returned by the root command onto a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var gateErr *GateFailureError
	if errors.As(err, &gateErr) {
		return ExitGateFailed
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
