package errors

import "github.com/deliverly/ordertray/internal/colors"

// colorsOutput routes console output through the colors package.
type colorsOutput struct{}

var _ ConsoleOutput = colorsOutput{}

func (colorsOutput) Error(msgs ...string) {
	colors.Error(msgs...)
}

func (colorsOutput) Warning(msgs ...string) {
	colors.Warning(msgs...)
}

func (colorsOutput) Info(msgs ...string) {
	colors.Info(msgs...)
}

func (colorsOutput) Success(msgs ...string) {
	colors.Success(msgs...)
}

// NewDefaultCLIHandler creates a CLIHandler writing through the colors
// package. This is the handler every command reports through.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsOutput{})
}
