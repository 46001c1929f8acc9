// Package klog is the compiler's logging collaborator (§6). It does not
// decide policy on its own: it formats the five levels the driver needs
// (debug, info, success, warning, error) and hands them to schuko's
// tracing facility, the way the teacher's otcli tool wires tracer() calls,
// while using pterm prefixes for the levels a human reads on a terminal.
package klog

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// Level is one of the five log levels the driver may emit.
type Level int

const (
	Debug Level = iota
	Info
	Success
	Warning
	Error
)

// Logger is the abstract collaborator the driver logs through (§6:
// log(level, tag, message)). The CLI shell, not specified here, decides
// how a concrete Logger renders to a terminal, a file, or /dev/null.
type Logger interface {
	Log(level Level, tag, message string)
}

// Std is the default Logger: schuko tracing for structured output plus
// pterm prefixes for the levels meant to be read by a human.
type Std struct{}

// T returns the core tracer, mirroring the teacher's package-level
// T()/tracer() helper functions.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func (Std) Log(level Level, tag, message string) {
	switch level {
	case Debug:
		T().Debugf("[%s] %s", tag, message)
	case Info:
		pterm.Info.Printfln("[%s] %s", tag, message)
		T().Infof("[%s] %s", tag, message)
	case Success:
		pterm.Success.Printfln("[%s] %s", tag, message)
		T().Infof("[%s] %s", tag, message)
	case Warning:
		pterm.Warning.Printfln("[%s] %s", tag, message)
		T().Errorf("[%s] %s", tag, message)
	case Error:
		pterm.Error.Printfln("[%s] %s", tag, message)
		T().Errorf("[%s] %s", tag, message)
	}
}

// Discard silently drops every message. Useful for tests.
type Discard struct{}

func (Discard) Log(Level, string, string) {}

// Init configures the schuko trace adapter the way the teacher's otcli
// main does, so Std has somewhere to write structured traces to.
func Init(verbose bool) {
	level := tracing.LevelInfo
	if verbose {
		level = tracing.LevelDebug
	}
	gtrace.CoreTracer.SetTraceLevel(level)
}
