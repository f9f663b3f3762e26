// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package locatorevent

import (
	"context"
	"log/slog"
)

var _ Logger = (*SlogLogger)(nil)

// SlogLogger is a locator event logger that logs events using a slog logger.
type SlogLogger struct {
	Logger *slog.Logger

	ctx        context.Context
	logLevel   slog.Level
	errorLevel *slog.Level
}

// UseContext sets the context that will be used when logging to slog.
func (l *SlogLogger) UseContext(ctx context.Context) {
	l.ctx = ctx
}

// UseLogLevel sets the level of non-error logs emitted by locator to level.
func (l *SlogLogger) UseLogLevel(level slog.Level) {
	l.logLevel = level
}

// UseErrorLevel sets the level of error logs emitted by locator to level.
func (l *SlogLogger) UseErrorLevel(level slog.Level) {
	l.errorLevel = &level
}

func (l *SlogLogger) context() context.Context {
	if l.ctx == nil {
		return context.Background()
	}
	return l.ctx
}

func (l *SlogLogger) logEvent(msg string, attrs ...slog.Attr) {
	l.Logger.LogAttrs(l.context(), l.logLevel, msg, attrs...)
}

func (l *SlogLogger) logDebug(msg string, attrs ...slog.Attr) {
	l.Logger.LogAttrs(l.context(), slog.LevelDebug, msg, attrs...)
}

func (l *SlogLogger) logError(msg string, attrs ...slog.Attr) {
	lvl := slog.LevelError
	if l.errorLevel != nil {
		lvl = *l.errorLevel
	}
	l.Logger.LogAttrs(l.context(), lvl, msg, attrs...)
}

// LogEvent logs the given event to the provided slog logger.
func (l *SlogLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *UnitLoaded:
		if e.Err != nil {
			l.logDebug("skipped unit", slog.String("path", e.Path), slogErr(e.Err))
		} else {
			l.logEvent("loaded unit", slog.String("path", e.Path))
		}
	case *UnitScanned:
		if e.Err != nil {
			l.logDebug("skipped unit", slog.String("unit", e.Unit), slogErr(e.Err))
		} else {
			l.logDebug("scanned unit", slog.String("unit", e.Unit), slog.Int("types", e.Types))
		}
	case *Registered:
		attrs := []slog.Attr{
			slog.String("contract", e.Contract),
			slog.String("implementation", e.Implementation),
			slog.String("lifetime", e.Lifetime),
		}
		if e.Key != "" {
			attrs = append(attrs, slog.String("key", e.Key))
		}
		if e.ConstructorName != "" {
			attrs = append(attrs, slog.String("constructor", e.ConstructorName))
		}
		if e.Synthetic {
			attrs = append(attrs, slog.Bool("synthetic", true))
		}
		if e.Err != nil {
			l.logError("registration failed", append(attrs, slogErr(e.Err))...)
		} else {
			l.logEvent("registered", attrs...)
		}
	case *Discovered:
		attrs := []slog.Attr{
			slog.Int("units", e.Units),
			slog.Int("registrations", e.Registrations),
		}
		if e.Skipped != nil {
			attrs = append(attrs, slog.String("skipped", e.Skipped.Error()))
		}
		if e.Err != nil {
			l.logError("discovery failed", append(attrs, slogErr(e.Err))...)
		} else {
			l.logEvent("discovered", attrs...)
		}
	case *Armed:
		l.logEvent("armed",
			slog.String("resolver", e.Resolver),
			slog.String("caller", e.CallerName),
		)
	case *Fallback:
		attrs := []slog.Attr{
			slog.String("operation", e.Operation),
			slog.String("contract", e.Contract),
			slog.String("key", e.Key),
			slog.Bool("found", e.Found),
		}
		if e.Err != nil {
			attrs = append(attrs, slogErr(e.Err))
		}
		l.logDebug("fell back to synthetic key", attrs...)
	}
}

func slogErr(err error) slog.Attr {
	return slog.String("error", err.Error())
}
