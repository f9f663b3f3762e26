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
	"go.uber.org/zap"
)

// ZapLogger is a locator event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *UnitLoaded:
		if e.Err != nil {
			l.Logger.Debug("skipped unit",
				zap.String("path", e.Path),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Info("loaded unit", zap.String("path", e.Path))
		}
	case *UnitScanned:
		if e.Err != nil {
			l.Logger.Debug("skipped unit",
				zap.String("unit", e.Unit),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Debug("scanned unit",
				zap.String("unit", e.Unit),
				zap.Int("types", e.Types),
			)
		}
	case *Registered:
		fields := []zap.Field{
			zap.String("contract", e.Contract),
			zap.String("implementation", e.Implementation),
			zap.String("lifetime", e.Lifetime),
		}
		if e.Key != "" {
			fields = append(fields, zap.String("key", e.Key))
		}
		if e.ConstructorName != "" {
			fields = append(fields, zap.String("constructor", e.ConstructorName))
		}
		if e.Synthetic {
			fields = append(fields, zap.Bool("synthetic", true))
		}
		if e.Err != nil {
			l.Logger.Error("registration failed", append(fields, zap.Error(e.Err))...)
		} else {
			l.Logger.Info("registered", fields...)
		}
	case *Discovered:
		fields := []zap.Field{
			zap.Int("units", e.Units),
			zap.Int("registrations", e.Registrations),
		}
		if e.Skipped != nil {
			fields = append(fields, zap.NamedError("skipped", e.Skipped))
		}
		if e.Err != nil {
			l.Logger.Error("discovery failed", append(fields, zap.Error(e.Err))...)
		} else {
			l.Logger.Info("discovered", fields...)
		}
	case *Armed:
		l.Logger.Info("armed",
			zap.String("resolver", e.Resolver),
			zap.String("caller", e.CallerName),
		)
	case *Fallback:
		fields := []zap.Field{
			zap.String("operation", e.Operation),
			zap.String("contract", e.Contract),
			zap.String("key", e.Key),
			zap.Bool("found", e.Found),
		}
		if e.Err != nil {
			fields = append(fields, zap.Error(e.Err))
		}
		l.Logger.Debug("fell back to synthetic key", fields...)
	}
}
