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

// Package locatorprom counts locator events with Prometheus.
//
//	obs := locatorprom.New("myservice")
//	prometheus.MustRegister(obs)
//	report, err := locator.Discover(loader, c, locator.WithLogger(obs))
package locatorprom

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/locator/locatorevent"
)

const _subsystem = "locator"

// Observer is a locatorevent.Logger that counts events. It is also a
// prometheus.Collector; register it to export the counters.
type Observer struct {
	registrations *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	discoveries   *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	armed         prometheus.Counter
}

var (
	_ locatorevent.Logger  = (*Observer)(nil)
	_ prometheus.Collector = (*Observer)(nil)
)

// New builds an Observer whose metrics are prefixed with namespace.
func New(namespace string) *Observer {
	return &Observer{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: _subsystem,
			Name:      "registrations_total",
			Help:      "Registrations handed to the registrar, by lifetime.",
		}, []string{"lifetime", "synthetic", "result"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: _subsystem,
			Name:      "skipped_units_total",
			Help:      "Units skipped during discovery, by stage.",
		}, []string{"stage"}),
		discoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: _subsystem,
			Name:      "discoveries_total",
			Help:      "Completed discovery runs.",
		}, []string{"result"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: _subsystem,
			Name:      "fallbacks_total",
			Help:      "Lookups retried under the synthetic key, by operation.",
		}, []string{"operation", "found"}),
		armed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: _subsystem,
			Name:      "handle_armed_total",
			Help:      "Times a resolution handle was armed.",
		}),
	}
}

// LogEvent counts e.
func (o *Observer) LogEvent(e locatorevent.Event) {
	switch e := e.(type) {
	case *locatorevent.UnitLoaded:
		if e.Err != nil {
			o.skipped.WithLabelValues("load").Inc()
		}
	case *locatorevent.UnitScanned:
		if e.Err != nil {
			o.skipped.WithLabelValues("scan").Inc()
		}
	case *locatorevent.Registered:
		o.registrations.WithLabelValues(
			e.Lifetime, strconv.FormatBool(e.Synthetic), result(e.Err),
		).Inc()
	case *locatorevent.Discovered:
		o.discoveries.WithLabelValues(result(e.Err)).Inc()
	case *locatorevent.Armed:
		o.armed.Inc()
	case *locatorevent.Fallback:
		o.fallbacks.WithLabelValues(e.Operation, strconv.FormatBool(e.Found)).Inc()
	}
}

// Describe implements prometheus.Collector.
func (o *Observer) Describe(ch chan<- *prometheus.Desc) {
	o.registrations.Describe(ch)
	o.skipped.Describe(ch)
	o.discoveries.Describe(ch)
	o.fallbacks.Describe(ch)
	o.armed.Describe(ch)
}

// Collect implements prometheus.Collector.
func (o *Observer) Collect(ch chan<- prometheus.Metric) {
	o.registrations.Collect(ch)
	o.skipped.Collect(ch)
	o.discoveries.Collect(ch)
	o.fallbacks.Collect(ch)
	o.armed.Collect(ch)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
