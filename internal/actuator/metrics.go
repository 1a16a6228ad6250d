/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package actuator

import (
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hydrochar-lab/htc-model/internal/engines/process"
)

const metricsNamespace = "htc"

// MetricsEmitter records run metrics in its own registry.
type MetricsEmitter struct {
	registry           *prometheus.Registry
	scenariosEvaluated *prometheus.CounterVec
	scenariosFailed    *prometheus.CounterVec
	solverIterations   prometheus.Histogram
	objectives         *prometheus.GaugeVec
	frontSize          prometheus.Gauge
}

// NewMetricsEmitter creates an emitter with all collectors registered.
func NewMetricsEmitter() *MetricsEmitter {
	m := &MetricsEmitter{
		registry: prometheus.NewRegistry(),
		scenariosEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scenarios_evaluated_total",
			Help:      "Scenarios whose process balance was computed.",
		}, []string{"temp", "time"}),
		scenariosFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scenarios_failed_total",
			Help:      "Scenarios that failed, by reason.",
		}, []string{"reason"}),
		solverIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "wall_solver_iterations",
			Help:      "Newton iterations of the reactor wall balance per scenario.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		objectives: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "scenario_objective",
			Help:      "Objective value of a scenario.",
		}, []string{"scenario", "objective"}),
		frontSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "front_size",
			Help:      "Number of non-dominated scenarios in the last ranking.",
		}),
	}
	m.registry.MustRegister(
		m.scenariosEvaluated,
		m.scenariosFailed,
		m.solverIterations,
		m.objectives,
		m.frontSize,
	)
	return m
}

// Registry returns the emitter's registry.
func (m *MetricsEmitter) Registry() *prometheus.Registry {
	return m.registry
}

// EmitScenario records one evaluated scenario.
func (m *MetricsEmitter) EmitScenario(b process.Balance) {
	m.scenariosEvaluated.WithLabelValues(formatFloat(b.Scenario.Temp), formatFloat(b.Scenario.Time)).Inc()
	m.solverIterations.Observe(float64(b.WallIterations))
}

// EmitFailure records one failed scenario.
func (m *MetricsEmitter) EmitFailure(reason string) {
	m.scenariosFailed.WithLabelValues(reason).Inc()
}

// EmitObjective records one objective value of a scenario.
func (m *MetricsEmitter) EmitObjective(scenario, objective string, value float64) {
	m.objectives.WithLabelValues(scenario, objective).Set(value)
}

// EmitFrontSize records the size of the non-dominated set.
func (m *MetricsEmitter) EmitFrontSize(n int) {
	m.frontSize.Set(float64(n))
}

// WriteText writes every metric family in the text exposition format.
func (m *MetricsEmitter) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
