package workflow

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports workflow activity to prometheus.
type Metrics struct {
	nodeVisits   *prometheus.CounterVec
	nodeDuration *prometheus.HistogramVec
	toolDuration *prometheus.HistogramVec
	toolErrors   *prometheus.CounterVec
	turns        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_workflow_node_visits_total",
				Help: "Total number of node executions",
			},
			[]string{"node"},
		),
		nodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chat_workflow_node_duration_seconds",
				Help:    "Duration of node executions",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"node"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chat_workflow_tool_duration_seconds",
				Help:    "Duration of tool executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		toolErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_workflow_tool_errors_total",
				Help: "Total number of failed tool executions",
			},
			[]string{"tool"},
		),
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_workflow_turns_total",
				Help: "Total number of chat turns by intent and status",
			},
			[]string{"intent", "status"},
		),
	}

	for _, c := range []prometheus.Collector{m.nodeVisits, m.nodeDuration, m.toolDuration, m.toolErrors, m.turns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records node, tool and turn activity.
func (m *Metrics) Hooks() LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *NodeEvent) {
			m.nodeVisits.WithLabelValues(e.Node).Inc()
		},
		OnNodeLeave: func(ctx context.Context, e *NodeEvent) {
			m.nodeDuration.WithLabelValues(e.Node).Observe(e.Duration.Seconds())
		},
		OnToolReturn: func(ctx context.Context, e *ToolEvent) {
			m.toolDuration.WithLabelValues(e.ToolName).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.toolErrors.WithLabelValues(e.ToolName).Inc()
			}
		},
		OnTurnEnd: func(ctx context.Context, e *TurnEvent) {
			status := "completed"
			if e.Err != nil {
				status = "failed"
			}
			intent := e.Intent
			if intent == "" {
				intent = "unknown"
			}
			m.turns.WithLabelValues(intent, status).Inc()
		},
	}
}
