// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the Prometheus collectors of the progression engine.
// Collectors are package level so any component can record into them; the
// metrics server registers them on its own registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "learner_progression"

var (
	// ProfileLoadsTotal counts profile restores by outcome.
	ProfileLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_loads_total",
			Help:      "Total number of profile loads by outcome",
		},
		[]string{"outcome"},
	)

	// SnapshotWritesTotal counts snapshot writes by result.
	SnapshotWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_writes_total",
			Help:      "Total number of profile snapshot writes by result",
		},
		[]string{"result"},
	)

	// SnapshotsSupersededTotal counts snapshots replaced before being written.
	SnapshotsSupersededTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_superseded_total",
			Help:      "Total number of snapshots replaced by a newer one before being written",
		},
	)

	// MutationsTotal counts accepted profile mutations by operation.
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Total number of accepted profile mutations",
		},
		[]string{"operation"},
	)

	// ExperienceGrantedTotal sums granted experience points.
	ExperienceGrantedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "experience_granted_total",
			Help:      "Total experience points granted",
		},
	)

	// TransitionsTotal counts orchestrator state entries.
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Total number of orchestrator state transitions by target state",
		},
		[]string{"state"},
	)

	// RuleTriggersTotal counts rule triggers.
	RuleTriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_triggers_total",
			Help:      "Total number of rule triggers",
		},
		[]string{"rule_id"},
	)

	// ActionExecutionsTotal counts action executions by result.
	ActionExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_executions_total",
			Help:      "Total number of action executions by result",
		},
		[]string{"action_id", "result"},
	)
)

// Collectors returns every collector defined by this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ProfileLoadsTotal,
		SnapshotWritesTotal,
		SnapshotsSupersededTotal,
		MutationsTotal,
		ExperienceGrantedTotal,
		TransitionsTotal,
		RuleTriggersTotal,
		ActionExecutionsTotal,
	}
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
