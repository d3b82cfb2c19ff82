package aip

import "sort"

// Metric keys accepted by SortByMetric.
const (
	MetricSuccessRate       = "success_rate"
	MetricTasksCompleted    = "tasks_completed"
	MetricAvgResponseTimeMS = "avg_response_time_ms"
	MetricUptime30d         = "uptime_30d"
)

// FilterBySkill returns the agents that claim the given skill with at
// least minConfidence. Order is preserved.
func FilterBySkill(agents []AgentProfile, skill string, minConfidence float64) []AgentProfile {
	var matched []AgentProfile
	for _, agent := range agents {
		for _, c := range agent.Capabilities {
			if c.Skill == skill && c.Confidence >= minConfidence {
				matched = append(matched, agent)
				break
			}
		}
	}
	return matched
}

// SortByMetric returns a copy of agents ordered by the named metric,
// descending by default. Agents without metrics, or without the named
// metric, sort as zero. Unknown keys sort everything as zero, leaving
// the original order (the sort is stable).
func SortByMetric(agents []AgentProfile, key string, descending bool) []AgentProfile {
	sorted := make([]AgentProfile, len(agents))
	copy(sorted, agents)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := metricValue(sorted[i], key), metricValue(sorted[j], key)
		if descending {
			return a > b
		}
		return a < b
	})
	return sorted
}

func metricValue(agent AgentProfile, key string) float64 {
	m := agent.Metrics
	if m == nil {
		return 0
	}
	switch key {
	case MetricSuccessRate:
		if m.SuccessRate != nil {
			return *m.SuccessRate
		}
	case MetricTasksCompleted:
		if m.TasksCompleted != nil {
			return float64(*m.TasksCompleted)
		}
	case MetricAvgResponseTimeMS:
		if m.AvgResponseTimeMS != nil {
			return float64(*m.AvgResponseTimeMS)
		}
	case MetricUptime30d:
		if m.Uptime30d != nil {
			return *m.Uptime30d
		}
	}
	return 0
}
