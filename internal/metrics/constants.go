package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "frontier_http_requests_total"
	MetricNameHTTPRequestDuration  = "frontier_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "frontier_http_requests_in_flight"

	MetricNameEventsPublished    = "frontier_events_published_total"
	MetricNameEventsDeadLettered = "frontier_events_dead_lettered_total"

	MetricNameXPAwarded          = "frontier_xp_awarded_total"
	MetricNameLevelUps           = "frontier_level_ups_total"
	MetricNameAbilityEffects     = "frontier_ability_effects_applied_total"
	MetricNameReconciliations    = "frontier_ability_reconciliations_total"
	MetricNameDeaths             = "frontier_deaths_total"
	MetricNamePenaltyXPLost      = "frontier_penalty_xp_lost_total"
	MetricNameProfessionSaves    = "frontier_profession_saves_total"
	MetricNameProfessionSaveErrs = "frontier_profession_save_failures_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests processed"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextEventsPublished    = "Total number of events published to the bus"
	HelpTextEventsDeadLettered = "Total number of events written to the dead-letter file"

	HelpTextXPAwarded          = "Total XP awarded, by profession"
	HelpTextLevelUps           = "Total profession level-ups"
	HelpTextAbilityEffects     = "Total standing ability effect applications, by tier"
	HelpTextReconciliations    = "Total full ability reconciliation passes"
	HelpTextDeaths             = "Total player deaths processed"
	HelpTextPenaltyXPLost      = "Total XP removed by death penalties, by profession"
	HelpTextProfessionSaves    = "Total profession records saved"
	HelpTextProfessionSaveErrs = "Total profession record save failures"
)

// Label names
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelProfession = "profession"
	LabelTier       = "tier"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request durations
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
