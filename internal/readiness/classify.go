package readiness

// #region imports
import (
	"sort"
	"strings"
)

// #endregion

// #region data-types

const (
	DataTypeMessages  = "messages"
	DataTypeMeetings  = "meetings"
	DataTypeActivity  = "activity"
	DataTypeTelemetry = "telemetry"
)

// #endregion data-types

// #region keywords

// Substring keyword tables for event-type classification. An event type
// can contribute more than one tag.
var messageKeywords = []string{"message", "chat"}

var meetingKeywords = []string{"meeting", "call"}

var activityKeywords = []string{"activity", "reaction", "channel"}

// #endregion keywords

// #region classify

// classifyEventType maps an event's type string onto data-type tags via
// case-insensitive substring matching.
func classifyEventType(eventType string) []string {
	lower := strings.ToLower(eventType)

	var tags []string
	if containsAny(lower, messageKeywords) {
		tags = append(tags, DataTypeMessages)
	}
	if containsAny(lower, meetingKeywords) {
		tags = append(tags, DataTypeMeetings)
	}
	if containsAny(lower, activityKeywords) {
		tags = append(tags, DataTypeActivity)
	}
	return tags
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// #endregion classify

// #region sample

// buildSample aggregates an integration's events into a MetricSample.
// Events arrive ordered by time; first/last come from the extremes.
func buildSample(key string, events []Event, hasTelemetry bool) MetricSample {
	sample := MetricSample{
		IntegrationKey: key,
		EventCount:     len(events),
	}

	types := make(map[string]bool)
	for i, ev := range events {
		if i == 0 || ev.CreatedAt.Before(sample.FirstEventAt) {
			sample.FirstEventAt = ev.CreatedAt
		}
		if ev.CreatedAt.After(sample.LastEventAt) {
			sample.LastEventAt = ev.CreatedAt
		}
		for _, tag := range classifyEventType(ev.Type) {
			types[tag] = true
		}
	}
	if hasTelemetry {
		types[DataTypeTelemetry] = true
	}

	for tag := range types {
		sample.DataTypes = append(sample.DataTypes, tag)
	}
	sort.Strings(sample.DataTypes)
	return sample
}

// #endregion sample
