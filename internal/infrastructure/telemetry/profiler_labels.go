package telemetry

import (
	"context"
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys.
const (
	ProfilingLabelOperation = "operation"
	ProfilingLabelUserID    = "user_id"
	ProfilingLabelCategory  = "category"
	ProfilingLabelEventType = "event_type"
)

// MaxLabelValueLength caps label values so a bad caller cannot explode profile size.
const MaxLabelValueLength = 128

// HighCardinalityLabels are dropped from profiling labels.
var HighCardinalityLabels = map[string]bool{
	"request_id": true,
	"trace_id":   true,
	"span_id":    true,
	"tag_number": true,
}

// WithProfilingLabels runs fn with the given labels attached to its goroutine,
// so CPU and allocation samples taken inside fn can be filtered in Pyroscope.
// The labels are also visible through runtime/pprof, so they work without a
// running profiler.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(maps.Clone(labels))
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// LivestockLabels builds the labels used around count mutations.
func LivestockLabels(operation string, userID int64, category, eventType string) map[string]string {
	labels := map[string]string{
		ProfilingLabelOperation: operation,
		ProfilingLabelCategory:  category,
		ProfilingLabelEventType: eventType,
	}
	if userID > 0 {
		labels[ProfilingLabelUserID] = strconv.FormatInt(userID, 10)
	}
	return labels
}

// sanitizeLabels returns sorted key/value pairs, skipping empty and
// high-cardinality entries and truncating long values.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if key == "" || value == "" || HighCardinalityLabels[key] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		sanitized := sanitizeLabelKey(key)
		if sanitized == "" {
			continue
		}
		pairs = append(pairs, sanitized, value)
	}
	return pairs
}

// sanitizeLabelKey lowercases the key and keeps only [a-z0-9_].
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")

	result := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			result = append(result, c)
		}
	}
	return string(result)
}
