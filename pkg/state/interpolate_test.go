package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedResource(t *testing.T, view *View, resourceType, name string) map[string]interface{} {
	t.Helper()
	data, ok := view.ResourceData(resourceType, name)
	require.True(t, ok, "resource %s.%s not found", resourceType, name)
	return data
}

func TestInterpolation_SubstitutesVariableSpan(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"web": map[string]interface{}{
						"name": "prefix-${var.environment}-suffix",
					},
				},
			},
		},
	}
	view, err := NewView(fragments, map[string]interface{}{"environment": "prod"}, false, nil)
	require.NoError(t, err)

	data := resolvedResource(t, view, "aws_instance", "web")
	assert.Equal(t, "prefix-prod-suffix", data["name"])
}

func TestInterpolation_KeysAndValuesIndependently(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"web": map[string]interface{}{
						"tags": map[string]interface{}{
							"${var.tag_key}": "${var.tag_value}",
						},
					},
				},
			},
		},
	}
	view, err := NewView(fragments, map[string]interface{}{
		"tag_key":   "team",
		"tag_value": "platform",
	}, false, nil)
	require.NoError(t, err)

	data := resolvedResource(t, view, "aws_instance", "web")
	tags := data["tags"].(map[string]interface{})
	assert.Equal(t, "platform", tags["team"])
}

func TestInterpolation_SinglePassOnly(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"web": map[string]interface{}{
						"name": "${var.chained}",
					},
				},
			},
		},
	}
	view, err := NewView(fragments, map[string]interface{}{
		"chained": "${var.other}",
		"other":   "final",
	}, false, nil)
	require.NoError(t, err)

	// One substitution pass: a reference resolving to another reference
	// string is not re-interpolated.
	data := resolvedResource(t, view, "aws_instance", "web")
	assert.Equal(t, "${var.other}", data["name"])
}

func TestInterpolation_WholeSpanNonStringReplacesValue(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"web": map[string]interface{}{
						"zones": "${var.zones}",
					},
				},
			},
		},
	}
	view, err := NewView(fragments, map[string]interface{}{
		"zones": []interface{}{"a", "b"},
	}, false, nil)
	require.NoError(t, err)

	data := resolvedResource(t, view, "aws_instance", "web")
	assert.Equal(t, []interface{}{"a", "b"}, data["zones"])
}

func TestInterpolation_PartialSpanNonStringLeftAsIs(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"web": map[string]interface{}{
						"name": "zone-${var.zones}",
					},
				},
			},
		},
	}
	view, err := NewView(fragments, map[string]interface{}{
		"zones": []interface{}{"a", "b"},
	}, false, nil)
	require.NoError(t, err)

	data := resolvedResource(t, view, "aws_instance", "web")
	assert.Equal(t, "zone-${var.zones}", data["name"])
}

func TestInterpolation_CountedFormat(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"worker": map[string]interface{}{
						"count": 2,
						"name":  `${format("worker-%03d", count.index)}`,
					},
				},
			},
		},
	}
	view, err := NewView(fragments, nil, false, nil)
	require.NoError(t, err)

	first := resolvedResource(t, view, "aws_instance", "worker.0")
	second := resolvedResource(t, view, "aws_instance", "worker.1")
	assert.Equal(t, "worker-000", first["name"])
	assert.Equal(t, "worker-001", second["name"])
}

func TestInterpolateFormat(t *testing.T) {
	view := testView(t, nil, false)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero padded int", `${format("node-%03d", 7)}`, "node-007"},
		{"string verb", `${format("%s-suffix", "front")}`, "front-suffix"},
		{"numeric with %s", `${format("%s", 12)}`, "12"},
		{"no argument unchanged", `${format("solo")}`, `${format("solo")}`},
		{"unbalanced unchanged", `${format(`, `${format(`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.interpolateFormat(tt.in))
		})
	}
}

func TestLookupPath(t *testing.T) {
	data := map[string]interface{}{
		"tags": map[string]interface{}{
			"nested": map[string]interface{}{"deep": "value"},
		},
		"name": "web",
	}

	tests := []struct {
		name  string
		path  string
		want  interface{}
		found bool
	}{
		{"top level", "name", "web", true},
		{"nested", "tags.nested.deep", "value", true},
		{"absent leaf", "tags.missing", nil, false},
		{"wrong shape", "name.sub", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := LookupPath(data, tt.path)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
