package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountedResourceData_NumericOrder(t *testing.T) {
	fragments := []map[string]interface{}{
		{
			"resource": map[string]interface{}{
				"aws_instance": map[string]interface{}{
					"web": map[string]interface{}{
						"count": 12,
						"name":  "web-count.index",
					},
				},
			},
		},
	}
	view, err := NewView(fragments, nil, false, nil)
	require.NoError(t, err)

	instances := view.CountedResourceData("aws_instance", "web")
	require.Len(t, instances, 12)
	for i, data := range instances {
		assert.Equal(t, fmt.Sprintf("web-%d", i), data["name"],
			"instance %d out of order", i)
	}
}
