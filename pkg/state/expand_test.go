package state

import "testing"

func TestExpandCounted(t *testing.T) {
	resources := map[string]interface{}{
		"aws_instance": map[string]interface{}{
			"worker": map[string]interface{}{
				"count": 3,
				"name":  "worker-count.index",
				"tags": map[string]interface{}{
					"serial-count.index": "node count.index",
				},
			},
			"single": map[string]interface{}{
				"name": "lonely",
			},
		},
	}

	expanded := expandCounted(resources)

	instances := expanded["aws_instance"].(map[string]interface{})
	if _, ok := instances["worker"]; ok {
		t.Error("base counted resource should not survive expansion")
	}
	if _, ok := instances["single"]; !ok {
		t.Error("uncounted resource should pass through")
	}

	for _, want := range []struct {
		instance string
		name     string
		tagKey   string
		tagValue string
	}{
		{"worker.0", "worker-0", "serial-0", "node 0"},
		{"worker.1", "worker-1", "serial-1", "node 1"},
		{"worker.2", "worker-2", "serial-2", "node 2"},
	} {
		data, ok := instances[want.instance].(map[string]interface{})
		if !ok {
			t.Fatalf("missing expanded instance %s", want.instance)
		}
		if _, ok := data["count"]; ok {
			t.Errorf("%s: count attribute should be dropped", want.instance)
		}
		if data["name"] != want.name {
			t.Errorf("%s: name = %v, want %v", want.instance, data["name"], want.name)
		}
		tags := data["tags"].(map[string]interface{})
		if tags[want.tagKey] != want.tagValue {
			t.Errorf("%s: tags = %#v, want %s=%s", want.instance, tags, want.tagKey, want.tagValue)
		}
	}
}

func TestExpandCounted_InstancesAreIsolated(t *testing.T) {
	resources := map[string]interface{}{
		"aws_instance": map[string]interface{}{
			"worker": map[string]interface{}{
				"count": 2,
				"tags":  map[string]interface{}{"shared": "yes"},
			},
		},
	}

	expanded := expandCounted(resources)
	instances := expanded["aws_instance"].(map[string]interface{})

	first := instances["worker.0"].(map[string]interface{})
	second := instances["worker.1"].(map[string]interface{})
	first["tags"].(map[string]interface{})["shared"] = "mutated"

	if second["tags"].(map[string]interface{})["shared"] != "yes" {
		t.Error("expanded instances share mutable structure")
	}
	original := resources["aws_instance"].(map[string]interface{})["worker"].(map[string]interface{})
	if original["tags"].(map[string]interface{})["shared"] != "yes" {
		t.Error("expansion mutated the original resource data")
	}
}

func TestCountOf(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		count int
		ok    bool
	}{
		{"int", 3, 3, true},
		{"string", "2", 2, true},
		{"zero", 0, 0, false},
		{"negative", -1, -1, false},
		{"absent", nil, 0, false},
		{"garbage", "many", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := map[string]interface{}{}
			if tt.value != nil {
				data["count"] = tt.value
			}
			count, ok := countOf(data)
			if ok != tt.ok {
				t.Fatalf("countOf() ok = %v, want %v", ok, tt.ok)
			}
			if ok && count != tt.count {
				t.Errorf("countOf() = %d, want %d", count, tt.count)
			}
		})
	}
}
