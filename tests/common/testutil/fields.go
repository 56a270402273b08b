//go:build unit || e2e

package testutil

// Field returns a mutation that sets a map key, or deletes it when the value
// is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
