// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"fmt"
	"strings"
)

// maxLookupHops bounds indirect-reference resolution. Real configurations
// chain at most a handful of references; anything past the cap is a cycle.
const maxLookupHops = 32

// ReferenceCycleError is returned when indirect-reference resolution does
// not terminate within the hop cap.
type ReferenceCycleError struct {
	Key  string
	Hops []string
}

// Error returns the error message for ReferenceCycleError.
func (e *ReferenceCycleError) Error() string {
	return fmt.Sprintf("reference cycle resolving %q: %s", e.Key, strings.Join(e.Hops, " -> "))
}

// Lookup resolves key in settings, dereferencing values of the form "$(K)"
// until a plain value is found. An absent key yields the default. A chain
// longer than the hop cap is reported as a ReferenceCycleError rather than
// looping forever.
func Lookup(settings *Settings, key, defaultValue string) (string, error) {
	hops := []string{key}
	for range maxLookupHops {
		value, ok := settings.Values[key]
		if !ok {
			return defaultValue, nil
		}
		if !strings.HasPrefix(value, "$(") || !strings.HasSuffix(value, ")") {
			return value, nil
		}
		key = value[2 : len(value)-1]
		hops = append(hops, key)
	}
	return "", &ReferenceCycleError{Key: hops[0], Hops: hops}
}
