// Package jdmvalue holds the small value-manipulation primitives shared by
// the node compilers and the runner: dotted-path assignment, deep clone,
// and deep merge over a JSON-shaped value model.
package jdmvalue

import "strings"

// SetByPath assigns value at the dotted path within root, creating
// intermediate maps as needed. An existing non-map value at an
// intermediate segment is overwritten with a fresh map.
func SetByPath(root map[string]any, dotted string, value any) {
	segments := strings.Split(dotted, ".")
	cur := root
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
}
