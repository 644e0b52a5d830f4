package jdmvalue

import "strings"

// ReservedSwitchPrefix mirrors models.ReservedSwitchPrefix; duplicated here
// (rather than importing pkg/models) to keep this package dependency-free
// and reusable from both the node compilers and the runner without a
// cycle.
const ReservedSwitchPrefix = "__switch_"

// DeepMerge merges src into dst in place and returns dst. For each key in
// src: if both dst and src hold a map at that key, merge recursively;
// otherwise src's value overwrites dst's. Lists are replaced, not
// concatenated.
//
// The overwrite branch clones src's value before assigning it rather than
// assigning by reference. Runner evaluation merges the same node-output
// map into the running ctx at every step of a topological walk; without
// the clone, two sibling nodes that both read a nested map from ctx and
// pass it through unchanged would alias the same backing map, and a later
// guarded overwrite on one branch would corrupt the other's
// already-merged output.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		if dstMap, dstOK := dst[k].(map[string]any); dstOK {
			if srcMap, srcOK := sv.(map[string]any); srcOK {
				dst[k] = DeepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[k] = DeepClone(sv)
	}
	return dst
}

// DeepClone produces a value-copy of v over the JSON value sum
// (map[string]any, []any, and scalars). It is a structural walk, not a
// JSON marshal round trip, so integer values are not coerced to float64.
func DeepClone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, sub := range val {
			out[k] = DeepClone(sub)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, sub := range val {
			out[i] = DeepClone(sub)
		}
		return out
	default:
		return val
	}
}

// StripSwitchKeys returns a copy of m with every top-level key matching the
// reserved "__switch_*" pattern removed. Used when assembling output so
// reserved guard bookkeeping never leaks out of evaluate.
func StripSwitchKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if strings.HasPrefix(k, ReservedSwitchPrefix) {
			continue
		}
		out[k] = v
	}
	return out
}
