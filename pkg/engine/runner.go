package engine

import "github.com/smilemakc/mbflow/pkg/jdmvalue"

// Evaluate runs plan against input and returns the assembled output.
// input is never mutated; evaluation works against a deep clone. Node
// evaluation never returns an error (the compiled NodeFunc contract) so
// this cannot fail once the plan itself compiled.
func Evaluate(plan *Plan, input map[string]any) (map[string]any, error) {
	cloned := jdmvalue.DeepClone(input)
	ctx, _ := cloned.(map[string]any)
	if ctx == nil {
		ctx = map[string]any{}
	}

	output := map[string]any{}
	if plan.outputSources[plan.inputNodeID] {
		output = jdmvalue.DeepMerge(output, jdmvalue.StripSwitchKeys(ctx))
	}

	for _, sn := range plan.scheduled {
		if !guardSatisfied(sn.guard, ctx) {
			continue
		}

		res := sn.fn(ctx)
		if res == nil {
			continue
		}

		ctx = jdmvalue.DeepMerge(ctx, res)
		if plan.outputSources[sn.id] {
			output = jdmvalue.DeepMerge(output, jdmvalue.StripSwitchKeys(res))
		}
	}

	return output, nil
}

// guardSatisfied reports whether every (switchId, handle) pair in guard
// matches the branch currently chosen on that switch in ctx.
func guardSatisfied(guard GuardSet, ctx map[string]any) bool {
	for switchID, handle := range guard {
		chosen, _ := ctx[jdmvalue.ReservedSwitchPrefix+switchID].(string)
		if chosen != handle {
			return false
		}
	}
	return true
}
