package manifest

import "reflect"

// deepMerge combines right into a copy of left, key by key: two maps
// recurse, two lists take the set union preserving left-then-right order,
// anything else is overwritten by the right value. Neither input is
// mutated.
func deepMerge(left, right map[string]any) map[string]any {
	out := make(map[string]any, len(left)+len(right))
	for k, v := range left {
		out[k] = deepCopy(v)
	}

	for k, rv := range right {
		lv, exists := out[k]
		if !exists {
			out[k] = deepCopy(rv)
			continue
		}

		if lm, lok := lv.(map[string]any); lok {
			if rm, rok := rv.(map[string]any); rok {
				out[k] = deepMerge(lm, rm)
				continue
			}
		}

		if ll, lok := asList(lv); lok {
			if rl, rok := asList(rv); rok {
				out[k] = unionList(ll, rl)
				continue
			}
		}

		out[k] = deepCopy(rv)
	}
	return out
}

// unionList appends the right elements not already present in left,
// preserving order. Membership is structural equality.
func unionList(left, right []any) []any {
	out := make([]any, 0, len(left)+len(right))
	for _, v := range left {
		out = append(out, deepCopy(v))
	}
	for _, rv := range right {
		present := false
		for _, lv := range out {
			if reflect.DeepEqual(lv, rv) {
				present = true
				break
			}
		}
		if !present {
			out = append(out, deepCopy(rv))
		}
	}
	return out
}

// mergeKeys keeps the receiver's key positions and appends keys new to it
// in the order the other schema supplies them.
func mergeKeys(left, right []string) []string {
	out := make([]string, 0, len(left)+len(right))
	seen := make(map[string]bool, len(left))
	for _, k := range left {
		out = append(out, k)
		seen[k] = true
	}
	for _, k := range right {
		if !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	return out
}
