package sysconf

// Merge deep-merges the given mappings left to right and returns a new map.
// For a key present in consecutive maps, two mapping values merge
// recursively; any other collision is won outright by the later value. No
// slice concatenation happens. Inputs are never mutated, so
// Merge(Merge(a, b), c) and Merge(a, b, c) produce the same result.
func Merge(maps ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, m := range maps {
		mergeInto(out, m)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			// Copy so later merges into dst cannot reach back into src.
			fresh := map[string]any{}
			mergeInto(fresh, sub)
			dst[k] = fresh
			continue
		}
		mergeInto(existing, sub)
	}
}
