package view

// ReadData returns the current values of the given names, or of every bound
// name when none are given. Names without bound nodes are absent from the
// result.
func (v *View) ReadData(names ...string) map[string]any {
	if len(names) == 0 {
		names = v.bindings.Names()
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		for _, n := range v.bindings[name] {
			acc, have := out[name]
			val, ok := strategyFor(n).read(v, n, acc, have)
			if ok {
				out[name] = val
			}
		}
	}
	return out
}
