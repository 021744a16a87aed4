package pythoneval

// Set is an ordered set of contexts compared by identity. Sets are small, so
// membership is a linear scan.
type Set []Context

// NewSet builds a set from contexts, dropping nils and duplicates
func NewSet(cs ...Context) Set {
	var s Set
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

// Contains reports whether c is in the set
func (s Set) Contains(c Context) bool {
	for _, x := range s {
		if x == c {
			return true
		}
	}
	return false
}

// Add returns the set with c appended if absent. The receiver may be modified.
func (s Set) Add(c Context) Set {
	if c == nil || s.Contains(c) {
		return s
	}
	return append(s, c)
}

// Union returns the contexts of s followed by the new contexts of others
func (s Set) Union(others ...Set) Set {
	out := append(Set(nil), s...)
	for _, o := range others {
		for _, c := range o {
			out = out.Add(c)
		}
	}
	return out
}

// Filter returns the contexts for which keep is true
func (s Set) Filter(keep func(Context) bool) Set {
	var out Set
	for _, c := range s {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names lists the names of the contexts, in order
func (s Set) Names() []string {
	var out []string
	for _, c := range s {
		out = append(out, c.Name())
	}
	return out
}

// Truth combines the truthiness of the contexts; an empty set is unknown
func (s Set) Truth() Truth {
	if len(s) == 0 {
		return TruthUnknown
	}
	t := s[0].Bool()
	for _, c := range s[1:] {
		if c.Bool() != t {
			return TruthUnknown
		}
	}
	return t
}
