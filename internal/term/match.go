package term

// Match attempts to find a substitution sigma such that
// self.Substitute(sigma) equals other, per §4.2:
//   - a Variable (or AnonVariable/ArithPlaceholderVariable) matches any
//     term, binding itself to it;
//   - a ground term matches only its own equal;
//   - a Functional matches a Functional of the same name/arity,
//     element-wise, merging sub-substitutions and failing on conflict;
//   - arithmetic nodes are never matched directly — by the time
//     matching runs, non-ground arithmetic subterms have already been
//     replaced by an ArithPlaceholderVariable (§4.3).
func Match(self, other Term) (*Substitution, bool) {
	if id, ok := VarIDOf(self); ok {
		return Singleton(id, other), true
	}
	if self.Ground() {
		if other.Ground() {
			return NewSubstitution(), Equal(self, other)
		}
		return nil, false
	}
	sf, ok1 := self.(*Functional)
	of, ok2 := other.(*Functional)
	if ok1 && ok2 {
		if sf.Name != of.Name || len(sf.Args) != len(of.Args) {
			return nil, false
		}
		sub := NewSubstitution()
		for i := range sf.Args {
			s, ok := Match(sf.Args[i], of.Args[i])
			if !ok {
				return nil, false
			}
			merged, err := Merge(sub, s)
			if err != nil {
				return nil, false
			}
			sub = merged
		}
		return sub, true
	}
	return nil, false
}
