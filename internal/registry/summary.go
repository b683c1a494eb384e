package registry

import (
	"fmt"
	"io"
	"sort"
)

// PrintSummary writes a human-readable dump of registered names and tag
// buckets for operator inspection. Output is sorted for readability and is
// not part of the functional contract.
func (r *Registry) PrintSummary(w io.Writer) {
	r.printSummary(w, "PassRegistry")
}

func (r *Registry) printSummary(w io.Writer, title string) {
	fmt.Fprintf(w, "%s %q\n", title, r.name)
	fmt.Fprintf(w, "  names: %v\n", r.nameOrder)

	keys := make([]string, 0, len(r.buckets))
	for key := range r.buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b := r.buckets[key]
		if b.Len() == 0 {
			continue
		}
		members := make([]string, 0, b.Len())
		for _, id := range b.Items() {
			members = append(members, r.arena[id].name)
		}
		fmt.Fprintf(w, "  %s: %v\n", key, members)
	}
}

// PrintSummary writes the base dump plus the fixpoint policy and the final
// flags recorded per name.
func (e *EquilibriumRegistry) PrintSummary(w io.Writer) {
	e.printSummary(w, "EquilibriumRegistry")
	fmt.Fprintf(w, "  ignore_new_nodes: %v\n", e.ignoreNewNodes)
	for _, name := range e.nameOrder {
		if e.final[name] {
			fmt.Fprintf(w, "  final: %s\n", name)
		}
	}
}

// PrintSummary writes the base dump plus positions in ascending order,
// position ties broken by name.
func (s *SequenceRegistry) PrintSummary(w io.Writer) {
	s.printSummary(w, "SequenceRegistry")
	names := append([]string(nil), s.nameOrder...)
	sort.SliceStable(names, func(i, j int) bool { return names[i] < names[j] })
	sort.SliceStable(names, func(i, j int) bool { return s.positions[names[i]] < s.positions[names[j]] })
	for _, name := range names {
		fmt.Fprintf(w, "  position %g: %s\n", s.positions[name], name)
	}
}
