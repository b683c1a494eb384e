package app

import (
	"fmt"
	"io"

	"github.com/vk/passdb/internal/pass"
	"github.com/vk/passdb/internal/schedule"
)

// printSchedule writes the resolved schedule tree, recursing into nested
// schedulers so the full flattened plan is visible at a glance.
func printSchedule(w io.Writer, p pass.Pass, indent string) {
	switch s := p.(type) {
	case *schedule.Fixpoint:
		fmt.Fprintf(w, "%sfixpoint %q (max_use_ratio=%g, ignore_new_nodes=%v)\n",
			indent, s.Name(), s.MaxUseRatio, s.IgnoreNewNodes)
		for _, sub := range s.Ordinary {
			printSchedule(w, sub, indent+"  ")
		}
		if len(s.Final) > 0 {
			fmt.Fprintf(w, "%s  final:\n", indent)
			for _, sub := range s.Final {
				printSchedule(w, sub, indent+"    ")
			}
		}
	case *schedule.LocalGroup:
		fmt.Fprintf(w, "%slocal group %q\n", indent, s.Name())
		for _, sub := range s.Passes {
			printSchedule(w, sub, indent+"  ")
		}
	case *schedule.Sequence:
		fmt.Fprintf(w, "%ssequence %q\n", indent, s.Name())
		for _, sub := range s.Passes {
			printSchedule(w, sub, indent+"  ")
		}
	default:
		fmt.Fprintf(w, "%s%s\n", indent, p.Name())
	}
}
