package ux

import (
	"fmt"
	"sort"
)

// RenderPlan prints what a dry run would have published.
func RenderPlan(docRepo, branch, base string, changed map[string]string) {
	fmt.Printf("\n%sDry run — nothing was written to %s%s\n\n", Bold, docRepo, Reset)
	fmt.Printf("  %sBranch:%s  %s (from %s)\n", Bold, Reset, branch, base)
	fmt.Printf("  %sFiles:%s\n", Bold, Reset)

	paths := make([]string, 0, len(changed))
	for p := range changed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Printf("    %s%s%s (%d chars)\n", Cyan, p, Reset, len([]rune(changed[p])))
	}
	fmt.Println()
}
