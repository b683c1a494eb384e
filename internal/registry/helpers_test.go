package registry

import "github.com/vk/passdb/internal/pass"

// passNames maps a resolved pass list to its registration names.
func passNames(passes []pass.Pass) []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name()
	}
	return names
}
