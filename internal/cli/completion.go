package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeTargets offers the public targets of the descriptor, with their
// descriptions, when completing positional arguments.
func (a *app) completeTargets(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	p, err := a.loadProject()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	given := make(map[string]bool, len(args))
	for _, arg := range args {
		given[arg] = true
	}

	var completions []string
	for _, row := range p.Describe() {
		name, desc := row[0], row[1]
		if given[name] || !strings.HasPrefix(name, toComplete) {
			continue
		}
		if desc != "" {
			name += "\t" + desc
		}
		completions = append(completions, name)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
