package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vsariola/harmonia"
	"github.com/vsariola/harmonia/resolve"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff"))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	notesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6cf"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f55"))
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project>",
		Short: "Print the scale tree of a project with the resolved scales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), p.Forest(), resolve.New(a.logger))
			return nil
		},
	}
}

// printTree prints the nodes depth first. Nodes unreachable from any root,
// i.e. in cycles or below missing parents, are printed last.
func printTree(w io.Writer, forest harmonia.Forest, r *resolve.Resolver) {
	notes, errs := r.ResolveForest(forest)
	printed := map[harmonia.NodeID]bool{}
	var visit func(id harmonia.NodeID, depth int)
	visit = func(id harmonia.NodeID, depth int) {
		if printed[id] {
			return
		}
		printed[id] = true
		printNode(w, forest[id], depth, notes[id], errs[id])
		for _, c := range forest.Children(id) {
			visit(c, depth+1)
		}
	}
	for _, id := range forest.Roots() {
		visit(id, 0)
	}
	for _, id := range sortedIDs(forest) {
		if !printed[id] {
			visit(id, 0)
		}
	}
}

func printNode(w io.Writer, n harmonia.ScaleNode, depth int, notes []int, err error) {
	label := nameStyle.Render(n.Name)
	if n.Name == "" {
		label = nameStyle.Render(string(n.ID))
	}
	var result string
	if err != nil {
		result = errorStyle.Render(err.Error())
	} else {
		names := make([]string, len(notes))
		for i, note := range notes {
			names[i] = harmonia.NoteName(note)
		}
		result = notesStyle.Render(strings.Join(names, " "))
	}
	fmt.Fprintf(w, "%v%v %v %v\n", strings.Repeat("  ", depth), label, idStyle.Render("("+string(n.ID)+")"), result)
}

func sortedIDs(forest harmonia.Forest) []harmonia.NodeID {
	ret := make([]harmonia.NodeID, 0, len(forest))
	for id := range forest {
		ret = append(ret, id)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}
