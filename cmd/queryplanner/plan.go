package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samsarahq/go/oops"
	"github.com/spf13/cobra"

	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/queryplan"
	"github.com/opengraphfed/queryplanner/supergraph"
	"github.com/opengraphfed/queryplanner/walk"
)

func newPlanCmd() *cobra.Command {
	var (
		supergraphPath string
		operationType  string
		stepsCSV       string
		dot            bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Synthesize a query plan for one operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(supergraphPath, operationType, stepsCSV, dot)
		},
	}

	cmd.Flags().StringVar(&supergraphPath, "supergraph", "", "path to a supergraph SDL file")
	cmd.Flags().StringVar(&operationType, "operation", "query", "operation type: query, mutation, or subscription")
	cmd.Flags().StringVar(&stepsCSV, "steps", "", "comma-separated field-step sequence")
	cmd.Flags().BoolVar(&dot, "dot", false, "also print the query graph as Graphviz DOT source")
	_ = cmd.MarkFlagRequired("supergraph")
	_ = cmd.MarkFlagRequired("steps")

	return cmd
}

func runPlan(supergraphPath, operationType, stepsCSV string, dot bool) error {
	raw, err := os.ReadFile(supergraphPath)
	if err != nil {
		return oops.Wrapf(err, "reading supergraph file %s", supergraphPath)
	}

	sg, err := supergraph.Parse(string(raw))
	if err != nil {
		return oops.Wrapf(err, "parsing supergraph")
	}
	log.Info().Strs("subgraphs", sg.GraphIDs()).Msg("parsed supergraph")

	graph, err := querygraph.Build(sg)
	if err != nil {
		return oops.Wrapf(err, "building query graph")
	}
	log.Info().Int("nodes", len(graph.Nodes)).Int("edges", len(graph.Edges)).Msg("built query graph")

	if dot {
		fmt.Println(graph.Print(false))
	}

	opType, err := parseOperationType(operationType)
	if err != nil {
		return err
	}

	steps := parseSteps(stepsCSV)
	walker := walk.NewWalker(graph)
	path, err := walker.WalkQuery(opType, steps)
	if err != nil {
		return oops.Wrapf(err, "walking operation")
	}
	if path == nil {
		log.Warn().Msg("no path satisfies the requested steps")
		return nil
	}

	plan, err := queryplan.Synthesize(operationType, path)
	if err != nil {
		return oops.Wrapf(err, "synthesizing plan")
	}

	fmt.Println(queryplan.Pretty(plan))
	return nil
}

func parseOperationType(s string) (walk.OperationType, error) {
	switch s {
	case "query", "":
		return walk.Query, nil
	case "mutation":
		return walk.Mutation, nil
	case "subscription":
		return walk.Subscription, nil
	default:
		return 0, oops.Errorf("unknown operation type %q", s)
	}
}

func parseSteps(csv string) []walk.FieldStep {
	var steps []walk.FieldStep
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		steps = append(steps, walk.FieldStep{Name: name})
	}
	return steps
}
