package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/generikvault/route/v2"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes of a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.router()
			if err != nil {
				return err
			}
			routes := r.Routes()
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), routes)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tMETHODS")
			for _, info := range routes {
				fmt.Fprintf(w, "%s\t%s\n", info.Pattern, strings.Join(info.Methods, ","))
			}
			return w.Flush()
		},
	}
}

type matchResult struct {
	Path    string       `json:"path"`
	Found   bool         `json:"found"`
	Pattern string       `json:"pattern,omitempty"`
	Methods []string     `json:"methods,omitempty"`
	Params  route.Params `json:"params,omitempty"`
}

func matchCmd(flags *globalFlags) *cobra.Command {
	var fail bool
	cmd := &cobra.Command{
		Use:   "match PATH...",
		Short: "Show the route each path resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.router()
			if err != nil {
				return err
			}
			results, err := matchAll(r, args)
			if err != nil {
				return err
			}
			if flags.json {
				err = writeJSON(cmd.OutOrStdout(), results)
			} else {
				err = printMatches(cmd.OutOrStdout(), results)
			}
			if err != nil {
				return err
			}
			if fail {
				for _, res := range results {
					if !res.Found {
						return fmt.Errorf("no route for %s", res.Path)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fail, "fail", false, "exit non-zero when a path matches no route")
	return cmd
}

func matchAll(r *route.Router, paths []string) ([]matchResult, error) {
	results := make([]matchResult, 0, len(paths))
	for _, path := range paths {
		match, err := r.Find(path)
		if err != nil {
			return nil, err
		}
		res := matchResult{Path: path}
		if match.Store != nil {
			res.Found = true
			res.Pattern = match.Pattern
			res.Methods = match.Store.Methods()
			res.Params = match.Params
		}
		results = append(results, res)
	}
	return results, nil
}

func printMatches(out io.Writer, results []matchResult) error {
	for _, res := range results {
		if !res.Found {
			if _, err := fmt.Fprintf(out, "%s: no route\n", res.Path); err != nil {
				return err
			}
			continue
		}
		names := make([]string, 0, len(res.Params))
		for name := range res.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, name+"="+res.Params[name])
		}
		if _, err := fmt.Fprintf(out, "%s: %s [%s] %s\n", res.Path, res.Pattern, strings.Join(res.Methods, ","), strings.Join(pairs, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
