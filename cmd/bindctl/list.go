package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	binding "github.com/openbindings/binding-go"
	"github.com/openbindings/binding-go/discovery"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types FILE",
		Short: "List the types declared by a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.discover(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tACCEPTS\tBINDINGS\tPARAMETERS")
			for _, t := range d.Types() {
				params := make([]string, 0, len(t.Parameters()))
				for _, p := range t.Parameters() {
					params = append(params, p.String())
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					t.Name(), t.AcceptedCapability(), len(d.FindBindings(t.Name())), strings.Join(params, ", "))
			}
			return w.Flush()
		},
	}
}

func newBindingsCmd(a *app) *cobra.Command {
	var (
		typeName string
		params   []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "bindings FILE",
		Short: "List the bindings of a manifest",
		Long: `Bindings lists the bindings of a manifest after initialization, so
parameter values include the defaults of their type.

Filter with --type and --param name=value. Values are compared in their
printed form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchers, err := parseParamFilters(params)
			if err != nil {
				return err
			}
			d, err := a.discover(args[0])
			if err != nil {
				return err
			}

			var found []binding.Binding
			if typeName != "" {
				found = d.FindBindings(typeName, matchers...)
			} else {
				for _, t := range d.Types() {
					found = append(found, d.FindBindings(t.Name(), matchers...)...)
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			return writeTable(cmd.OutOrStdout(), found)
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only list bindings of this type")
	cmd.Flags().StringArrayVar(&params, "param", nil, "only list bindings with this parameter value (name=value, repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON document per binding")
	return cmd
}

func parseParamFilters(params []string) ([]discovery.Matcher, error) {
	matchers := make([]discovery.Matcher, 0, len(params))
	for _, p := range params {
		name, want, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", p)
		}
		matchers = append(matchers, func(b binding.Binding) bool {
			v, err := b.ParameterValue(name)
			return err == nil && fmt.Sprint(v) == want
		})
	}
	return matchers, nil
}

func writeJSON(w io.Writer, bindings []binding.Binding) error {
	for _, b := range bindings {
		data, err := binding.Marshal(b)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, bindings []binding.Binding) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tKIND\tTARGET\tPARAMETERS")
	for _, b := range bindings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.TypeName(), b.Capability(), target(b), formatValues(b.ParameterValues()))
	}
	return tw.Flush()
}

func target(b binding.Binding) string {
	switch v := b.(type) {
	case *binding.ResourceBinding:
		return v.Query()
	case *binding.ClassBinding:
		return v.ClassName()
	default:
		return "-"
	}
}

func formatValues(values map[string]any) string {
	if len(values) == 0 {
		return "-"
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, values[name])
	}
	return strings.Join(parts, " ")
}
