package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nerrad567/ucapi/schema"
	"github.com/nerrad567/ucapi/validate"
)

var errDrift = errors.New("wire contract drift detected")

func typesCmd(a *app) *cobra.Command {
	var fields bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the registered model types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range schema.Names() {
				if !fields {
					fmt.Fprintln(a.out, name)
					continue
				}
				required := make(map[string]bool)
				for _, f := range schema.Required(name) {
					required[f] = true
				}
				var parts []string
				for _, f := range schema.Fields(name) {
					if required[f] {
						f += "*"
					}
					parts = append(parts, f)
				}
				fmt.Fprintf(a.out, "%s: %s\n", name, strings.Join(parts, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fields, "fields", false, "print wire fields, required ones marked with *")
	return cmd
}

func rulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the string field constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := validate.DefaultTable()
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tMIN\tMAX\tPATTERN\tFORMAT")
			for _, name := range t.Names() {
				r, _ := t.Rule(name)
				pattern := r.Pattern
				if expr, ok := t.Patterns[pattern]; ok {
					pattern = expr
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, limit(r.Min), limit(r.Max), orDash(pattern), orDash(r.Format))
			}
			return w.Flush()
		},
	}
}

func limit(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func driftCmd(a *app) *cobra.Command {
	var contractPath string

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Compare the Go model types with the wire contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var drift []schema.Mismatch
			if contractPath == "" {
				var err error
				if drift, err = schema.Drift(); err != nil {
					return err
				}
			} else {
				data, err := os.ReadFile(contractPath)
				if err != nil {
					return fmt.Errorf("reading contract: %w", err)
				}
				c, err := schema.ParseContract(data)
				if err != nil {
					return err
				}
				drift = c.Drift()
			}

			for _, m := range drift {
				fmt.Fprintln(a.out, m.String())
			}
			if len(drift) > 0 {
				return fmt.Errorf("%w: %d types", errDrift, len(drift))
			}
			fmt.Fprintln(a.out, "no drift")
			return nil
		},
	}
	cmd.Flags().StringVar(&contractPath, "contract", "", "contract file (default: embedded wire.yaml)")
	return cmd
}
