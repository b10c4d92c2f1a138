package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	terrors "github.com/vango-dev/tether/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "errors [code]",
		Short:  "Explain tether error codes",
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				code := strings.ToUpper(args[0])
				if _, ok := terrors.GetTemplate(code); !ok {
					return fmt.Errorf("unknown error code %q", args[0])
				}
				fmt.Fprint(out, terrors.New(code).Format())
				return nil
			}
			for _, code := range terrors.GetAllCodes() {
				tmpl, _ := terrors.GetTemplate(code)
				fmt.Fprintf(out, "%s  %-9s %s\n", code, tmpl.Category, tmpl.Message)
			}
			return nil
		},
	}
}
