package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/smiles"
)

// NewSmilesCmd creates the "smiles" command group for structure parsing and
// canonicalization.
func NewSmilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smiles",
		Short: "Parse and canonicalize SMILES molecular structures",
	}

	cmd.AddCommand(newSmilesCanonicalizeCmd())
	return cmd
}

func newSmilesCanonicalizeCmd() *cobra.Command {
	var stdin bool

	cmd := &cobra.Command{
		Use:   "canonicalize [file]",
		Short: "Print the canonical SMILES for every structure in a file (or stdin)",
		Long: "Reads SMILES strings one per line from a file or from stdin, and prints\n" +
			"the canonical form of each. Lines that fail to parse are reported on\n" +
			"stderr with their errors and skipped rather than aborting the run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error

			switch {
			case len(args) == 1:
				data, err = os.ReadFile(args[0])
			case stdin || len(args) == 0:
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return errors.Wrap(err, errors.CodeInvalidParam, "failed to read SMILES input")
			}

			return canonicalizeLines(cmd, string(data))
		},
	}

	cmd.Flags().BoolVar(&stdin, "stdin", false, "read SMILES lines from stdin")
	return cmd
}

func canonicalizeLines(cmd *cobra.Command, data string) error {
	lines := strings.Split(data, "\n")
	exitCode := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		result := smiles.Parse(trimmed)
		if len(result.Errors) > 0 {
			exitCode = 1
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %q: %s\n", i+1, trimmed, strings.Join(result.Errors, "; "))
			continue
		}

		canonical := smiles.GenerateAll(result.Molecules, true)
		fmt.Fprintln(cmd.OutOrStdout(), canonical)
	}

	if exitCode != 0 {
		return errors.InvalidParam("one or more SMILES lines failed to parse")
	}
	return nil
}
