package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pendergraft/sentinel/pkg/client"
)

func createAuditCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "audit <address>",
		Short: "Audit a contract address for risk",
		Long: `Submit a contract address to the Sentinel server and render the
risk assessment.

EXAMPLES:
  # Audit a contract
  sentinel audit 0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619

  # Raw JSON output (for piping)
  sentinel audit 0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619 --json

  # Against a specific server
  sentinel audit 0x7ceB... --server https://sentinel.example.com
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw JSON response")

	return cmd
}

func runAudit(address string, jsonOutput bool) error {
	c := client.New(getServer())

	assessment, err := c.Audit(context.Background(), address)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}

	printAssessment(assessment)
	return nil
}

func printAssessment(a *client.RiskAssessment) {
	fmt.Printf("%s Risk (%d/100)\n", a.RiskLevel, a.RiskScore)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(a.Summary)
	if len(a.KeyIssues) > 0 {
		fmt.Println()
		for _, issue := range a.KeyIssues {
			fmt.Printf("  - %s\n", issue)
		}
	}
}
