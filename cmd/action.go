package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func getActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Browse the audit log of operations performed against the API",
	}
	cmd.AddCommand(actionListCmd())
	cmd.AddCommand(actionGetCmd())
	return cmd
}

func actionListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List actions in chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			actions, err := client.GetActions(cmd.Context(), page)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(actions.Objects))
			for _, a := range actions.Objects {
				rows = append(rows, []string{
					a.UUID, a.Action, a.Method, a.Path, a.State,
					a.StartDate.Format("2006-01-02 15:04:05"),
				})
			}
			return renderList(cmd.OutOrStdout(), actions,
				[]string{"UUID", "Action", "Method", "Path", "State", "Started"}, rows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 = server default)")
	return cmd
}

func actionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <uuid>",
		Short: "Show one action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUUID(args[0]); err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			action, err := client.GetAction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), action)
		},
	}
}

// validateUUID rejects malformed identifiers before a request goes out.
func validateUUID(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return nil
}
