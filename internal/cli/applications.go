package cli

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"edgeos-client/internal/api"
	"edgeos-client/internal/domain"
	"edgeos-client/internal/logger"
	"edgeos-client/internal/service"
)

func (a *App) newApplicationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Browse and review popup applications",
	}
	cmd.AddCommand(
		a.newApplicationsListCommand(),
		a.newApplicationsGetCommand(),
		a.newApplicationsReviewCommand(),
		a.newApplicationsBulkReviewCommand(),
		a.newApplicationsSummaryCommand(),
		a.newApplicationsSchemaCommand(),
	)
	return cmd
}

func (a *App) newApplicationsListCommand() *cobra.Command {
	var (
		skip         int
		limit        int
		search       string
		statusFilter string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications for the selected popup",
		RunE: func(cmd *cobra.Command, args []string) error {
			popupID, err := a.popupID()
			if err != nil {
				return err
			}
			page, err := a.reviews.ListApplications(cmd.Context(), api.ListApplicationsParams{
				PopupID:      popupID,
				Skip:         skip,
				Limit:        limit,
				Search:       search,
				StatusFilter: domain.ApplicationStatus(statusFilter),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %-28s %-12s %s\n", "ID", "NAME", "STATUS", "EMAIL")
			for _, app := range page.Items {
				name := app.FullName()
				if app.RedFlag {
					name += " [flagged]"
				}
				fmt.Fprintf(out, "%-8d %-28s %-12s %s\n", app.ID, name, app.Status, app.Email)
			}
			fmt.Fprintf(out, "%d of %d application(s)\n", len(page.Items), page.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "number of rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "page size")
	cmd.Flags().StringVar(&search, "search", "", "search term")
	cmd.Flags().StringVar(&statusFilter, "status", "", "filter by status")
	return cmd
}

func (a *App) newApplicationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <application-id>",
		Short: "Show one application, custom fields included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			popupID, err := a.popupID()
			if err != nil {
				return err
			}

			app, err := a.reviews.GetApplication(cmd.Context(), id)
			if err != nil {
				return err
			}
			schema, err := a.reviews.GetApplicationSchema(cmd.Context(), popupID)
			if err != nil {
				// The schema only drives labels; show raw field names
				// when it cannot be fetched.
				logger.Warn("application schema unavailable, using raw field names", "popup_id", popupID, "error", err)
				schema = &domain.ApplicationSchema{PopupID: popupID}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Application %d\n", app.ID)
			fmt.Fprintf(out, "  Name:     %s\n", app.FullName())
			fmt.Fprintf(out, "  Email:    %s\n", app.Email)
			fmt.Fprintf(out, "  Status:   %s\n", app.Status)
			if app.Telegram != "" {
				fmt.Fprintf(out, "  Telegram: %s\n", app.Telegram)
			}
			if app.Organization != "" {
				fmt.Fprintf(out, "  Organization: %s\n", app.Organization)
			}
			if app.RedFlag {
				fmt.Fprintln(out, "  Flagged:  yes")
			}
			if len(app.Attendees) > 0 {
				fmt.Fprintln(out, "  Attendees:")
				for _, at := range app.Attendees {
					fmt.Fprintf(out, "    %s (%s)", at.Name, at.Category)
					if at.CheckInCode != "" {
						fmt.Fprintf(out, " code=%s", at.CheckInCode)
					}
					fmt.Fprintln(out)
				}
			}
			if len(app.CustomFields) > 0 {
				fmt.Fprintln(out, "  Answers:")
				names := make([]string, 0, len(app.CustomFields))
				for name := range app.CustomFields {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					kind := domain.FieldText
					if def, ok := schema.FieldByName(name); ok {
						kind = def.Kind
					}
					fmt.Fprintf(out, "    %s: %s\n", schema.Label(name), domain.FormatFieldValue(kind, app.CustomFields[name]))
				}
			}
			return nil
		},
	}
}

func (a *App) newApplicationsReviewCommand() *cobra.Command {
	var decision string
	cmd := &cobra.Command{
		Use:   "review <application-id>",
		Short: "Submit a review decision for one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			popupID, err := a.popupID()
			if err != nil {
				return err
			}

			app, err := a.reviews.GetApplication(cmd.Context(), id)
			if err != nil {
				return err
			}
			strategy := a.strategies.GetStrategy(cmd.Context(), popupID)

			session := service.NewVotingSession(strategy, app)
			if err := session.Select(domain.ReviewDecision(decision)); err != nil {
				return fmt.Errorf("%w (offered: %s)", err, joinDecisions(session.Offered()))
			}
			prompt, err := session.ConfirmationPrompt()
			if err != nil {
				return err
			}
			if !a.yesFlag && !confirm(cmd, prompt) {
				return session.Cancel()
			}

			d := session.Decision()
			if err := session.Submit(cmd.Context(), func(ctx context.Context, d domain.ReviewDecision) error {
				return a.reviews.SubmitReview(ctx, popupID, id, d)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %q for application %d.\n", d, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&decision, "decision", "", "review decision")
	cmd.MarkFlagRequired("decision")
	return cmd
}

func (a *App) newApplicationsBulkReviewCommand() *cobra.Command {
	var decision string
	cmd := &cobra.Command{
		Use:   "bulk-review <application-id>...",
		Short: "Submit one decision for several applications at once",
		Long: "Submits the decision for every selected application still in review. " +
			"Selections in any other status are skipped silently.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popupID, err := a.popupID()
			if err != nil {
				return err
			}
			d := domain.ReviewDecision(decision)
			if !d.Valid() {
				return fmt.Errorf("invalid decision %q", decision)
			}

			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			// Eligibility is judged against the last listed state, so
			// refresh the listing before the batch.
			if _, err := a.reviews.ListApplications(cmd.Context(), api.ListApplicationsParams{PopupID: popupID, Limit: 1000}); err != nil {
				return err
			}

			if !a.yesFlag && !confirm(cmd, fmt.Sprintf("Submit %q for %d selected application(s)?", decision, len(ids))) {
				return nil
			}
			submitted, err := a.reviews.SubmitBulkReview(cmd.Context(), popupID, ids, d)
			if err != nil {
				return err
			}
			if submitted == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No selected application is in review; nothing submitted.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %q for %d application(s).\n", decision, submitted)
			return nil
		},
	}
	cmd.Flags().StringVar(&decision, "decision", "", "review decision")
	cmd.MarkFlagRequired("decision")
	return cmd
}

func (a *App) newApplicationsSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <application-id>",
		Short: "Show the review summary for an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			popupID, err := a.popupID()
			if err != nil {
				return err
			}
			summary, err := a.reviews.GetReviewSummary(cmd.Context(), id)
			if err != nil {
				return err
			}
			strategy := a.strategies.GetStrategy(cmd.Context(), popupID)
			fmt.Fprint(cmd.OutOrStdout(), service.NewSummaryView(summary, strategy).Render())
			return nil
		},
	}
}

func (a *App) newApplicationsSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the popup's custom application fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			popupID, err := a.popupID()
			if err != nil {
				return err
			}
			schema, err := a.reviews.GetApplicationSchema(cmd.Context(), popupID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s %-12s %-16s %s\n", "NAME", "TYPE", "SECTION", "LABEL")
			for _, f := range schema.Fields {
				fmt.Fprintf(out, "%-24s %-12s %-16s %s\n", f.Name, f.Kind, f.Section, f.Label)
			}
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}

func joinDecisions(decisions []domain.ReviewDecision) string {
	parts := make([]string, len(decisions))
	for i, d := range decisions {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}

// confirm prompts on stderr and reads a y/N answer from stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
