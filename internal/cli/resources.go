package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// The resource command groups below mirror the REST API one HTTP call
// per subcommand. List commands accept optional key=value filters that
// become query parameters.

func (a *App) newTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage email templates",
	}
	cmd.AddCommand(
		newPassthroughCommand(passthroughOpts{
			use: "list [key=value...]", short: "List templates", args: cobra.ArbitraryArgs,
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				q, err := listQuery(args)
				if err != nil {
					return nil, err
				}
				return a.client.ListTemplates(ctx, q)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "get <id>", short: "Get a template", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.GetTemplate(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "create", short: "Create a template", args: cobra.NoArgs, needBody: true,
			call: func(ctx context.Context, _ []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.CreateTemplate(ctx, body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "update <id>", short: "Update a template", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.UpdateTemplate(ctx, args[0], body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "delete <id>", short: "Delete a template", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.DeleteTemplate(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "preview <id>", short: "Render a template preview", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.PreviewTemplate(ctx, args[0], body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "send-test <id>", short: "Send a test email for a template", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.SendTestTemplate(ctx, args[0], body)
			},
		}),
	)
	return cmd
}

func (a *App) newPaymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Inspect and approve payments",
	}
	cmd.AddCommand(
		newPassthroughCommand(passthroughOpts{
			use: "list [key=value...]", short: "List payments", args: cobra.ArbitraryArgs,
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				q, err := listQuery(args)
				if err != nil {
					return nil, err
				}
				return a.client.ListPayments(ctx, q)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "get <id>", short: "Get a payment", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.GetPayment(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "approve <id>", short: "Approve a payment", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.ApprovePayment(ctx, args[0], body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "update <id>", short: "Update a payment", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.UpdatePayment(ctx, args[0], body)
			},
		}),
	)
	return cmd
}

func (a *App) newHumansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "humans",
		Short: "Manage humans (attendee profiles)",
	}
	cmd.AddCommand(
		newPassthroughCommand(passthroughOpts{
			use: "list [key=value...]", short: "List humans", args: cobra.ArbitraryArgs,
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				q, err := listQuery(args)
				if err != nil {
					return nil, err
				}
				return a.client.ListHumans(ctx, q)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "get <id>", short: "Get a human", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.GetHuman(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "create", short: "Create a human", args: cobra.NoArgs, needBody: true,
			call: func(ctx context.Context, _ []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.CreateHuman(ctx, body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "update <id>", short: "Update a human", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.UpdateHuman(ctx, args[0], body)
			},
		}),
	)
	return cmd
}

func (a *App) newTenantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage tenants and the active tenant context",
	}
	cmd.AddCommand(
		newPassthroughCommand(passthroughOpts{
			use: "list [key=value...]", short: "List tenants", args: cobra.ArbitraryArgs,
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				q, err := listQuery(args)
				if err != nil {
					return nil, err
				}
				return a.client.ListTenants(ctx, q)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "get <id>", short: "Get a tenant", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.GetTenant(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "create", short: "Create a tenant", args: cobra.NoArgs, needBody: true,
			call: func(ctx context.Context, _ []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.CreateTenant(ctx, body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "update <id>", short: "Update a tenant", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.UpdateTenant(ctx, args[0], body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "delete <id>", short: "Delete a tenant", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.DeleteTenant(ctx, args[0])
			},
		}),
		a.newTenantsUseCommand(),
	)
	return cmd
}

// newTenantsUseCommand is the one tenant subcommand that is not a
// passthrough: it rewrites the local config to scope later calls.
func (a *App) newTenantsUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <tenant-id>",
		Short: "Select the tenant for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.TenantID = args[0]
			if err := a.cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using tenant %s\n", args[0])
			return nil
		},
	}
}

func (a *App) newCouponsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupons",
		Short: "Manage discount coupons",
	}
	cmd.AddCommand(
		newPassthroughCommand(passthroughOpts{
			use: "list [key=value...]", short: "List coupons", args: cobra.ArbitraryArgs,
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				q, err := listQuery(args)
				if err != nil {
					return nil, err
				}
				return a.client.ListCoupons(ctx, q)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "get <id>", short: "Get a coupon", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.GetCoupon(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "create", short: "Create a coupon", args: cobra.NoArgs, needBody: true,
			call: func(ctx context.Context, _ []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.CreateCoupon(ctx, body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "update <id>", short: "Update a coupon", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.UpdateCoupon(ctx, args[0], body)
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "delete <id>", short: "Delete a coupon", args: cobra.ExactArgs(1),
			call: func(ctx context.Context, args []string, _ json.RawMessage) (json.RawMessage, error) {
				return a.client.DeleteCoupon(ctx, args[0])
			},
		}),
		newPassthroughCommand(passthroughOpts{
			use: "validate <code>", short: "Validate a coupon code", args: cobra.ExactArgs(1), needBody: true,
			call: func(ctx context.Context, args []string, body json.RawMessage) (json.RawMessage, error) {
				return a.client.ValidateCoupon(ctx, args[0], body)
			},
		}),
	)
	return cmd
}
