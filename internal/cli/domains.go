package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
	"github.com/aalvaropc/domscan/internal/registry"
)

func domainsCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage the remote domain registry",
	}

	c.AddCommand(
		domainsListCmd(g),
		domainsAddCmd(g),
		domainsRenameCmd(g),
		domainsRemoveCmd(g),
	)
	return c
}

// withRegistry loads the registry before running fn.
func withRegistry(cmd *cobra.Command, g *globalFlags, confirm ports.Confirmer, fn func(*registry.Controller) error) error {
	app, cleanup, err := loadApp(cmd, *g)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []registry.Option{registry.WithLogger(app.log)}
	if confirm != nil {
		opts = append(opts, registry.WithConfirmer(confirm))
	}
	reg := registry.New(app.client, opts...)

	stop := startSpinner(cmd.ErrOrStderr(), "loading domains")
	err = reg.Load(cmd.Context())
	stop()
	if err != nil {
		return err
	}
	return fn(reg)
}

func domainsListCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered domains",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRegistry(cmd, g, nil, func(reg *registry.Controller) error {
				return printDomains(cmd.OutOrStdout(), reg.Domains(), format)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func domainsAddCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <domain>",
		Short: "Register a new domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd, g, nil, func(reg *registry.Controller) error {
				stop := startSpinner(cmd.ErrOrStderr(), "creating")
				e, err := reg.Submit(cmd.Context(), args[0])
				stop()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (id=%s)\n", e.Name, e.ID)
				return nil
			})
		},
	}
}

func domainsRenameCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id|domain> <new-domain>",
		Short: "Rename a registered domain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd, g, nil, func(reg *registry.Controller) error {
				i, err := lookup(reg.Domains(), args[0])
				if err != nil {
					return err
				}
				if _, err := reg.BeginEdit(i); err != nil {
					return err
				}

				stop := startSpinner(cmd.ErrOrStderr(), "updating")
				e, err := reg.Submit(cmd.Context(), args[1])
				stop()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n", e.ID, e.Name)
				return nil
			})
		},
	}
}

func domainsRemoveCmd(g *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id|domain>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a registered domain (asks for confirmation)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := ports.Confirmer(newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()))
			if yes {
				confirm = ports.AlwaysConfirm()
			}

			return withRegistry(cmd, g, confirm, func(reg *registry.Controller) error {
				i, err := lookup(reg.Domains(), args[0])
				if err != nil {
					return err
				}
				target := reg.Domains()[i]

				removed, err := reg.Remove(cmd.Context(), i)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (id=%s)\n", target.Name, target.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// lookup resolves an id or an exact domain name to an index. Ids win.
func lookup(entries []domain.DomainEntry, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i := domain.FindByID(entries, ref); i >= 0 {
		return i, nil
	}
	if i := domain.FindByName(entries, ref); i >= 0 {
		return i, nil
	}
	return -1, &domain.OpError{
		Op:   "cli.lookup",
		Kind: domain.KindNotFound,
		Path: ref,
		Err:  domain.ErrNotFound,
	}
}
