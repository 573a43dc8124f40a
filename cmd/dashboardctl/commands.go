package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const dsnEnv = "DATABASE_URI"

func newRootCommand(b backend) *cobra.Command {
	var dsn string

	rootCmd := &cobra.Command{
		Use:           "dashboardctl",
		Short:         "Administer the invoices dashboard database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("missing DSN: provide via --dsn or %s", dsnEnv)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&dsn, "dsn", "d", os.Getenv(dsnEnv), "PostgreSQL DSN")

	dsnFn := func() string { return dsn }
	rootCmd.AddCommand(newMigrateCommand(b, dsnFn))
	rootCmd.AddCommand(newUsersCommand(b, dsnFn))
	rootCmd.AddCommand(newCustomersCommand(b, dsnFn))
	return rootCmd
}

func newMigrateCommand(b backend, dsn func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.migrate(cmd.Context(), dsn(), b.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and their state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := b.status(cmd.Context(), dsn())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATE\tFILE")
			for _, st := range statuses {
				fmt.Fprintf(w, "%d\t%s\t%s\n", st.Version, st.State, st.Path)
			}
			return w.Flush()
		},
	})
	return cmd
}

func newUsersCommand(b backend, dsn func() string) *cobra.Command {
	var name, email, password string

	create := &cobra.Command{
		Use:     "create",
		Short:   "Create a dashboard operator account",
		Example: "  dashboardctl users create --email user@nextmail.com --password 123456 --name \"User\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, closeFn, err := b.users(cmd.Context(), dsn())
			if err != nil {
				return err
			}
			defer closeFn()

			usr, err := users.Register(cmd.Context(), name, email, password)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s <%s>\n", usr.ID, usr.Email)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Display name (defaults to the email)")
	create.Flags().StringVar(&email, "email", "", "Sign-in email")
	create.Flags().StringVar(&password, "password", "", "Sign-in password, at least 6 characters")

	cmd := &cobra.Command{Use: "users", Short: "Manage operator accounts"}
	cmd.AddCommand(create)
	return cmd
}

func newCustomersCommand(b backend, dsn func() string) *cobra.Command {
	var name, email, imageURL string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a customer invoices can be issued to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" {
				return errors.New("--name and --email are required")
			}
			customers, closeFn, err := b.customers(cmd.Context(), dsn())
			if err != nil {
				return err
			}
			defer closeFn()

			c, err := customers.Create(cmd.Context(), name, email, imageURL)
			if err != nil {
				return fmt.Errorf("create customer: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created customer %s %s\n", c.ID, c.Name)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Customer name")
	create.Flags().StringVar(&email, "email", "", "Customer email")
	create.Flags().StringVar(&imageURL, "image-url", "", "Avatar image path")

	cmd := &cobra.Command{Use: "customers", Short: "Manage customers"}
	cmd.AddCommand(create)
	return cmd
}
