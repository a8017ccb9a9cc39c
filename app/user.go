package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pzillo/landing/internal/auth"
	"github.com/pzillo/landing/internal/db"
)

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{userAddCmd, passwdCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "account e-mail")
		c.Flags().StringVar(&userPassword, "password", "", "account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")

		rootCmd.AddCommand(c)
	}
}

var (
	userEmail    string
	userPassword string

	userAddCmd = &cobra.Command{
		Use:   "useradd",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := openProvider()
			if err != nil {
				return err
			}

			user, err := provider.CreateUser(userEmail, userPassword)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", userEmail, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created account %s\n", user.Email)

			return nil
		},
	}

	passwdCmd = &cobra.Command{
		Use:   "passwd",
		Short: "Set the password of an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := openProvider()
			if err != nil {
				return err
			}

			if err = provider.ResetPassword(userEmail, userPassword); err != nil {
				return fmt.Errorf("failed to set password of %s: %w", userEmail, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "password of %s changed\n", auth.NormalizeEmail(userEmail))

			return nil
		},
	}
)

func openProvider() (*auth.LocalProvider, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}

	gdb, err := db.Open(&c)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return auth.NewLocalProvider(gdb), nil
}
