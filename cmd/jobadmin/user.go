package main

import (
	"fmt"
	"strings"

	"jobsite"
	"jobsite/internal/api/repo"

	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userPassword string
	userAdmin    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage back office accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account that can sign in",
	Args:  cobra.NoArgs,
	RunE:  runUserCreate,
}

var grantCmd = &cobra.Command{
	Use:   "grant <email>",
	Short: "Give an account admin rights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], true)
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <email>",
	Short: "Remove admin rights from an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], false)
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "account password")
	userCreateCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant admin rights")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd, grantCmd, revokeCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	if len(userPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	user, err := newUserService().Register(cmd.Context(), userEmail, userPassword)
	if err != nil {
		return err
	}

	if err = repo.NewProfileRepository(jobsite.DB).SetAdmin(cmd.Context(), user.ID, userAdmin); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (id %s, admin %t)\n", user.Email, user.ID, userAdmin)
	return nil
}

func setAdmin(cmd *cobra.Command, email string, isAdmin bool) error {
	user, err := repo.NewUserRepository(jobsite.DB).FindByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("find user %s: %w", email, err)
	}

	if err = repo.NewProfileRepository(jobsite.DB).SetAdmin(cmd.Context(), user.ID, isAdmin); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s admin=%t\n", user.Email, isAdmin)
	return nil
}
