package main

import (
	"jobsite"
	"jobsite/internal/api/repo"
	"jobsite/internal/api/service"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "jobadmin",
	Short:         "Operator tasks for the job site back office",
	Long:          "jobadmin migrates the database and manages back office accounts and admin rights.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		jobsite.InitConfig(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to the env file")
}

func newUserService() *service.UserService {
	cfg := jobsite.GetConfig()
	guard := service.NewGuard(repo.NewProfileRepository(jobsite.DB), jobsite.Logger)
	return service.NewUserService(repo.NewUserRepository(jobsite.DB), guard, service.TokenConfig{
		Secret:            cfg.JWTConfig.Secret,
		Expiration:        cfg.JWTConfig.Expiration,
		RefreshExpiration: cfg.JWTConfig.RefreshExpiration,
	}, jobsite.Logger)
}
