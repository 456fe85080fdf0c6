package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ghecrochet/storefront/app/configs"
	"github.com/ghecrochet/storefront/app/db/seeders"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/migrations"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func NewCli(env configs.ENV) *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "Ghẹ Crochet storefront maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					zap.S().Info("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Insert demo categories and products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Value: seeders.DefaultProductCount, Usage: "number of products to create"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					return seeders.DBSeed(ctx, db, int(c.Int("count")))
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Value: "Admin"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					return createAdmin(ctx, repositories.NewUserRepository(db), c.String("name"), c.String("email"), c.String("password"))
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session, encryption and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateSessionKeys(os.Stdout)
				},
			},
		},
	}
}

func createAdmin(ctx context.Context, users repositories.UserRepositoryImpl, name, email, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user %s already exists", email)
	}

	user := &models.User{Name: name, Email: email, Password: password, Role: models.RoleAdmin}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	zap.S().Infof("Admin %s created", email)
	return nil
}

func RunCli(ctx context.Context, env configs.ENV, args []string) error {
	return NewCli(env).Run(ctx, args)
}
