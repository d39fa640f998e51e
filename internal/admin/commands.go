package admin

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/config"
	"github.com/ranayash24/formbricks/pkg/models"
	"github.com/ranayash24/formbricks/pkg/repository"
	"github.com/ranayash24/formbricks/pkg/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// connect loads config and opens the database. Admin commands talk to the
// database directly rather than going through the HTTP API.
func connect() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := repository.NewDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

// NewMigrateCmd runs schema migration and exits.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := connect()
			if err != nil {
				return err
			}
			fmt.Println("Migration complete.")
			return nil
		},
	}
}

// NewSeedCmd creates a development environment with sample data.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a development environment with a sample survey and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := connect()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			environments := service.NewEnvironmentService(db)
			env, err := environments.Create(ctx, models.EnvironmentTypeDevelopment)
			if err != nil {
				return err
			}

			surveys := service.NewSurveyService(db, cfg.Public.URL)
			description := "Example onboarding feedback survey"
			survey, err := surveys.Create(ctx, env.ID, "Onboarding Feedback", models.SurveyTypeLink, &description)
			if err != nil {
				return err
			}

			tags := service.NewTagService(db)
			for _, name := range []string{"bug", "feature-request", "praise"} {
				if _, err := tags.Create(ctx, env.ID, name); err != nil {
					return err
				}
			}

			keys := service.NewAPIKeyService(db)
			_, cleartext, err := keys.Create(ctx, env.ID, "seed")
			if err != nil {
				return err
			}

			fmt.Printf("Environment: %s\n", env.ID)
			fmt.Printf("Survey:      %s (%s)\n", survey.ID, survey.Name)
			fmt.Printf("API key:     %s\n", cleartext)
			fmt.Println("Store the API key now; it cannot be shown again.")
			return nil
		},
	}
}

// NewEnvCmd manages environments.
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environments",
	}

	var envType string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connect()
			if err != nil {
				return err
			}
			env, err := service.NewEnvironmentService(db).Create(cmd.Context(), models.EnvironmentType(envType))
			if err != nil {
				return err
			}
			fmt.Printf("Environment created: %s (%s)\n", env.ID, env.Type)
			return nil
		},
	}
	create.Flags().StringVarP(&envType, "type", "t", "production", "Environment type: production or development")

	list := &cobra.Command{
		Use:   "list",
		Short: "List environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connect()
			if err != nil {
				return err
			}
			envs, err := service.NewEnvironmentService(db).List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tCREATED")
			for _, env := range envs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", env.ID, env.Type, env.CreatedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

// NewAPIKeyCmd manages environment API keys.
func NewAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage environment API keys",
	}

	var label string
	create := &cobra.Command{
		Use:   "create [environment-id]",
		Short: "Issue an API key for an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid environment id: %w", err)
			}
			db, _, err := connect()
			if err != nil {
				return err
			}
			key, cleartext, err := service.NewAPIKeyService(db).Create(cmd.Context(), envID, label)
			if err != nil {
				return err
			}
			fmt.Printf("API key %s (%s):\n%s\n", key.ID, key.Label, cleartext)
			fmt.Println("Store the key now; it cannot be shown again.")
			return nil
		},
	}
	create.Flags().StringVarP(&label, "label", "l", "cli", "Label for the key")

	list := &cobra.Command{
		Use:   "list [environment-id]",
		Short: "List an environment's API keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid environment id: %w", err)
			}
			db, _, err := connect()
			if err != nil {
				return err
			}
			keys, err := service.NewAPIKeyService(db).List(cmd.Context(), envID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tCREATED\tLAST USED")
			for _, k := range keys {
				lastUsed := "never"
				if k.LastUsedAt != nil {
					lastUsed = k.LastUsedAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k.ID, k.Label, k.CreatedAt.Format("2006-01-02 15:04"), lastUsed)
			}
			w.Flush()
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [key-id]",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid key id: %w", err)
			}
			db, _, err := connect()
			if err != nil {
				return err
			}
			if err := service.NewAPIKeyService(db).Delete(cmd.Context(), keyID); err != nil {
				return err
			}
			fmt.Println("API key revoked.")
			return nil
		},
	}

	cmd.AddCommand(create, list, del)
	return cmd
}
