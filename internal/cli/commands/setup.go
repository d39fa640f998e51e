package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/ranayash24/formbricks/internal/api"
	"github.com/ranayash24/formbricks/internal/config"
	"github.com/ranayash24/formbricks/internal/credentials"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the CLI with an environment API key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Base URL of the formbricks API (e.g. https://app.example.com/v1)",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show where credentials are stored",
				Action: func(c *cli.Context) error {
					if !credentials.HasAPIKey() {
						fmt.Println("No API key configured. Run 'formbricks setup' first.")
						return nil
					}
					fmt.Printf("API key stored via %s\n", credentials.GetStorageMode())
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "Delete the stored API key",
				Action: func(c *cli.Context) error {
					if err := credentials.DeleteAPIKey(); err != nil {
						return err
					}
					fmt.Println("API key removed.")
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			return handleSetup(c.String("api-url"))
		},
	}
}

func handleSetup(apiURL string) error {
	if apiURL != "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		cfg.APIURL = strings.TrimRight(apiURL, "/")
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("could not save config: %w", err)
		}
	}

	fmt.Print("Enter your environment API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("could not read API key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return fmt.Errorf("API key is required")
	}

	if err := credentials.StoreAPIKey(key); err != nil {
		return fmt.Errorf("could not store API key: %w", err)
	}

	// Verify the key before declaring success.
	client := api.NewClient()
	client.APIKey = key
	if _, err := client.ListTags(); err != nil {
		fmt.Printf("Warning: key stored but verification failed: %v\n", err)
		return nil
	}

	fmt.Printf("✅ API key verified and stored via %s\n", credentials.GetStorageMode())
	return nil
}
