package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/ranayash24/formbricks/internal/api"
	"github.com/urfave/cli/v2"
)

// NewSurveyCommand creates all subcommands for the 'survey' command group.
func NewSurveyCommand() *cli.Command {
	return &cli.Command{
		Name:    "survey",
		Aliases: []string{"s"},
		Usage:   "Manage surveys",
		Subcommands: []*cli.Command{
			surveyListCmd(),
			surveyCreateCmd(),
			surveyShowCmd(),
			surveyStatusCmd(),
			surveyLinkCmd(),
			surveyDeleteCmd(),
		},
	}
}

// surveyListCmd lists all surveys of the environment.
func surveyListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all surveys",
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			surveys, err := client.ListSurveys()
			if err != nil {
				fmt.Printf("Error listing surveys: %v\n", err)
				return err
			}

			if len(surveys) == 0 {
				fmt.Println("No surveys found. Use 'formbricks survey create' to add one.")
				return nil
			}

			width := descriptionWidth()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tDESCRIPTION")
			fmt.Fprintln(w, "--\t----\t----\t------\t-----------")
			for _, s := range surveys {
				description := ""
				if s.Description != nil {
					description = truncateString(*s.Description, width)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.ID.String()[:8], s.Name, s.Type, s.Status, description)
			}
			w.Flush()
			return nil
		},
	}
}

// surveyCreateCmd creates a new survey.
func surveyCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new survey",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Survey type: link or app",
				Value:   "link",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Survey description",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("survey name is required")
			}

			client := api.NewClient()
			s, err := client.CreateSurvey(c.Args().First(), c.String("type"), c.String("description"))
			if err != nil {
				fmt.Printf("Error creating survey: %v\n", err)
				return err
			}

			fmt.Printf("✅ Survey '%s' created successfully!\n", s.Name)
			fmt.Printf("ID: %s\n", s.ID.String())
			return nil
		},
	}
}

// surveyShowCmd shows details for a specific survey.
func surveyShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a survey",
		ArgsUsage: "[survey-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("survey ID is required")
			}

			client := api.NewClient()
			details, err := client.GetSurvey(c.Args().First())
			if err != nil {
				fmt.Printf("Error getting survey: %v\n", err)
				return err
			}

			s := details.Survey
			fmt.Printf("Survey Details for '%s':\n", s.Name)
			fmt.Printf("----------------------------------\n")
			fmt.Printf("ID:          %s\n", s.ID.String())
			fmt.Printf("Name:        %s\n", s.Name)
			fmt.Printf("Type:        %s\n", s.Type)
			fmt.Printf("Status:      %s\n", s.Status)
			if s.Description != nil {
				fmt.Printf("Description: %s\n", *s.Description)
			}
			fmt.Printf("Share URL:   %s\n", details.ShareURL)
			fmt.Printf("Created:     %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// surveyStatusCmd changes a survey's status.
func surveyStatusCmd() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Set a survey's status (draft, inProgress, paused, completed)",
		ArgsUsage: "[survey-id] [status]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("survey ID and status are required")
			}

			client := api.NewClient()
			s, err := client.UpdateSurveyStatus(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				fmt.Printf("Error updating survey: %v\n", err)
				return err
			}

			fmt.Printf("✅ Survey '%s' is now %s\n", s.Name, s.Status)
			return nil
		},
	}
}

// surveyLinkCmd prints the public share URL for a link survey.
func surveyLinkCmd() *cli.Command {
	return &cli.Command{
		Name:      "link",
		Usage:     "Print the public share URL of a survey",
		ArgsUsage: "[survey-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "copy",
				Aliases: []string{"c"},
				Usage:   "Copy the URL to the clipboard",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("survey ID is required")
			}

			client := api.NewClient()
			details, err := client.GetSurvey(c.Args().First())
			if err != nil {
				fmt.Printf("Error getting survey: %v\n", err)
				return err
			}

			fmt.Println(details.ShareURL)
			if c.Bool("copy") {
				if err := clipboard.WriteAll(details.ShareURL); err != nil {
					fmt.Printf("Could not copy to clipboard: %v\n", err)
					return nil
				}
				fmt.Println("Copied to clipboard.")
			}
			return nil
		},
	}
}

// surveyDeleteCmd deletes a survey.
func surveyDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a survey and all its responses",
		ArgsUsage: "[survey-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("survey ID is required")
			}

			client := api.NewClient()
			if err := client.DeleteSurvey(c.Args().First()); err != nil {
				fmt.Printf("Error deleting survey: %v\n", err)
				return err
			}

			fmt.Println("✅ Survey deleted successfully!")
			return nil
		},
	}
}
