package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ranayash24/formbricks/internal/api"
	"github.com/urfave/cli/v2"
)

// NewResponseCommand creates all subcommands for the 'response' command group.
func NewResponseCommand() *cli.Command {
	return &cli.Command{
		Name:    "response",
		Aliases: []string{"r"},
		Usage:   "Inspect, tag and export survey responses",
		Subcommands: []*cli.Command{
			responseListCmd(),
			responseShowCmd(),
			responseTagCmd(),
			responseUntagCmd(),
			responseExportCmd(),
		},
	}
}

// responseListCmd lists a survey's responses.
func responseListCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List responses of a survey",
		ArgsUsage: "[survey-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("survey ID is required")
			}

			client := api.NewClient()
			responses, err := client.ListResponses(c.Args().First())
			if err != nil {
				fmt.Printf("Error listing responses: %v\n", err)
				return err
			}

			if len(responses) == 0 {
				fmt.Println("No responses yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tFINISHED\tTAGS")
			fmt.Fprintln(w, "--\t-------\t--------\t----")
			for _, r := range responses {
				tagNames := make([]string, len(r.Tags))
				for i, t := range r.Tags {
					tagNames[i] = t.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n",
					r.ID.String()[:8],
					r.CreatedAt.Format("2006-01-02 15:04"),
					r.Finished,
					strings.Join(tagNames, ", "))
			}
			w.Flush()
			return nil
		},
	}
}

// responseShowCmd shows a single response with its data payload.
func responseShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a response",
		ArgsUsage: "[response-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("response ID is required")
			}

			client := api.NewClient()
			r, err := client.GetResponse(c.Args().First())
			if err != nil {
				fmt.Printf("Error getting response: %v\n", err)
				return err
			}

			fmt.Printf("Response %s\n", r.ID.String())
			fmt.Printf("----------------------------------\n")
			fmt.Printf("Survey:   %s\n", r.SurveyID.String())
			fmt.Printf("Created:  %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("Finished: %t\n", r.Finished)
			if len(r.Tags) > 0 {
				tagNames := make([]string, len(r.Tags))
				for i, t := range r.Tags {
					tagNames[i] = t.Name
				}
				fmt.Printf("Tags:     %s\n", strings.Join(tagNames, ", "))
			}
			fmt.Printf("Data:     %s\n", string(r.Data))
			return nil
		},
	}
}

// responseTagCmd applies a tag to a response.
func responseTagCmd() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Apply a tag to a response",
		ArgsUsage: "[response-id] [tag-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("response ID and tag ID are required")
			}

			client := api.NewClient()
			if err := client.TagResponse(c.Args().Get(0), c.Args().Get(1)); err != nil {
				fmt.Printf("Error tagging response: %v\n", err)
				return err
			}

			fmt.Println("✅ Tag applied successfully!")
			return nil
		},
	}
}

// responseUntagCmd removes a tag from a response.
func responseUntagCmd() *cli.Command {
	return &cli.Command{
		Name:      "untag",
		Usage:     "Remove a tag from a response",
		ArgsUsage: "[response-id] [tag-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("response ID and tag ID are required")
			}

			client := api.NewClient()
			if err := client.UntagResponse(c.Args().Get(0), c.Args().Get(1)); err != nil {
				fmt.Printf("Error untagging response: %v\n", err)
				return err
			}

			fmt.Println("✅ Tag removed successfully!")
			return nil
		},
	}
}

// responseExportCmd downloads a survey's responses as CSV.
func responseExportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a survey's responses as CSV",
		ArgsUsage: "[survey-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the CSV to a file instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("survey ID is required")
			}

			client := api.NewClient()
			data, err := client.ExportResponses(c.Args().First())
			if err != nil {
				fmt.Printf("Error exporting responses: %v\n", err)
				return err
			}

			if output := c.String("output"); output != "" {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("could not write %s: %w", output, err)
				}
				fmt.Printf("✅ Exported to %s\n", output)
				return nil
			}

			fmt.Print(string(data))
			return nil
		},
	}
}
