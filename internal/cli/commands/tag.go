package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ranayash24/formbricks/internal/api"
	"github.com/urfave/cli/v2"
)

// NewTagCommand creates all subcommands for the 'tag' command group.
func NewTagCommand() *cli.Command {
	return &cli.Command{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Manage tags",
		Subcommands: []*cli.Command{
			tagListCmd(),
			tagCreateCmd(),
			tagRenameCmd(),
			tagDeleteCmd(),
			tagMergeCmd(),
		},
	}
}

// tagListCmd lists all tags of the environment.
func tagListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all tags",
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			tags, err := client.ListTags()
			if err != nil {
				fmt.Printf("Error listing tags: %v\n", err)
				return err
			}

			if len(tags) == 0 {
				fmt.Println("No tags found. Use 'formbricks tag create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			fmt.Fprintln(w, "--\t----")
			for _, t := range tags {
				fmt.Fprintf(w, "%s\t%s\n", t.ID.String()[:8], t.Name)
			}
			w.Flush()
			return nil
		},
	}
}

// tagCreateCmd creates a new tag.
func tagCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new tag",
		ArgsUsage: "[name]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag name is required")
			}
			name := c.Args().First()

			client := api.NewClient()
			tag, err := client.CreateTag(name)
			if err != nil {
				fmt.Printf("Error creating tag: %v\n", err)
				return err
			}

			fmt.Printf("✅ Tag '%s' created successfully!\n", tag.Name)
			fmt.Printf("ID: %s\n", tag.ID.String())
			return nil
		},
	}
}

// tagRenameCmd renames a tag.
func tagRenameCmd() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a tag",
		ArgsUsage: "[tag-id] [new-name]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("tag ID and new name are required")
			}

			client := api.NewClient()
			tag, err := client.RenameTag(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				fmt.Printf("Error renaming tag: %v\n", err)
				return err
			}

			fmt.Printf("✅ Tag renamed to '%s'\n", tag.Name)
			return nil
		},
	}
}

// tagDeleteCmd deletes a tag.
func tagDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a tag",
		ArgsUsage: "[tag-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag ID is required")
			}

			client := api.NewClient()
			if err := client.DeleteTag(c.Args().First()); err != nil {
				fmt.Printf("Error deleting tag: %v\n", err)
				return err
			}

			fmt.Println("✅ Tag deleted successfully!")
			return nil
		},
	}
}

// tagMergeCmd merges a source tag into a destination tag.
func tagMergeCmd() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Merge a tag into another, moving all response associations",
		ArgsUsage: "[source-tag-id] [destination-tag-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("source and destination tag IDs are required")
			}
			sourceID := c.Args().Get(0)
			destinationID := c.Args().Get(1)

			if !c.Bool("yes") {
				var confirmed bool
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Merge tag %s into %s? The source tag will be deleted.",
						sourceID, destinationID),
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Merge cancelled.")
					return nil
				}
			}

			client := api.NewClient()
			tag, err := client.MergeTags(sourceID, destinationID)
			if err != nil {
				fmt.Printf("Error merging tags: %v\n", err)
				return err
			}

			fmt.Printf("✅ Tags merged into '%s'\n", tag.Name)
			return nil
		},
	}
}
