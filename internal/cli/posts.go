package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all blog posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := client.ListPosts(cmd.Context())
		if err != nil {
			return err
		}
		appLogger.Debug("listed posts", slog.Int("count", len(posts)))
		return printJSON(cmd, posts)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := client.GetPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, post)
	},
}

var createFlags struct {
	title     string
	content   string
	firstName string
	lastName  string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a blog post",
	Long:  `Create a blog post. All four flags are required; the server rejects blank values.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := client.CreatePost(cmd.Context(), blog.CreatePostRequest{
			Title:   createFlags.title,
			Content: createFlags.content,
			Author: blog.AuthorRequest{
				FirstName: createFlags.firstName,
				LastName:  createFlags.lastName,
			},
		})
		if err != nil {
			return err
		}
		appLogger.Info("created post", slog.String("id", post.ID))
		return printJSON(cmd, post)
	},
}

var updateFlags struct {
	title     string
	content   string
	firstName string
	lastName  string
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a blog post",
	Long:  `Update the title, content or author of a blog post. Only the flags that are set are sent.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := blog.UpdatePostRequest{}
		flags := cmd.Flags()

		if flags.Changed("title") {
			req.Title = &updateFlags.title
		}
		if flags.Changed("content") {
			req.Content = &updateFlags.content
		}
		if flags.Changed("first-name") || flags.Changed("last-name") {
			req.Author = &blog.UpdateAuthorRequest{}
			if flags.Changed("first-name") {
				req.Author.FirstName = &updateFlags.firstName
			}
			if flags.Changed("last-name") {
				req.Author.LastName = &updateFlags.lastName
			}
		}
		if req.Title == nil && req.Content == nil && req.Author == nil {
			return fmt.Errorf("nothing to update: set at least one of --title, --content, --first-name, --last-name")
		}

		if err := client.UpdatePost(cmd.Context(), args[0], req); err != nil {
			return err
		}
		appLogger.Info("updated post", slog.String("id", args[0]))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeletePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		appLogger.Info("deleted post", slog.String("id", args[0]))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createFlags.title, "title", "", "post title")
	createCmd.Flags().StringVar(&createFlags.content, "content", "", "post content")
	createCmd.Flags().StringVar(&createFlags.firstName, "first-name", "", "author first name")
	createCmd.Flags().StringVar(&createFlags.lastName, "last-name", "", "author last name")
	for _, name := range []string{"title", "content", "first-name", "last-name"} {
		_ = createCmd.MarkFlagRequired(name)
	}

	updateCmd.Flags().StringVar(&updateFlags.title, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateFlags.content, "content", "", "new content")
	updateCmd.Flags().StringVar(&updateFlags.firstName, "first-name", "", "new author first name")
	updateCmd.Flags().StringVar(&updateFlags.lastName, "last-name", "", "new author last name")
}
