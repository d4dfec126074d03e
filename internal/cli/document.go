package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	chiTransport "github.com/kailas-cloud/docrepo/internal/transport/chi"
)

type saveOptions struct {
	id          string
	title       string
	content     string
	contentFile string
	authorID    string
	authorName  string
}

func newSaveCommand(g *globalOptions) *cobra.Command {
	o := &saveOptions{}
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or replace a document",
		Long: `Saves a document. Without --id the server assigns one. Saving an existing
ID replaces title, content and author but keeps the original created time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSave(cmd, g, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.id, "id", "", "document ID (optional)")
	f.StringVarP(&o.title, "title", "t", "", "document title")
	f.StringVarP(&o.content, "content", "c", "", "document content")
	f.StringVarP(&o.contentFile, "content-file", "f", "", "read content from file (- for stdin)")
	f.StringVar(&o.authorID, "author-id", "", "author ID")
	f.StringVar(&o.authorName, "author-name", "", "author display name")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author-id")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func runSave(cmd *cobra.Command, g *globalOptions, o *saveOptions) error {
	content := o.content
	if o.contentFile != "" {
		data, err := readContent(cmd, o.contentFile)
		if err != nil {
			return err
		}
		content = string(data)
	}

	doc, created, err := g.client().Save(cmd.Context(), chiTransport.DocumentRequest{
		ID:      o.id,
		Title:   o.title,
		Content: content,
		Author:  chiTransport.AuthorJSON{ID: o.authorID, Name: o.authorName},
	})
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	if g.json {
		return printJSON(cmd, doc)
	}
	verb := "Updated"
	if created {
		verb = "Created"
	}
	cmd.Printf("%s %s (created %s)\n", verb, doc.ID, doc.Created.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}

func readContent(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return data, nil
}

func newGetCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, ok, err := g.client().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get failed: %w", err)
			}
			if !ok {
				return fmt.Errorf("document %q not found", args[0])
			}
			if g.json {
				return printJSON(cmd, doc)
			}
			printDocument(cmd, doc)
			return nil
		},
	}
}

func newDeleteCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.client().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
			cmd.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newHealthCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := g.client().Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if g.json {
				if err := printJSON(cmd, h); err != nil {
					return err
				}
			} else {
				cmd.Printf("Status:    %s\n", h.Status)
				cmd.Printf("Documents: %d\n", h.Documents)
				for name, res := range h.Checks {
					cmd.Printf("  %s: %s\n", name, res)
				}
			}
			if h.Status != "ok" {
				return errors.New("server is degraded")
			}
			return nil
		},
	}
}

func printDocument(cmd *cobra.Command, doc chiTransport.DocumentResponse) {
	cmd.Printf("ID:      %s\n", doc.ID)
	cmd.Printf("Title:   %s\n", doc.Title)
	cmd.Printf("Author:  %s", doc.Author.ID)
	if doc.Author.Name != "" {
		cmd.Printf(" (%s)", doc.Author.Name)
	}
	cmd.Println()
	cmd.Printf("Created: %s\n", doc.Created.Format("2006-01-02T15:04:05Z07:00"))
	if doc.Content != "" {
		cmd.Println()
		cmd.Println(doc.Content)
	}
}
