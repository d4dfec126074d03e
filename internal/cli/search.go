package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	chiTransport "github.com/kailas-cloud/docrepo/internal/transport/chi"
)

type searchOptions struct {
	titlePrefixes []string
	contains      []string
	authorIDs     []string
	from          string
	to            string
}

func newSearchCommand(g *globalOptions) *cobra.Command {
	o := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search documents",
		Long: `Lists documents matching every given filter. Repeating a flag matches any
of its values; omitted filters match everything. Time bounds are inclusive
RFC 3339 timestamps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, g, o)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&o.titlePrefixes, "title-prefix", nil, "title starts with (repeatable)")
	f.StringArrayVar(&o.contains, "contains", nil, "content contains (repeatable)")
	f.StringArrayVar(&o.authorIDs, "author", nil, "author ID (repeatable)")
	f.StringVar(&o.from, "from", "", "created at or after (RFC 3339)")
	f.StringVar(&o.to, "to", "", "created at or before (RFC 3339)")
	return cmd
}

func runSearch(cmd *cobra.Command, g *globalOptions, o *searchOptions) error {
	req := chiTransport.SearchRequest{
		TitlePrefixes:    o.titlePrefixes,
		ContainsContents: o.contains,
		AuthorIDs:        o.authorIDs,
	}
	var err error
	if req.CreatedFrom, err = parseBound("from", o.from); err != nil {
		return err
	}
	if req.CreatedTo, err = parseBound("to", o.to); err != nil {
		return err
	}

	resp, err := g.client().Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if g.json {
		return printJSON(cmd, resp)
	}
	if resp.Total == 0 {
		cmd.Println("No results found.")
		return nil
	}
	cmd.Printf("Results (%d):\n", resp.Total)
	for i, d := range resp.Items {
		cmd.Printf("  [%d] %s  %s  by %s  %s\n", i+1, d.ID, d.Title, d.Author.ID,
			d.Created.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

func parseBound(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &t, nil
}
