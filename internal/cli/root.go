// Package cli implements docrepoctl, a command-line client for the docrepo HTTP API.
package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docrepo/internal/transport/httpclient"
	"github.com/kailas-cloud/docrepo/internal/version"
)

const defaultServer = "http://localhost:8080"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	server  string
	apiKey  string
	timeout time.Duration
	json    bool
}

func (o *globalOptions) client() *httpclient.Client {
	c := httpclient.New(o.server, o.apiKey)
	if o.timeout > 0 {
		c = c.WithHTTPClient(&http.Client{Timeout: o.timeout})
	}
	return c
}

// NewRootCommand builds the docrepoctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "docrepoctl",
		Short: "Command-line client for a docrepo server",
		Long: `docrepoctl saves, fetches, searches and deletes documents on a running
docrepo server. The server URL and API key default to $DOCREPO_URL and
$DOCREPO_API_KEY.`,
		SilenceUsage: true,
	}

	server := os.Getenv("DOCREPO_URL")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "docrepo server base URL")
	root.PersistentFlags().StringVar(&opts.apiKey, "api-key", os.Getenv("DOCREPO_API_KEY"), "bearer token")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (default 10s)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "output JSON")

	root.AddCommand(
		newSaveCommand(opts),
		newGetCommand(opts),
		newSearchCommand(opts),
		newDeleteCommand(opts),
		newHealthCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("docrepoctl version %s (%s)\n", version.Version, version.Commit)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
