package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quickmap-go/quickmap/internal/server"
	"github.com/quickmap-go/quickmap/internal/service"
)

// Options defines all CLI flags and env vars for the quickmap server.
// Flags: --host, --port, --data-dir, --web-dir
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_WEB_DIR
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8087"`
	DataDir string `doc:"Directory for map data files" default:".data"`
	WebDir  string `doc:"Path to web/ directory" default:"web"`
}

func newServer(opts *Options) *server.Server {
	return server.New(server.Config{
		Host:    opts.Host,
		Port:    fmt.Sprintf("%d", opts.Port),
		DataDir: opts.DataDir,
		WebDir:  opts.WebDir,
	})
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		srv := newServer(opts)

		hooks.OnStart(func() {
			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("quickmap API server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Data:    %s\n", opts.DataDir)
			fmt.Println()
			fmt.Printf("  Editor:  %s/editor\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			if err := http.ListenAndServe(addr, srv); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		})
	})

	cli.Root().Use = "quickmap"
	cli.Root().Short = "Compose GeoJSON sources into Leaflet map pages"
	cli.Root().Version = "0.1.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv := newServer(opts)
			spec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			var err error
			if useYAML {
				output, err = yaml.Marshal(spec)
			} else {
				output, err = json.MarshalIndent(spec, "", "  ")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(output))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// render subcommand: render a YAML map config to HTML without the server
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a map configuration file to a Leaflet HTML page",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				fmt.Fprintln(os.Stderr, "Error: --config is required")
				os.Exit(1)
			}

			data, err := os.ReadFile(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
				os.Exit(1)
			}
			var cfg service.MapConfig
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
				os.Exit(1)
			}

			sources := service.NewSourceService(opts.DataDir)
			renders := service.NewRenderService(opts.DataDir, sources)
			file, err := renders.Render(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error rendering map: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Rendered %s\n", file)
		}),
	}
	renderCmd.Flags().StringP("config", "c", "", "Path to a YAML map configuration")
	cli.Root().AddCommand(renderCmd)

	cli.Run()
}
