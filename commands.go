package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/liuran001/Web3Bio-Go/web3bio/client"
	"github.com/liuran001/Web3Bio-Go/web3bio/config"
	"github.com/liuran001/Web3Bio-Go/web3bio/logger"
	"github.com/liuran001/Web3Bio-Go/web3bio/media"
	"github.com/liuran001/Web3Bio-Go/web3bio/platform"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	RuntimeVer string `json:"runtime"`
	BinVersion string `json:"version"`
	CommitSHA  string `json:"commit"`
	BuildTime  string `json:"built"`
	BuildArch  string `json:"arch"`
}

// app holds what the commands share once flags are parsed.
type app struct {
	cfgFile   string
	apiKey    string
	universal bool

	log    *logger.Logger
	client *client.Client
}

func newRootCmd(info buildInfo) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "web3bio",
		Short:        "Query web3.bio profiles, name services and domains",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to configuration file (ini, yaml, json, toml)")
	flags.StringVar(&a.apiKey, "api-key", "", "API key (overrides environment and config)")
	flags.String("endpoint", "", "API base URL override")
	flags.String("environment", "production", "API environment (production, staging)")
	flags.String("cache", "memory", "Response cache backend (memory, sqlite, none)")
	flags.Duration("timeout", 15*time.Second, "Request timeout")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		a.lookupCmd("profile", "Fetch profiles; several identities are sent as one batch", true),
		a.lookupCmd("ns", "Fetch name service records; several identities are sent as one batch", true),
		a.lookupCmd("domain", "Fetch domain records", false),
		a.lookupCmd("credential", "Fetch human, risk and spam credentials", false),
		resolveCmd(),
		platformsCmd(),
		a.avatarCmd(),
		versionCmd(info),
	)
	return rootCmd
}

var flagKeys = map[string]string{
	"endpoint":    "Endpoint",
	"environment": "Environment",
	"cache":       "CacheBackend",
	"timeout":     "Timeout",
	"log-level":   "LogLevel",
}

func (a *app) init(cmd *cobra.Command) error {
	if !needsClient(cmd) {
		return nil
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	for flag, key := range flagKeys {
		if err := cfg.Viper().BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	a.log = logger.New(settings.LogLevel, settings.LogFormat, settings.LogSource)

	c, err := client.NewFromConfig(cfg, a.log)
	if err != nil {
		return err
	}
	a.client = c
	return nil
}

func (a *app) close() error {
	if a.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := a.client.Close(ctx)
	a.client = nil
	return err
}

func (a *app) queryOptions() []client.QueryOption {
	if a.apiKey == "" {
		return nil
	}
	return []client.QueryOption{client.WithAPIKey(a.apiKey)}
}

func needsClient(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "profile", "ns", "domain", "credential", "avatar":
		return true
	}
	return false
}

func (a *app) lookupCmd(endpoint, short string, batch bool) *cobra.Command {
	args := cobra.ExactArgs(1)
	use := endpoint + " <identity>"
	if batch {
		args = cobra.MinimumNArgs(1)
		use = endpoint + " <identity>..."
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.lookup(cmd.Context(), endpoint, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	if batch {
		cmd.Flags().BoolVarP(&a.universal, "universal", "u", false, "Let the server infer the platform and return every match")
	}
	return cmd
}

func (a *app) lookup(ctx context.Context, endpoint string, args []string) (any, error) {
	opts := a.queryOptions()
	c := a.client

	switch {
	case endpoint == "domain":
		return c.Domain(ctx, args[0], opts...)
	case endpoint == "credential":
		return c.Credential(ctx, args[0], opts...)
	case len(args) > 1 && endpoint == "profile":
		return c.BatchProfile(ctx, args, opts...)
	case len(args) > 1:
		return c.BatchNS(ctx, args, opts...)
	case a.universal && endpoint == "profile":
		return c.UniversalProfile(ctx, args[0], opts...)
	case a.universal:
		return c.UniversalNS(ctx, args[0], opts...)
	case endpoint == "profile":
		return c.Profile(ctx, args[0], opts...)
	default:
		return c.NS(ctx, args[0], opts...)
	}
}

type resolved struct {
	Input    string `json:"input"`
	Valid    bool   `json:"valid"`
	Platform string `json:"platform,omitempty"`
	ID       string `json:"identity,omitempty"`
	Rule     string `json:"rule,omitempty"`
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <identity>...",
		Short: "Normalize identities locally without calling the API",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]resolved, 0, len(args))
			for _, input := range args {
				r := resolved{Input: input}
				if id, ok := platform.Resolve(input); ok {
					r.Valid = true
					r.Platform = string(id.Platform)
					r.ID = id.ID
				}
				_, r.Rule = platform.ClassifyRule(input)
				out = append(out, r)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func platformsCmd() *cobra.Command {
	var supportedOnly bool
	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "List known platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []platform.Meta
			for _, p := range platform.All() {
				meta, _ := platform.Lookup(p)
				if supportedOnly && !meta.Queryable {
					continue
				}
				out = append(out, meta)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&supportedOnly, "supported", false, "Only list platforms the API can query")
	return cmd
}

func (a *app) avatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <source>",
		Short: "Resolve an avatar reference (ipfs, ar, eip155 asset) to an HTTPS URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := media.NewResolver(a.client, a.client.MetadataURL(), a.log)
			url, err := resolver.ResolveEIPAsset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}
}

func versionCmd(info buildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
