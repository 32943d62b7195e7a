// Package cmd wires the hook entry points and inspection commands around
// one session per invocation.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/boudekerk/githooks/internal/contract"
	"github.com/boudekerk/githooks/internal/errsink"
	"github.com/boudekerk/githooks/internal/groups"
	"github.com/boudekerk/githooks/internal/policy"
	"github.com/boudekerk/githooks/internal/refs"
	"github.com/boudekerk/githooks/internal/repoconfig"
	"github.com/boudekerk/githooks/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file,
// env, flags). Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// Per-invocation state built by sharedSetup. One CLI invocation is one
// session; everything here dies with the process.
var (
	sess     *session.Session
	tracker  *refs.Tracker
	sink     = errsink.New()
	registry = policy.NewRegistry()
)

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "githooks",
	Short:              "Session-scoped runtime for Git server-side hooks.",
	Long:               `githooks resolves which refs a push touched, turns them into precise commit ranges, and gives policy checks a memoized view of the repository for the lifetime of one hook invocation.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if sess == nil {
			return nil
		}
		return sess.Close()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".githooks") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	viper.SetEnvPrefix("GITHOOKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("repo", "")
	viper.SetDefault("groups", "")
	viper.SetDefault("color", contract.DefaultColor)
	viper.SetDefault("width", 0)
}

// sharedSetup unmarshals config, runs validation and constructs the
// session every repository-facing command works against.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. The repository path is not a positional arg (hooks pass refs and
	// ids there), so it comes from the flag/env value directly.
	input.RepoPathStr = viper.GetString("repo")

	// 4. Run all validation and complex parsing.
	client := contract.NewLocalGitClient()
	if err := contract.ProcessAndValidate(ctx, cfg, client, input); err != nil {
		return err
	}

	// 5. Construct the session state.
	sess = session.New(cfg.RepoPath, client)
	tracker = refs.NewTracker(sess)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// buildPolicyEnv assembles the environment checks consult: the repository
// config and the group resolver, both loaded once for the session. Group
// specs come from the --groups flag plus every hooks.group-file value in
// the repository configuration, in that order.
func buildPolicyEnv(ctx context.Context) (*policy.Env, error) {
	store, err := repoconfig.Load(ctx, sess)
	if err != nil {
		return nil, err
	}

	resolver := groups.NewResolver()
	paths := append([]string{}, cfg.GroupFiles...)
	paths = append(paths, store.GetAll("hooks", "group-file")...)
	for _, path := range paths {
		if err := resolver.LoadFile(path); err != nil {
			return nil, err
		}
	}

	return &policy.Env{
		Sess:   sess,
		Config: store,
		Groups: resolver,
		Sink:   sink,
	}, nil
}

// Registry exposes the check registration surface to hook consumers that
// link this package.
func Registry() *policy.Registry {
	return registry
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .githooks.yaml)")
	rootCmd.PersistentFlags().String("repo", "", "repository path (default: discovered from the working directory)")
	rootCmd.PersistentFlags().String("groups", "", "comma-separated group spec files")
	rootCmd.PersistentFlags().String("color", contract.DefaultColor, "color mode: auto, always, never")
	rootCmd.PersistentFlags().Int("width", 0, "terminal width override (0 = auto-detect)")
	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(preReceiveCmd)
	rootCmd.AddCommand(postReceiveCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)
}
