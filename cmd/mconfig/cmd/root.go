/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/mconfig/pkg/codec"
	"github.com/ssargent/mconfig/pkg/config"
	"github.com/ssargent/mconfig/pkg/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mconfig",
	Short: "Obfuscated fixed-size key-value config files",
	Long: `mconfig reads and writes small key-value configuration files stored
in a single 8 KiB buffer, optionally obfuscated with a secret that is
prompted for interactively.

Examples:
  mconfig --file creds.mconf --list
  mconfig --file creds.mconf --key api_token
  mconfig --file creds.mconf --key api_token --value abc123
  mconfig --file creds.mconf --key api_token --remove`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("file", "f", "", "The file to open or create")
	rootCmd.Flags().BoolP("list", "l", false, "List the keys and values contained in the file")
	rootCmd.Flags().StringP("key", "k", "", "The key to retrieve or set")
	rootCmd.Flags().StringP("value", "v", "", "The value to set (optional)")
	rootCmd.Flags().BoolP("empty", "e", false, "Create the key with no value")
	rootCmd.Flags().BoolP("remove", "r", false, "Delete the key and its value, if any")

	rootCmd.MarkFlagsMutuallyExclusive("list", "key")
	rootCmd.MarkFlagsMutuallyExclusive("value", "empty", "remove")
}

// action is the single operation a command invocation performs.
type action int

const (
	actionNone action = iota
	actionList
	actionGet
	actionSet
	actionSetEmpty
	actionRemove
)

// options carries the resolved command line. hasKey and hasValue record
// whether the flags were set at all, since an empty string is a legal key
// or value.
type options struct {
	file     string
	list     bool
	key      string
	hasKey   bool
	value    string
	hasValue bool
	empty    bool
	remove   bool
}

func runRoot(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	opts := options{}
	opts.file, _ = flags.GetString("file")
	opts.list, _ = flags.GetBool("list")
	opts.key, _ = flags.GetString("key")
	opts.hasKey = flags.Changed("key")
	opts.value, _ = flags.GetString("value")
	opts.hasValue = flags.Changed("value")
	opts.empty, _ = flags.GetBool("empty")
	opts.remove, _ = flags.GetBool("remove")

	cfg := loadCLIConfig()
	if opts.file == "" {
		opts.file = cfg.DefaultFile
	}

	act, err := resolveAction(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	raw, found, err := readStoreFile(opts.file)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(out, "Loaded %d bytes from %s\n", len(raw), opts.file)
	} else if !cfg.CreateMissing {
		return fmt.Errorf("%s does not exist", opts.file)
	}

	// The secret is prompted before any load attempt.
	secret, err := readSecret(os.Stdin, out)
	if err != nil {
		return err
	}

	builder := store.NewBuilder().Secret(secret)
	if raw != nil {
		builder.Load(raw)
	}
	st, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to load mconfig data from %s: %w", opts.file, err)
	}
	fmt.Fprintf(out, "Loaded mconfig data with %d entries.\n", st.Len())

	dirty, err := applyAction(st, act, opts, out)
	if err != nil {
		return err
	}
	if dirty {
		if err := os.WriteFile(opts.file, st.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.file, err)
		}
		fmt.Fprintf(out, "Updated %s\n", opts.file)
	}

	return nil
}

// resolveAction maps the flag combination onto one action. Flag conflicts
// are enforced by cobra; only the requires-key relation is checked here.
func resolveAction(opts options) (action, error) {
	if opts.file == "" {
		return actionNone, errors.New("a file must be named with --file or default_file in the config")
	}
	if opts.list {
		return actionList, nil
	}
	if !opts.hasKey {
		if opts.hasValue || opts.empty || opts.remove {
			return actionNone, errors.New("--value, --empty and --remove require --key")
		}
		return actionNone, nil
	}

	switch {
	case opts.remove:
		return actionRemove, nil
	case opts.empty:
		return actionSetEmpty, nil
	case opts.hasValue:
		return actionSet, nil
	default:
		return actionGet, nil
	}
}

// applyAction runs the resolved action against the store and reports
// whether the store was mutated and must be rewritten.
func applyAction(st *store.Store, act action, opts options, out io.Writer) (bool, error) {
	switch act {
	case actionList:
		for it := st.Iter(); it.Next(); {
			fmt.Fprintf(out, "%s: %s\n", it.Key(), it.Value().Or("<empty>"))
		}

	case actionGet:
		if value, ok := st.Get(opts.key); ok {
			fmt.Fprintf(out, "%s: %s\n", opts.key, value.Or("<empty>"))
		} else {
			fmt.Fprintf(out, "%s not found.\n", opts.key)
		}

	case actionSet:
		prev, _, err := st.Insert(opts.key, codec.StringValue(opts.value))
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Added value %s to key %s. Previous value: %s\n", opts.value, opts.key, prev.Or("n/a"))
		return true, nil

	case actionSetEmpty:
		prev, _, err := st.Insert(opts.key, codec.Value{})
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Added empty %s. Previous value: %s\n", opts.key, prev.Or("n/a"))
		return true, nil

	case actionRemove:
		old, existed := st.Remove(opts.key)
		if !existed {
			fmt.Fprintf(out, "%s not found.\n", opts.key)
			return false, nil
		}
		fmt.Fprintf(out, "Removed %s with value %s\n", opts.key, old.Or("<empty>"))
		return true, nil
	}

	return false, nil
}

// readStoreFile reads the store file, distinguishing a missing file from a
// read failure.
func readStoreFile(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// loadCLIConfig reads the optional CLI config file; a missing or unreadable
// file just yields the defaults.
func loadCLIConfig() *config.Config {
	path := config.GetDefaultConfigPath()
	if !config.ConfigExists(path) {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring %s: %v\n", path, err)
		return config.DefaultConfig()
	}
	return cfg
}
