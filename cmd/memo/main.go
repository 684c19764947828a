package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"memo-go/internal/app"
	"memo-go/internal/config"
	"memo-go/internal/encryption"
	"memo-go/internal/memo"
	"memo-go/internal/timeline"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var cfgPath string

// configPath resolves the config file location: the --config flag when set,
// otherwise the environment/defaults.
func configPath() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	defaults, err := app.GetDefaults()
	if err != nil {
		return "", fmt.Errorf("getting defaults: %w", err)
	}
	return defaults["config_path"], nil
}

// loadConfig reads the resolved config file.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.ReadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates a MemoApp. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "add", "backup").
func newApp(operation string) (*app.MemoApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewMemoApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// contentFromArgs returns the memo content: the joined arguments, or stdin
// when no argument (or "-") is given.
func contentFromArgs(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// readPassphrase prompts without echo when stdin is a terminal, and falls
// back to a plain line read otherwise (pipes, scripts).
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var rootCmd = &cobra.Command{
	Use:   "memo",
	Short: "Note-taking with a shared store for the home-screen widget",
}

// add command
var addCmd = &cobra.Command{
	Use:   "add [CONTENT]",
	Short: "Add a memo",
	Long:  "Add a memo. The first line becomes the title. With no argument or \"-\", content is read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentFromArgs(args)
		if err != nil {
			return err
		}

		a, err := newApp("add")
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.Add(content)
		if err != nil {
			return err
		}

		fmt.Printf("Added %s: %s\n", m.ID, timeline.Title(m.Content))
		return nil
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent memos",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt64("limit")

		a, err := newApp("list")
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.Timeline(limit)
		if err != nil {
			return err
		}

		if view.TotalCount == 0 {
			fmt.Println("No memos.")
			return nil
		}

		fmt.Printf("Latest %s (%s), showing %d of %d\n", view.ElapsedLabel, view.Status, view.DisplayCount, view.TotalCount)
		for _, e := range view.Entries {
			fmt.Printf("%s  %-12s  %s\n", e.ID, e.ElapsedLabel, e.Title)
		}
		return nil
	},
}

// show command
var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a memo's full content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("show")
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n\n%s\n", m.ID, m.Timestamp.Format("2006-01-02 15:04:05"), m.Content)
		return nil
	},
}

// edit command
var editCmd = &cobra.Command{
	Use:   "edit ID [CONTENT]",
	Short: "Replace a memo's content",
	Long:  "Replace a memo's content entirely and reset its timestamp. With no content argument or \"-\", content is read from stdin.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentFromArgs(args[1:])
		if err != nil {
			return err
		}

		a, err := newApp("edit")
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.Update(args[0], content)
		if err != nil {
			return err
		}

		fmt.Printf("Updated %s: %s\n", m.ID, timeline.Title(m.Content))
		return nil
	},
}

// delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete memos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Delete(args...); err != nil {
			return err
		}

		fmt.Printf("Deleted %d memo(s)\n", len(args))
		return nil
	},
}

// drafts commands
var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage edits preserved from failed writes",
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List preserved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("drafts list")
		if err != nil {
			return err
		}
		defer a.Close()

		drafts, err := a.Drafts()
		if err != nil {
			return err
		}

		if len(drafts) == 0 {
			fmt.Println("No drafts.")
			return nil
		}

		for _, d := range drafts {
			target := "new memo"
			if d.MemoID != "" {
				target = "memo " + d.MemoID
			}
			fmt.Printf("%s  %s  %s: %s\n", d.ID, d.SavedAt.Format("2006-01-02 15:04:05"), target, timeline.Title(d.Content))
		}
		return nil
	},
}

var draftsRetryCmd = &cobra.Command{
	Use:   "retry [ID]",
	Short: "Replay preserved drafts against the store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("drafts retry")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			m, err := a.RetryDraft(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Replayed draft as memo %s\n", m.ID)
			return nil
		}

		n, err := a.RetryDrafts()
		if n > 0 {
			fmt.Printf("Replayed %d draft(s)\n", n)
		}
		return err
	},
}

var draftsDiscardCmd = &cobra.Command{
	Use:   "discard ID",
	Short: "Drop a preserved draft without replaying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("drafts discard")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DiscardDraft(args[0]); err != nil {
			return err
		}

		fmt.Printf("Discarded draft %s\n", args[0])
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the operation audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt64("limit")

		a, err := newApp("history")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			memoID := "-"
			if op.MemoID.Valid {
				memoID = op.MemoID.String
			}
			fmt.Printf("%s  %-7s  %-9s  %-36s  %s\n",
				op.CreatedAt.Format("2006-01-02 15:04:05"),
				op.Kind,
				op.Status,
				memoID,
				op.Detail,
			)
		}
		return nil
	},
}

// backup commands
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the store to the backup destinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		destName, _ := cmd.Flags().GetString("to")

		a, err := newApp("backup")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.Backup(destName)
		if err != nil {
			return err
		}

		fmt.Printf("Stored %d snapshot(s): %s\n", len(names), strings.Join(names, ", "))
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		destName, _ := cmd.Flags().GetString("to")

		a, err := newApp("backup list")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.Snapshots(destName)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No snapshots.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore DESTINATION SNAPSHOT",
	Short: "Replace the store with a snapshot",
	Long:  "Download a snapshot from a backup destination and replace the shared store file. Encrypted snapshots prompt for the private key passphrase.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		destName, snapshot := args[0], args[1]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		passphrase := ""
		if memo.EncryptedSnapshot(snapshot) {
			passphrase, err = readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
		}

		if err := app.Restore(cfg, destName, snapshot, passphrase); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		fmt.Printf("Restored store from %s\n", snapshot)
		return nil
	},
}

// config commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, _ := cmd.Flags().GetString("group")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}

		path, err := configPath()
		if err != nil {
			return err
		}

		cfg := config.NewConfig(groupID, defaults["base_dir"])
		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", path)
		fmt.Printf("Group ID: %s\n", groupID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Group ID:     %s\n", cfg.GroupID)
		fmt.Printf("Data Dir:     %s\n", cfg.DataDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Widget limit: %d\n", cfg.Widget.Limit)
		fmt.Printf("Drafts:       %s %s\n", cfg.Drafts.Type, cfg.Drafts.Dir)
		for _, b := range cfg.Backups {
			fmt.Printf("Backup:       %s (%s %s)\n", b.Name, b.Type, b.Dir)
		}
		return nil
	},
}

// keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the backup encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}
		if enc.IsConfigured() {
			return fmt.Errorf("key pair already exists at %s", cfg.Encryption.PublicKeyPath)
		}

		passphrase, err := readPassphrase("Passphrase for the private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("generating key pair: %w", err)
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: $MEMO_CONFIG_PATH or ~/.config/memo.toml)")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().String("group", "group.local.memo", "Shared group identifier for the store location")

	// drafts subcommands
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsRetryCmd)
	draftsCmd.AddCommand(draftsDiscardCmd)

	// backup subcommands
	backupCmd.AddCommand(backupListCmd)
	backupCmd.PersistentFlags().String("to", "", "Backup destination name (default: all, or the first for list)")

	// root commands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Int64P("limit", "n", int64(timeline.DefaultLimit), "Maximum number of memos to show")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int64P("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keygenCmd)
}
