package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agendalink/internal/config"
	"github.com/aidanlsb/agendalink/internal/ui"
)

type configContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

func loadConfigContextAllowMissing() (*configContext, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	path := config.ResolveConfigPath(configPath)

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !os.IsNotExist(statErr) {
		return nil, statErr
	}

	loaded := &config.Config{}
	if exists {
		var err error
		loaded, err = config.LoadFrom(path)
		if err != nil {
			return nil, err
		}
	}

	return &configContext{cfg: loaded, configPath: path, configExists: exists}, nil
}

// configData describes the file values and the settings they resolve to after
// environment overrides.
func configData(ctx *configContext) map[string]interface{} {
	data := map[string]interface{}{
		"config_path": ctx.configPath,
		"exists":      ctx.configExists,
		"agenda": map[string]interface{}{
			"date_format":         ctx.cfg.Agenda.DateFormat,
			"replacement_char":    ctx.cfg.Agenda.ReplacementChar,
			"max_filename_length": ctx.cfg.Agenda.MaxFilenameLength,
			"user_name":           ctx.cfg.Agenda.UserName,
		},
		"notes": map[string]interface{}{
			"dir":    ctx.cfg.Notes.Dir,
			"create": ctx.cfg.Notes.Create,
		},
		"logging": map[string]interface{}{
			"level":  ctx.cfg.Logging.Level,
			"format": ctx.cfg.Logging.Format,
		},
		"ui": map[string]interface{}{
			"accent": ctx.cfg.UI.Accent,
		},
	}

	effective := *ctx.cfg
	if err := effective.ApplyEnv(os.LookupEnv); err != nil {
		data["effective_error"] = err.Error()
		return data
	}
	s, err := effective.Settings()
	if err != nil {
		data["effective_error"] = err.Error()
		return data
	}
	data["effective"] = map[string]interface{}{
		"date_format":         string(s.DateFormat),
		"replacement_char":    s.ReplacementChar,
		"max_filename_length": s.MaxFilenameLength,
		"user_name":           s.UserName,
	}
	return data
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	fmt.Printf("config: %s\n", ctx.configPath)
	if !ctx.configExists {
		fmt.Println(ui.Hint("(not created yet; run 'agendalink config init')"))
	}

	effective := *ctx.cfg
	if err := effective.ApplyEnv(os.LookupEnv); err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	s, err := effective.Settings()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Run 'agendalink config set <key> <value>' to fix it")
	}

	user := s.UserName
	if user == "" {
		user = ui.Hint("(unset: one-on-one normalization off)")
	}
	fmt.Printf("agenda.date_format: %s\n", s.DateFormat)
	fmt.Printf("agenda.replacement_char: %q\n", s.ReplacementChar)
	fmt.Printf("agenda.max_filename_length: %d\n", s.MaxFilenameLength)
	fmt.Printf("agenda.user_name: %s\n", user)
	if v := strings.TrimSpace(effective.Notes.Dir); v != "" {
		fmt.Printf("notes.dir: %s\n", v)
	}
	fmt.Printf("notes.create: %t\n", effective.Notes.Create)
	if v := strings.TrimSpace(effective.Logging.Level); v != "" {
		fmt.Printf("logging.level: %s\n", v)
	}
	if v := strings.TrimSpace(effective.Logging.Format); v != "" {
		fmt.Printf("logging.format: %s\n", v)
	}
	if v := strings.TrimSpace(effective.UI.Accent); v != "" {
		fmt.Printf("ui.accent: %s\n", v)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage agendalink config.toml settings",
	Long: `Manage agendalink config.toml settings.

Values in the file can be overridden with AGENDALINK_* environment variables
(also read from a .env file in the current directory) and with command flags.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"config_path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.ResolveConfigPath(configPath)

		created, err := config.CreateDefault(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": targetPath,
				"created":     created,
			}, nil)
			return nil
		}

		if created {
			fmt.Println(ui.Successf("Created config: %s", ui.FilePath(targetPath)))
		} else {
			fmt.Println(ui.Infof("Config already exists: %s", ui.FilePath(targetPath)))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config.toml value",
	Long:  "Set a config.toml value. Keys: " + strings.Join(config.Keys(), ", ") + ".",
	Example: `  agendalink config set agenda.user_name Shawn
  agendalink config set agenda.date_format YYYYMMDD`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		key := strings.ToLower(strings.TrimSpace(args[0]))
		if err := ctx.cfg.Set(key, args[1]); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		return saveConfigChange(ctx, key, "changed")
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Clear a config.toml value so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.configExists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.configPath), "Run 'agendalink config init' first")
		}

		key := strings.ToLower(strings.TrimSpace(args[0]))
		if err := ctx.cfg.Unset(key); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		return saveConfigChange(ctx, key, "cleared")
	},
}

func saveConfigChange(ctx *configContext, key, verb string) error {
	if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	ctx.configExists = true

	if isJSONOutput() {
		data := configData(ctx)
		data[verb] = []string{key}
		outputSuccess(data, nil)
		return nil
	}

	fmt.Println(ui.Successf("Updated config: %s", ui.FilePath(ctx.configPath)))
	fmt.Printf("%s: %s\n", verb, key)
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current config values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	rootCmd.AddCommand(configCmd)
}
