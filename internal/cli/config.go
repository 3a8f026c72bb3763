package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// projectConfigFiles is the search order for project config files
var projectConfigFiles = []string{"sentinel.toml"}

// ProjectConfig is the project-level TOML configuration
type ProjectConfig struct {
	Server  string `toml:"server"`
	ChainID int    `toml:"chain_id,omitempty"`
}

// GlobalConfig is the per-user configuration (stored in ~/.sentinel/config.yaml)
type GlobalConfig struct {
	Server string `yaml:"server"`
}

func createConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}

	cmd.AddCommand(createConfigInitCmd())
	cmd.AddCommand(createConfigShowCmd())

	return cmd
}

func createConfigInitCmd() *cobra.Command {
	var serverURL string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sentinel.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(serverURL, force)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "server URL to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func createConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}
}

func runConfigInit(serverURL string, force bool) error {
	path := projectConfigFiles[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(ProjectConfig{Server: serverURL}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow() error {
	fmt.Printf("server: %s\n", getServer())
	if cfg := loadProjectConfigSilent(); cfg != nil {
		fmt.Printf("project config: %+v\n", *cfg)
	} else {
		fmt.Println("project config: (none)")
	}
	if cfg := loadGlobalConfigSilent(); cfg != nil {
		fmt.Printf("global config: %+v\n", *cfg)
	} else {
		fmt.Println("global config: (none)")
	}
	return nil
}

// loadProjectConfigSilent loads the project TOML config, returning nil on
// any error (missing file is the common case).
func loadProjectConfigSilent() *ProjectConfig {
	candidates := projectConfigFiles
	if cfgFile != "" {
		candidates = []string{cfgFile}
	}

	for _, path := range candidates {
		var cfg ProjectConfig
		if _, err := toml.DecodeFile(path, &cfg); err == nil {
			return &cfg
		}
	}
	return nil
}

// loadGlobalConfigSilent loads ~/.sentinel/config.yaml, returning nil on any
// error.
func loadGlobalConfigSilent() *GlobalConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(home, ".sentinel", "config.yaml"))
	if err != nil {
		return nil
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil
	}
	return &cfg
}
