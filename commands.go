package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"threatplane/buildcfg"
	"threatplane/config"
	"threatplane/theme"
)

var descriptorFormat string

func addCommands(root *cobra.Command) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate a default configuration file",
		Long:  "Generate a default threatplane.config file in the config directory (or current directory if not specified).",
		RunE:  runConfigGenerate,
	})

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect the dashboard theme",
	}
	themeCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every token as a color swatch",
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, _, err := loadTheme(cmd)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), theme.RenderSwatches(reg))
				return err
			},
		},
		&cobra.Command{
			Use:   "css",
			Short: "Print the custom-property stylesheet",
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, _, err := loadTheme(cmd)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), reg.CSS())
				return err
			},
		},
	)

	descriptorCmd := &cobra.Command{
		Use:   "descriptor",
		Short: "Emit the bundler descriptor",
		Long:  "Emit the build descriptor as JSON or YAML for the bundler, or the SCSS variable preamble.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := loadTheme(cmd)
			if err != nil {
				return err
			}
			return describer(cfg)(reg).Encode(cmd.OutOrStdout(), descriptorFormat)
		},
	}
	descriptorCmd.Flags().StringVarP(&descriptorFormat, "format", "f", buildcfg.FormatJSON, "Output format: json, yaml or scss")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the theme and build descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := loadTheme(cmd)
			if err != nil {
				return err
			}
			if err := describer(cfg)(reg).Validate(); err != nil {
				return fmt.Errorf("build descriptor: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	root.AddCommand(configCmd, themeCmd, descriptorCmd, validateCmd)
}

func loadTheme(cmd *cobra.Command) (*theme.Registry, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}
	store, err := theme.NewStore(cfg.Resolve(cfg.ThemeFile), nil)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("theme: %w", err)
	}
	return store.Current(), cfg, nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dirAbs, err := filepath.Abs(configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg := config.Default()
	cfg.ConfigDir = dirAbs

	cfgPath := filepath.Join(dirAbs, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
	return nil
}
