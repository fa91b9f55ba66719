package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"

	"github.com/lixenwraith/orrery/config"
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Scroll-driven timeline orrery",
	Long: "Orrery scrubs a bounded timeline with the mouse wheel and renders entities fading in and out, " +
		"orbiting bodies, libration points and transient skirmish traces in the terminal.",
	SilenceUsage: true,
	RunE:         runView,
}

// Execute runs the root command and exits through atexit so recorders flush
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .orrery.toml)")
	flags.String("env-file", ".env", "dotenv file loaded before ORRERY_* variables are read")
	flags.String("dataset", "", "dataset TOML file (default built-in)")
	flags.Bool("watch", false, "reload the dataset file when it changes")
	flags.Uint64("seed", 0, "event scheduler seed (0 seeds randomly)")
	flags.String("record", "", "record frames to this SQLite file")
	flags.Int("monitor", 0, "serve the HTTP monitor on this port")
	flags.Bool("open", false, "open the monitor in a browser")

	viper.BindPFlag("dataset.path", flags.Lookup("dataset"))
	viper.BindPFlag("dataset.watch", flags.Lookup("watch"))
	viper.BindPFlag("events.seed", flags.Lookup("seed"))
	viper.BindPFlag("recording.path", flags.Lookup("record"))
	viper.BindPFlag("monitor.port", flags.Lookup("monitor"))
	viper.BindPFlag("monitor.open", flags.Lookup("open"))
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		log.Printf("Dotenv skipped: %v", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".orrery")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	configErr = readConfig(cfgFile != "")
}

// configErr holds the config file failure reported by the next loadConfig
var configErr error

// readConfig loads the selected config file
// A missing default file falls back to defaults; an explicit file must load
func readConfig(explicit bool) error {
	err := viper.ReadInConfig()
	if err == nil {
		log.Printf("Config loaded from %s", viper.ConfigFileUsed())
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
}

// loadConfig resolves the effective configuration for a subcommand
func loadConfig() (config.Config, error) {
	if configErr != nil {
		return config.Config{}, configErr
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
