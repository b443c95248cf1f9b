package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/furlong/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "furlong",
	Short: "Dimensional analysis and unit conversion",
	Long: "Furlong converts quantities between units and systems of measurement, " +
		"checks dimensional consistency of arithmetic, and validates unit catalogs.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.New().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .furlong.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "unit catalog file (toml, yaml or json; default built-in)")
	rootCmd.PersistentFlags().IntP("precision", "p", 2, "decimal places in printed results")
	rootCmd.PersistentFlags().String("locale", "", "BCP 47 locale for number formatting, e.g. de-CH")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".furlong")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("FURLONG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for _, name := range []string{"catalog", "precision", "locale", "verbose"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	_ = viper.BindPFlag("watch.events", watchCmd.Flags().Lookup("events"))

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
