package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "openddl",
	Short: "OpenDDL parser and validator",
	Long: `openddl parses Open Data Description Language files, resolves their
references and checks them against a grammar: the built-in OpenGEX profile
or a YAML schema.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.Bool("debug", false, "Debug output")
	flags.String("log-format", "text", "Log format on stderr (text or json)")
	flags.String("color", "auto", "Colorize output (auto, always or never)")
	flags.StringP("profile", "p", "", "Built-in grammar profile (opengex)")
	flags.StringP("schema", "s", "", "YAML schema file describing the grammar")
	flags.StringSlice("structures", nil, "Structure keywords when no profile or schema is given")
	flags.StringSlice("properties", nil, "Property keywords when no profile or schema is given")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("color", flags.Lookup("color"))
	_ = viper.BindPFlag("profile", flags.Lookup("profile"))
	_ = viper.BindPFlag("schema", flags.Lookup("schema"))
	_ = viper.BindPFlag("structures", flags.Lookup("structures"))
	_ = viper.BindPFlag("properties", flags.Lookup("properties"))
}

func initConfig() {
	viper.SetEnvPrefix("OPENDDL")
	viper.AutomaticEnv()
}
