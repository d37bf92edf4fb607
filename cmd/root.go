/*
Package cmd implements the rawforge command line interface.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tacusci/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rawforge",
	Short: "Decodes camera raw images into viewable pixmaps and tagged images.",
	Long: `rawforge walks a camera raw file's container, identifies the camera,
decodes the sensor payload, demosaics it, and writes a finished PNM or
TIFF image.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := initialiseConfig(cmd); err != nil {
			return fmt.Errorf("failed to initialise configuration: %w", err)
		}
		if viper.GetBool("verbose") {
			logging.SetLevel(logging.DebugLevel)
		} else {
			logging.SetLevel(logging.InfoLevel)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rawforge/config)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose diagnostic output")

	rootCmd.AddCommand(newDecodeCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newIdentifyCommand())
	rootCmd.AddCommand(newPreviewCommand())
}

func initialiseConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("RAWFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home + "/.rawforge")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return viper.BindPFlags(cmd.Flags())
}
