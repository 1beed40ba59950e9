// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shambalink/shambalink/internal/build"
)

// NewRootCommand enables all children commands to read flags from CLI flags,
// environment variables prefixed with SHAMBALINK, or config.yaml (in that
// order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("SHAMBALINK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/shambalink", "$HOME/.shambalink", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	return &cobra.Command{
		Use:     "shambalink",
		Short:   "An agricultural marketplace discovery and provenance service",
		Long:    `An agricultural marketplace discovery and provenance service: radius search over listings backed by a space-filling-curve index, and traceability reports that walk a product's chain back to the farm.`,
		Version: build.Version,
	}
}
