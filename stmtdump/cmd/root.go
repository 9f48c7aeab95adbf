// Copyright 2024 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the commands of the stmtdump utility.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd returns the stmtdump command, with all of its subcommands.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "stmtdump",
		Short:        "stmtdump is a utility for inspecting the declared and effective statements of YANG modules",
		SilenceUsage: true,
	}

	cfgFile := rootCmd.PersistentFlags().String("config_file", "", "Path to config file.")
	rootCmd.PersistentFlags().String("yang_version", "", "YANG version used to build modules, 1 or 1.1. Detected from each module if unset.")
	rootCmd.PersistentFlags().Int("workers", 0, "Maximum number of statements built concurrently. Defaults to GOMAXPROCS.")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		return nil
	}

	rootCmd.AddCommand(newDeclaredCmd())
	rootCmd.AddCommand(newEffectiveCmd())
	rootCmd.AddCommand(newPathsCmd())
	rootCmd.AddCommand(newModelDataCmd())
	return rootCmd
}

// Execute runs the stmtdump command, exiting on error.
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
