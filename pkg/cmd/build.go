// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/ca-jiezhang/btcc/pkg/preprocessor"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] script_file [NAME=VALUE...]",
	Short: "expand an extended bt script into plain bpftrace syntax.",
	Long: `Expand all %define constants and %macro calls in a given script, writing the
	 resulting plain bpftrace script to the output file.  Trailing NAME=VALUE
	 arguments pre-define additional constants.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		output := GetString(cmd, "output")
		//
		config := preprocessor.Config{
			MaxDepth: GetUint(cmd, "max-depth"),
			Defines:  args[1:],
		}
		// Read the script
		srcfile := ReadScriptFile(args[0])
		// Expand it
		expanded, err := preprocessor.Preprocess(srcfile, config)
		if err != nil {
			printSyntaxError(err.SourceError())
			os.Exit(4)
		}
		// Write the result
		if err := os.WriteFile(output, []byte(expanded), 0644); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		fmt.Printf("compiled script written to %s\n", output)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("output", "o", "out.bt", "specify output file.")
	buildCmd.Flags().Uint("max-depth", preprocessor.DefaultMaxDepth, "set macro expansion depth limit")
}
