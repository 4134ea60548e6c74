/*
Copyright 2026 ScanDB Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scandb/scandb/internal/common"
)

var (
	multiVersion bool
	quiet        bool
	execute      string
	file         string
	limit        int
)

var rootCmd = &cobra.Command{
	Use:   "scandb",
	Short: "ScanDB table-scan storage CLI",
	Long: `ScanDB is the table-scan row store of a relational engine: slot-ordered
row storage with free-slot recycling and per-session multi-version
visibility. This CLI drives one demo table through named sessions to
observe slot reuse, delta tracking and visible row counts.`,
	Version: common.VersionMajor + "." + common.VersionMinor + "." + common.VersionPatch,
	RunE:    runRootCommand,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&multiVersion, "multiversion", "m", true, "Run the table in multi-version mode")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational messages")
	rootCmd.PersistentFlags().IntVarP(&limit, "limit", "l", 40, "Maximum number of rows to display (0 for unlimited)")
	rootCmd.Flags().StringVarP(&execute, "execute", "e", "", "Execute a semicolon-separated command script and exit")
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "Execute commands from a file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	sh := newShell(multiVersion, quiet, limit)

	if !quiet {
		mode := "multi-version"
		if !multiVersion {
			mode = "single-version"
		}
		fmt.Printf("Opened table %q in %s mode\n", sh.table.Name(), mode)
	}

	// Script flag - run commands and exit
	if execute != "" {
		if err := sh.runScript(execute); err != nil && err != errExit {
			return err
		}
		return nil
	}

	// File flag - execute commands from a file
	if file != "" {
		return executeFromFile(sh, file)
	}

	// Piped input - execute commands line by line
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		return executePiped(sh)
	}

	// Interactive mode
	cli, err := NewCLI(sh)
	if err != nil {
		return fmt.Errorf("error initializing CLI: %v", err)
	}
	defer cli.Close()

	return cli.Run()
}

func executeFromFile(sh *shell, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening file %s: %v", filename, err)
	}
	defer f.Close()

	return executeLines(sh, bufio.NewScanner(f))
}

func executePiped(sh *shell) error {
	return executeLines(sh, bufio.NewScanner(os.Stdin))
}

func executeLines(sh *shell, scanner *bufio.Scanner) error {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := sh.runScript(line); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}
