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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/scandb/scandb/internal/common"
	"github.com/scandb/scandb/internal/session"
	"github.com/scandb/scandb/internal/storage"
	"github.com/scandb/scandb/internal/storage/expression"
	"github.com/scandb/scandb/internal/storage/scan"
)

// errExit signals a clean shutdown request from a script or pipe
var errExit = errors.New("exit requested")

// shell holds the demo table, its scan index and the named sessions the
// commands operate through
type shell struct {
	table    *storage.TableData
	idx      *scan.ScanIndex
	registry *session.Registry
	sessions map[string]*session.Session
	order    []string // session names in creation order, for stable output
	current  string
	quiet    bool
	limit    int
}

func newShell(multiVersion, quiet bool, limit int) *shell {
	tbl := storage.NewTableData(1, "demo")
	sh := &shell{
		table:    tbl,
		idx:      scan.NewScanIndex(tbl, nil, multiVersion),
		registry: session.NewRegistry(),
		sessions: make(map[string]*session.Session),
		quiet:    quiet,
		limit:    limit,
	}
	sh.switchSession("S1")
	return sh
}

func (sh *shell) switchSession(name string) *session.Session {
	s, ok := sh.sessions[name]
	if !ok {
		s = sh.registry.NewSession()
		sh.sessions[name] = s
		sh.order = append(sh.order, name)
	}
	sh.current = name
	return s
}

func (sh *shell) session() *session.Session {
	return sh.sessions[sh.current]
}

// runScript executes a semicolon-separated command sequence
func (sh *shell) runScript(script string) error {
	for _, cmd := range strings.Split(script, ";") {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		if err := sh.execute(cmd); err != nil {
			return err
		}
	}
	return nil
}

// execute runs a single command line
func (sh *shell) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "exit", "quit", "\\q":
		return errExit
	case "help", "\\h", "\\?":
		printHelp()
		return nil
	case "session":
		if len(fields) > 1 {
			sh.switchSession(fields[1])
		}
		if !sh.quiet {
			fmt.Printf("Session %s (id %d, %d pending)\n",
				sh.current, sh.session().ID(), sh.session().Pending())
		}
		return nil
	case "insert":
		return sh.cmdInsert(fields[1:])
	case "delete":
		return sh.cmdDelete(fields[1:])
	case "scan":
		return sh.cmdScan(fields[1:])
	case "count":
		return sh.cmdCount()
	case "delta":
		return sh.cmdDelta()
	case "commit":
		if err := sh.session().Commit(); err != nil {
			return err
		}
		if !sh.quiet {
			fmt.Printf("Session %s committed\n", sh.current)
		}
		return nil
	case "rollback":
		if err := sh.session().Rollback(); err != nil {
			return err
		}
		if !sh.quiet {
			fmt.Printf("Session %s rolled back\n", sh.current)
		}
		return nil
	case "truncate":
		if err := sh.idx.Truncate(); err != nil {
			return err
		}
		// pending undo entries reference rows the truncate dropped;
		// every session starts over
		for _, name := range sh.order {
			sh.sessions[name] = sh.registry.NewSession()
		}
		if !sh.quiet {
			fmt.Println("Table truncated")
		}
		return nil
	case "cost":
		fmt.Printf("%.0f\n", sh.idx.Cost())
		return nil
	case "plan":
		fmt.Println(sh.idx.PlanName())
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
}

func (sh *shell) cmdInsert(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("insert needs at least one value")
	}
	values := make([]storage.ColumnValue, 0, len(args))
	for _, arg := range args {
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	row := storage.NewRow(values...)
	key, err := sh.session().Insert(sh.idx, row)
	if err != nil {
		return err
	}
	if !sh.quiet {
		fmt.Printf("Inserted at slot %d\n", key)
	}
	return nil
}

func (sh *shell) cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <slot>")
	}
	key, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid slot %q", args[0])
	}
	row := sh.idx.Row(key)
	if row == nil {
		return fmt.Errorf("no row at slot %d", key)
	}
	if err := sh.session().Delete(sh.idx, row); err != nil {
		return err
	}
	if !sh.quiet {
		fmt.Printf("Deleted slot %d\n", key)
	}
	return nil
}

func (sh *shell) cmdScan(args []string) error {
	where, err := parseWhere(args)
	if err != nil {
		return err
	}
	cursor := scan.NewFilteredScanner(sh.idx.Find(sh.session().ID()), where)
	defer cursor.Close()

	var rows [][]string
	cols := 1
	for cursor.Next() {
		row := cursor.Row()
		cells := []string{fmt.Sprintf("%d", row.Key())}
		for _, v := range row.Values() {
			cells = append(cells, storage.FormatValue(v))
		}
		if len(cells) > cols {
			cols = len(cells)
		}
		rows = append(rows, cells)
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	renderRows(rows, cols, sh.limit)
	if !sh.quiet {
		fmt.Printf("%d rows visible to session %s\n", len(rows), sh.current)
	}
	return nil
}

func (sh *shell) cmdCount() error {
	t := configureTable()
	t.AppendHeader(table.Row{"SESSION", "ID", "VISIBLE ROWS", "PENDING"})
	for _, name := range sh.order {
		s := sh.sessions[name]
		t.AppendRow(table.Row{name, s.ID(), sh.idx.RowCount(s.ID()), s.Pending()})
	}
	t.Render()
	fmt.Printf("physical rows: %d\n", sh.idx.ApproxRowCount())
	return nil
}

func (sh *shell) cmdDelta() error {
	rows := sh.idx.Delta()
	t := configureTable()
	t.AppendHeader(table.Row{"SLOT", "SESSION", "DELETED", "VALUES"})
	for _, row := range rows {
		vals := make([]string, 0, len(row.Values()))
		for _, v := range row.Values() {
			vals = append(vals, storage.FormatValue(v))
		}
		t.AppendRow(table.Row{row.Key(), row.SessionID(), row.Deleted(), strings.Join(vals, ", ")})
	}
	t.Render()
	if !sh.quiet {
		fmt.Printf("%d rows in delta\n", len(rows))
	}
	return nil
}

// parseValue converts a command argument into a column value. Integers,
// floats, booleans and null are recognized directly; a "dec:" prefix forces
// an exact decimal; everything else is text.
func parseValue(arg string) (storage.ColumnValue, error) {
	if strings.EqualFold(arg, "null") {
		return storage.NewNullValue(), nil
	}
	if arg == "true" || arg == "false" {
		return storage.NewBooleanValue(arg == "true"), nil
	}
	if rest, ok := strings.CutPrefix(arg, "dec:"); ok {
		return storage.ParseDecimalValue(rest)
	}
	if i, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return storage.NewIntegerValue(i), nil
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil && strings.Contains(arg, ".") {
		return storage.NewFloatValue(f), nil
	}
	return storage.NewTextValue(arg), nil
}

var operatorNames = map[string]storage.Operator{
	"=":       storage.EQ,
	"==":      storage.EQ,
	"!=":      storage.NE,
	"<>":      storage.NE,
	">":       storage.GT,
	">=":      storage.GTE,
	"<":       storage.LT,
	"<=":      storage.LTE,
	"isnull":  storage.ISNULL,
	"notnull": storage.ISNOTNULL,
}

// parseWhere builds the optional scan filter from "<col> <op> [<value>]"
func parseWhere(args []string) (storage.Expression, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if len(args) != 2 && len(args) != 3 {
		return nil, fmt.Errorf("usage: scan [<col> <op> [<value>]]")
	}
	col, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid column index %q", args[0])
	}
	op, ok := operatorNames[strings.ToLower(args[1])]
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", args[1])
	}
	var value storage.ColumnValue
	if len(args) == 3 {
		if value, err = parseValue(args[2]); err != nil {
			return nil, err
		}
	} else if op != storage.ISNULL && op != storage.ISNOTNULL {
		return nil, fmt.Errorf("operator %s needs a value", op)
	}
	return expression.NewSimpleExpression(col, op, value), nil
}

// configureTable creates a table writer with the house styling
func configureTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	return t
}

// renderRows prints scan output, truncating past the display limit
func renderRows(rows [][]string, cols, limit int) {
	t := configureTable()

	header := make(table.Row, cols)
	header[0] = "SLOT"
	for i := 1; i < cols; i++ {
		header[i] = fmt.Sprintf("C%d", i-1)
	}
	t.AppendHeader(header)

	shown := len(rows)
	if limit > 0 && shown > limit {
		shown = limit
	}
	for _, cells := range rows[:shown] {
		row := make(table.Row, cols)
		for i := range row {
			row[i] = " "
		}
		for i, c := range cells {
			row[i] = c
		}
		t.AppendRow(row)
	}
	if shown < len(rows) {
		message := fmt.Sprintf("... (%d more rows) ...", len(rows)-shown)
		truncationRow := make(table.Row, cols)
		// AutoMerge needs the same content in all columns to span them
		for i := range truncationRow {
			truncationRow[i] = message
		}
		t.AppendRow(truncationRow, table.RowConfig{AutoMerge: true})
	}
	t.Render()
}

// CLI is the interactive readline loop around a shell
type CLI struct {
	shell    *shell
	readline *readline.Instance
}

// NewCLI creates the interactive interface
func NewCLI(sh *shell) (*CLI, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[1;36mscandb>\033[0m ",
		HistoryFile:       homeDir + "/.scandb_history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %v", err)
	}

	return &CLI{shell: sh, readline: rl}, nil
}

// Run starts the interactive loop
func (c *CLI) Run() error {
	fmt.Println(common.VersionString)
	fmt.Println("Enter commands, 'help' for assistance, or 'exit' to quit.")
	fmt.Println()

	c.updatePrompt()
	for {
		line, err := c.readline.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.readline.SaveHistory(line)

		if err := c.shell.runScript(line); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(os.Stderr, "\033[1;31mError:\033[0m %v\n", err)
		}
		c.updatePrompt()
	}
}

// updatePrompt shows the current session and its pending change count
func (c *CLI) updatePrompt() {
	s := c.shell.session()
	if s.Pending() > 0 {
		c.readline.SetPrompt(fmt.Sprintf("\033[1;33m%s(%d)>\033[0m ", c.shell.current, s.Pending()))
	} else {
		c.readline.SetPrompt(fmt.Sprintf("\033[1;36m%s>\033[0m ", c.shell.current))
	}
}

// Close releases the readline instance
func (c *CLI) Close() error {
	return c.readline.Close()
}

func printHelp() {
	fmt.Println("ScanDB CLI")
	fmt.Println("")
	fmt.Println("  Data Commands:")
	fmt.Println("    insert <v> [v ...]     Insert a row (int, 1.5, dec:1.50, true, null, text)")
	fmt.Println("    delete <slot>          Delete the row at a slot")
	fmt.Println("    scan [col op value]    Walk rows visible to the current session")
	fmt.Println("    count                  Visible row count per session")
	fmt.Println("    delta                  Rows with uncommitted changes")
	fmt.Println("    truncate               Reset the table")
	fmt.Println("")
	fmt.Println("  Session Commands:")
	fmt.Println("    session [name]         Show or switch the current session")
	fmt.Println("    commit                 Commit the current session's changes")
	fmt.Println("    rollback               Undo the current session's changes")
	fmt.Println("")
	fmt.Println("  Other:")
	fmt.Println("    cost, plan             Planner cost estimate / plan label")
	fmt.Println("    help, \\h, \\?          Show this help message")
	fmt.Println("    exit, quit, \\q        Leave the shell")
	fmt.Println("")
}
