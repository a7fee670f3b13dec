// Command biscuitctl builds a Biscuit index over a row source and runs
// one-off or interactive LIKE/ILIKE queries against it. It exists to
// exercise the rowsource/* adapters end to end.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/CrystallineCore/biscuit/bicore"
	"github.com/CrystallineCore/biscuit/config"
	"github.com/CrystallineCore/biscuit/lowercase"
	"github.com/CrystallineCore/biscuit/plan"
	"github.com/CrystallineCore/biscuit/query"
	"github.com/CrystallineCore/biscuit/result"
	"github.com/CrystallineCore/biscuit/rowsource"
	"github.com/CrystallineCore/biscuit/rowsource/mssql"
	"github.com/CrystallineCore/biscuit/rowsource/mysql"
	"github.com/CrystallineCore/biscuit/rowsource/postgres"
	"github.com/CrystallineCore/biscuit/rowsource/sqlite"
)

type cliOptions struct {
	Kind     string `long:"kind" description:"Row source kind (sqlite, mysql, postgres, mssql)" value-name:"kind" required:"true"`
	DbName   string `long:"db" description:"Database name or, for sqlite, file path" value-name:"db_name" required:"true"`
	Table    string `long:"table" description:"Table to index" value-name:"table" required:"true"`
	Columns  string `long:"columns" description:"Comma-separated indexed column list" value-name:"col1,col2,..." required:"true"`
	User     string `short:"u" long:"user" description:"Database user name" value-name:"user_name"`
	Password string `short:"p" long:"password" description:"Database password, overridden by $BISCUIT_PWD" value-name:"password"`
	Prompt   bool   `long:"password-prompt" description:"Force password prompt"`
	Host     string `short:"h" long:"host" description:"Host to connect to" value-name:"host_name"`
	Port     int    `short:"P" long:"port" description:"Port used for the connection" value-name:"port_num"`
	Socket   string `short:"S" long:"socket" description:"Socket file to use for the connection" value-name:"socket"`

	Column  int    `long:"column" description:"Predicate column index for a one-off query" value-name:"index"`
	Op      string `long:"op" description:"Predicate operator: like, notlike, ilike, notilike" value-name:"op"`
	Pattern string `long:"pattern" description:"LIKE/ILIKE pattern for a one-off query" value-name:"pattern"`
	Explain bool   `long:"explain" description:"Pretty-print the planner's per-predicate analysis before running"`
	Repl    bool   `long:"repl" description:"Start an interactive query REPL instead of running one query"`
}

func openRowSource(ctx context.Context, opts cliOptions, rc rowsource.Config) (query.RowSource, func() error, error) {
	switch strings.ToLower(opts.Kind) {
	case "sqlite", "sqlite3":
		s, err := sqlite.Open(ctx, rc)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mysql":
		s, err := mysql.Open(ctx, rc)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "postgres", "postgresql", "pg":
		s, err := postgres.Open(ctx, rc)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mssql", "sqlserver":
		s, err := mssql.Open(ctx, rc)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("biscuitctl: unknown row source kind %q", opts.Kind)
	}
}

func parseOptions(args []string) cliOptions {
	var opts cliOptions
	p := flags.NewParser(&opts, flags.Default)
	p.Usage = "[options]"
	if _, err := p.ParseArgs(args); err != nil {
		log.Fatal(err)
	}

	password, ok := os.LookupEnv("BISCUIT_PWD")
	if ok {
		opts.Password = password
	}
	if opts.Prompt {
		fmt.Print("Enter Password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			log.Fatal(err)
		}
		opts.Password = string(pass)
		fmt.Println()
	}
	return opts
}

func main() {
	opts := parseOptions(os.Args[1:])
	ctx := context.Background()

	columns := strings.Split(opts.Columns, ",")
	rc := rowsource.Config{
		DbName:   opts.DbName,
		User:     opts.User,
		Password: opts.Password,
		Host:     opts.Host,
		Port:     opts.Port,
		Socket:   opts.Socket,
		Table:    opts.Table,
		Columns:  columns,
	}

	src, closeSrc, err := openRowSource(ctx, opts, rc)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSrc()

	ix := bicore.New(config.Default(), lowercase.NewDefault(), len(columns))
	if err := ix.Build(ctx, src); err != nil {
		log.Fatal(err)
	}

	rp := result.New(config.Default())

	if opts.Repl {
		runREPL(ctx, ix, rp, opts.Explain)
		return
	}

	pred, err := parsePredicate(opts.Column, opts.Op, opts.Pattern)
	if err != nil {
		log.Fatal(err)
	}
	runQuery(ctx, ix, rp, []query.Predicate{pred}, opts.Explain)
}

// stdoutSink is a query.ResultSink that prints one "block:offset" line per
// TID to stdout, in whatever order Accept receives them.
type stdoutSink struct{}

func (stdoutSink) Accept(tids []query.TID, sorted bool, limit int) error {
	if limit >= 0 && limit < len(tids) {
		tids = tids[:limit]
	}
	for _, t := range tids {
		fmt.Printf("%d:%d\n", t.Block, t.Offset)
	}
	_ = sorted // the pipeline has already applied the requested order
	return nil
}

func runQuery(ctx context.Context, ix *bicore.Index, rp result.Pipeline, predicates []query.Predicate, explain bool) {
	if explain {
		for _, p := range predicates {
			pp.Println(plan.Analyze(p))
		}
	}

	r := plan.Execute(ctx, ix, predicates)
	tids := rp.Finalize(ctx, r, ix.Tombstones(), ix.TID, true, -1)

	var sink query.ResultSink = stdoutSink{}
	if err := sink.Accept(tids, true, -1); err != nil {
		log.Fatal(err)
	}
}

func runREPL(ctx context.Context, ix *bicore.Index, rp result.Pipeline, explain bool) {
	fmt.Println("biscuitctl REPL. Enter: <column> <op> <pattern>. Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			fmt.Println("expected: <column> <op> <pattern>")
			continue
		}
		column, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Println(err)
			continue
		}
		pred, err := parsePredicate(column, fields[1], fields[2])
		if err != nil {
			fmt.Println(err)
			continue
		}
		runQuery(ctx, ix, rp, []query.Predicate{pred}, explain)
	}
}

func parsePredicate(column int, op string, pattern string) (query.Predicate, error) {
	var o query.Operator
	switch strings.ToLower(op) {
	case "like":
		o = query.Like
	case "notlike", "not_like":
		o = query.NotLike
	case "ilike":
		o = query.ILike
	case "notilike", "not_ilike":
		o = query.NotILike
	default:
		return query.Predicate{}, fmt.Errorf("biscuitctl: unknown operator %q", op)
	}
	return query.Predicate{Column: column, Op: o, Pattern: []byte(pattern)}, nil
}
