package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/addbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/dropall"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/importsnapshot"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/importtext"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/registerborrower"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/returnallbooks"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/swapbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/borrowedbooks"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/classifyidentifier"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/exportsnapshot"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/exporttext"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/listborrowers"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/observable"
)

const stdStream = "-"

// subCommand runs one catalog operation. A nil result prints nothing.
type subCommand struct {
	needsStore bool
	run        func(ctx context.Context, a *app, args []string) (any, error)
}

func subCommands() map[string]subCommand {
	return map[string]subCommand{
		"schema":           {needsStore: true, run: runSchema},
		"classify":         {run: runClassify},
		"borrow":           {needsStore: true, run: runBorrow},
		"return":           {needsStore: true, run: runReturn},
		"swap":             {needsStore: true, run: runSwap},
		"return-all":       {needsStore: true, run: runReturnAll},
		"add-book":         {needsStore: true, run: runAddBook},
		"register-student": {needsStore: true, run: runRegisterStudent},
		"register-pupil":   {needsStore: true, run: runRegisterPupil},
		"list-books":       {needsStore: true, run: runListBooks},
		"list-borrowers":   {needsStore: true, run: runListBorrowers},
		"borrowed-books":   {needsStore: true, run: runBorrowedBooks},
		"export-text":      {needsStore: true, run: runExportText},
		"import-text":      {needsStore: true, run: runImportText},
		"export-snapshot":  {needsStore: true, run: runExportSnapshot},
		"import-snapshot":  {needsStore: true, run: runImportSnapshot},
		"drop-all":         {needsStore: true, run: runDropAll},
	}
}

// handleCommand runs a command handler wrapped with logging and metrics.
func handleCommand[C shell.Command, R shell.CommandResult](
	ctx context.Context,
	a *app,
	handler shell.CoreCommandHandler[C, R],
	command C,
) (R, error) {

	var zero R

	wrapper, err := observable.NewCommandWrapper[C, R](
		handler,
		observable.WithCommandContextualLogging[C, R](a.logger),
		observable.WithCommandMetrics[C, R](a.metrics),
	)
	if err != nil {
		return zero, err
	}

	return wrapper.Handle(ctx, command)
}

// withPartialResult prints the result of a failed import, so the records written before the failure are reported.
func withPartialResult(a *app, result any, err error) (any, error) {
	if err != nil {
		_ = writeJSON(a.stdout, result)
		return nil, err
	}

	return result, nil
}

// handleQuery runs a query handler wrapped with logging and metrics.
func handleQuery[Q shell.Query, R any](
	ctx context.Context,
	a *app,
	handler shell.CoreQueryHandler[Q, R],
	query Q,
) (R, error) {

	var zero R

	wrapper, err := observable.NewQueryWrapper[Q, R](
		handler,
		observable.WithQueryContextualLogging[Q, R](a.logger),
		observable.WithQueryMetrics[Q, R](a.metrics),
	)
	if err != nil {
		return zero, err
	}

	return wrapper.Handle(ctx, query)
}

// parseFlags parses args and requires exactly the given number of positional arguments.
func parseFlags(fs *flag.FlagSet, args []string, positional ...string) ([]string, error) {
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}

	if fs.NArg() != len(positional) {
		return nil, fmt.Errorf("%w: %s expects %v", errUsage, fs.Name(), positional)
	}

	return fs.Args(), nil
}

type schemaCreator interface {
	CreateSchema(ctx context.Context) error
}

func runSchema(ctx context.Context, a *app, args []string) (any, error) {
	if _, err := parseFlags(flag.NewFlagSet("schema", flag.ContinueOnError), args); err != nil {
		return nil, err
	}

	// CreateSchema only creates missing tables.
	if creator, ok := a.store.(schemaCreator); ok {
		if err := creator.CreateSchema(ctx); err != nil {
			return nil, err
		}
	}

	return map[string]string{"schema": "ready"}, nil
}

func runClassify(ctx context.Context, a *app, args []string) (any, error) {
	values, err := parseFlags(flag.NewFlagSet("classify", flag.ContinueOnError), args, "identifier")
	if err != nil {
		return nil, err
	}

	return handleQuery[classifyidentifier.Query, classifyidentifier.Result](ctx, a, classifyidentifier.NewQueryHandler(), classifyidentifier.BuildQuery(values[0]))
}

func runBorrow(ctx context.Context, a *app, args []string) (any, error) {
	values, err := parseFlags(flag.NewFlagSet("borrow", flag.ContinueOnError), args, "borrower", "isbn")
	if err != nil {
		return nil, err
	}

	return handleCommand[borrowbook.Command, borrowbook.Result](ctx, a, borrowbook.NewCommandHandler(a.store), borrowbook.BuildCommand(values[0], values[1]))
}

func runReturn(ctx context.Context, a *app, args []string) (any, error) {
	values, err := parseFlags(flag.NewFlagSet("return", flag.ContinueOnError), args, "borrower", "isbn")
	if err != nil {
		return nil, err
	}

	return handleCommand[returnbook.Command, returnbook.Result](ctx, a, returnbook.NewCommandHandler(a.store), returnbook.BuildCommand(values[0], values[1]))
}

func runSwap(ctx context.Context, a *app, args []string) (any, error) {
	values, err := parseFlags(flag.NewFlagSet("swap", flag.ContinueOnError), args, "borrower", "return-isbn", "borrow-isbn")
	if err != nil {
		return nil, err
	}

	return handleCommand[swapbook.Command, swapbook.Result](ctx, a, swapbook.NewCommandHandler(a.store), swapbook.BuildCommand(values[0], values[1], values[2]))
}

func runReturnAll(ctx context.Context, a *app, args []string) (any, error) {
	values, err := parseFlags(flag.NewFlagSet("return-all", flag.ContinueOnError), args, "borrower")
	if err != nil {
		return nil, err
	}

	return handleCommand[returnallbooks.Command, returnallbooks.Result](ctx, a, returnallbooks.NewCommandHandler(a.store), returnallbooks.BuildCommand(values[0]))
}

func runAddBook(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("add-book", flag.ContinueOnError)
	title := fs.String("title", "", "book title")
	author := fs.String("author", "", "book author")
	year := fs.Int("year", 0, "year of publication")
	copies := fs.Int("copies", 1, "number of copies")
	label := fs.String("label", string(core.LabelGeneral), "general or for-children")

	values, err := parseFlags(fs, args, "isbn")
	if err != nil {
		return nil, err
	}

	command := addbook.BuildCommand(values[0], *title, *author, *year, *copies, *label)

	return handleCommand[addbook.Command, addbook.Result](ctx, a, addbook.NewCommandHandler(a.store), command)
}

func runRegisterStudent(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("register-student", flag.ContinueOnError)
	name, surname, group := borrowerFlags(fs)

	values, err := parseFlags(fs, args, "identifier")
	if err != nil {
		return nil, err
	}

	command := registerborrower.BuildStudentCommand(values[0], *name, *surname, *group)

	return handleCommand[registerborrower.Command, registerborrower.Result](ctx, a, registerborrower.NewCommandHandler(a.store), command)
}

func runRegisterPupil(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("register-pupil", flag.ContinueOnError)
	name, surname, group := borrowerFlags(fs)
	age := fs.Int("age", core.MinimumPupilAge, "age of the pupil")

	values, err := parseFlags(fs, args, "identifier")
	if err != nil {
		return nil, err
	}

	command := registerborrower.BuildPupilCommand(values[0], *name, *surname, *group, *age)

	return handleCommand[registerborrower.Command, registerborrower.Result](ctx, a, registerborrower.NewCommandHandler(a.store), command)
}

func borrowerFlags(fs *flag.FlagSet) (name, surname, group *string) {
	return fs.String("name", "", "first name"),
		fs.String("surname", "", "last name"),
		fs.String("group", "", "study group or class")
}

func runListBooks(ctx context.Context, a *app, args []string) (any, error) {
	if _, err := parseFlags(flag.NewFlagSet("list-books", flag.ContinueOnError), args); err != nil {
		return nil, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	return handleQuery[listbooks.Query, listbooks.Result](ctx, a, listbooks.NewQueryHandler(a.store), listbooks.BuildQuery())
}

func runListBorrowers(ctx context.Context, a *app, args []string) (any, error) {
	if _, err := parseFlags(flag.NewFlagSet("list-borrowers", flag.ContinueOnError), args); err != nil {
		return nil, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	return handleQuery[listborrowers.Query, listborrowers.Result](ctx, a, listborrowers.NewQueryHandler(a.store), listborrowers.BuildQuery())
}

func runBorrowedBooks(ctx context.Context, a *app, args []string) (any, error) {
	values, err := parseFlags(flag.NewFlagSet("borrowed-books", flag.ContinueOnError), args, "borrower")
	if err != nil {
		return nil, err
	}

	return handleQuery[borrowedbooks.Query, borrowedbooks.Result](ctx, a, borrowedbooks.NewQueryHandler(a.store), borrowedbooks.BuildQuery(values[0]))
}

func runExportText(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("export-text", flag.ContinueOnError)
	out := fs.String("out", stdStream, "output file, - for stdout")

	if _, err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	result, err := handleQuery[exporttext.Query, exporttext.Result](ctx, a, exporttext.NewQueryHandler(a.store), exporttext.BuildQuery())
	if err != nil {
		return nil, err
	}

	if err = writeOutput(a, *out, result.Text); err != nil {
		return nil, err
	}

	if *out == stdStream {
		return nil, nil
	}

	return map[string]int{"exported": result.Count}, nil
}

func runImportText(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("import-text", flag.ContinueOnError)
	in := fs.String("in", stdStream, "input file, - for stdin")

	if _, err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	data, err := readInput(a, *in)
	if err != nil {
		return nil, err
	}

	handler := importtext.NewCommandHandler(a.store, importtext.WithContextualLogger(a.logger))
	result, err := handleCommand[importtext.Command, importtext.Result](ctx, a, handler, importtext.BuildCommand(data))

	return withPartialResult(a, result, err)
}

func runExportSnapshot(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("export-snapshot", flag.ContinueOnError)
	out := fs.String("out", "", "output file")

	if _, err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	if *out == "" {
		return nil, fmt.Errorf("%w: export-snapshot needs -out", errUsage)
	}

	result, err := handleQuery[exportsnapshot.Query, exportsnapshot.Result](ctx, a, exportsnapshot.NewQueryHandler(a.store), exportsnapshot.BuildQuery())
	if err != nil {
		return nil, err
	}

	if err = writeOutput(a, *out, result.Snapshot); err != nil {
		return nil, err
	}

	return result.Counts, nil
}

func runImportSnapshot(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("import-snapshot", flag.ContinueOnError)
	in := fs.String("in", stdStream, "input file, - for stdin")
	wipe := fs.Bool("wipe", false, "delete the whole catalog before the import")

	if _, err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	data, err := readInput(a, *in)
	if err != nil {
		return nil, err
	}

	handler := importsnapshot.NewCommandHandler(a.store, importsnapshot.WithContextualLogger(a.logger))
	result, err := handleCommand[importsnapshot.Command, importsnapshot.Result](ctx, a, handler, importsnapshot.BuildCommand(data, *wipe))

	return withPartialResult(a, result, err)
}

func runDropAll(ctx context.Context, a *app, args []string) (any, error) {
	fs := flag.NewFlagSet("drop-all", flag.ContinueOnError)
	confirm := fs.Bool("yes", false, "confirm the deletion of the whole catalog")

	if _, err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	if !*confirm {
		return nil, fmt.Errorf("%w: drop-all deletes everything, pass -yes to confirm", errUsage)
	}

	return handleCommand[dropall.Command, dropall.Result](ctx, a, dropall.NewCommandHandler(a.store), dropall.BuildCommand())
}

func readInput(a *app, path string) ([]byte, error) {
	if path == stdStream {
		return io.ReadAll(a.stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(a *app, path string, data []byte) error {
	if path == stdStream {
		_, err := a.stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
