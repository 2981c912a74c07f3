// Command seqstat prints summary statistics of numbers read one per line.
//
//	seqstat --file values.txt --top 3 --range 1..^1
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/seqkit/bootstrap"
	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/span"
	"github.com/kbukum/seqkit/validation"
	"github.com/kbukum/seqkit/version"
)

const serviceName = "seqstat"

type options struct {
	file       string
	top        int
	rng        string
	configFile string
	version    bool
	json       bool
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs seqstat, reports a failure on stderr and returns the exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err == nil {
		err = runWith(ctx, o, stdin, stdout)
	}
	switch {
	case err == nil, stderrors.Is(err, pflag.ErrHelp):
		return 0
	case o.json:
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(errors.ResponseFor(err)); encErr != nil {
			fmt.Fprintln(stderr, serviceName+":", err)
		}
	default:
		fmt.Fprintln(stderr, serviceName+":", err)
	}
	return 1
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.file, "file", "f", "", "read values from `path` instead of stdin")
	fs.IntVarP(&o.top, "top", "n", 5, "number of most frequent values to print")
	fs.StringVarP(&o.rng, "range", "r", "", "print a slice of the sorted values, e.g. 2..^1")
	fs.StringVarP(&o.configFile, "config", "c", "", "config file `path`")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	fs.BoolVar(&o.json, "json", false, "report errors on stderr as JSON")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	v := validation.New().Min("top", o.top, 0)
	v.Custom(fs.NArg() == 0, "args", "unexpected positional arguments")
	return o, v.Err()
}

func runWith(ctx context.Context, o options, stdin io.Reader, stdout io.Writer) error {
	if o.version {
		_, err := fmt.Fprintln(stdout, serviceName, version.Get())
		return err
	}

	var rng *span.Range
	if o.rng != "" {
		r, err := span.Parse(o.rng)
		if err != nil {
			return err
		}
		rng = &r
	}

	var appOpts []bootstrap.Option
	if o.configFile != "" {
		appOpts = append(appOpts, bootstrap.WithConfigOptions(config.WithConfigFile(o.configFile)))
	}
	app, err := bootstrap.New(ctx, serviceName, appOpts...)
	if err != nil {
		return err
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		in := stdin
		if o.file != "" {
			f, err := os.Open(o.file)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		values, err := readValues(ctx, app, in)
		if err != nil {
			return err
		}
		st, err := summarize(ctx, values, o.top, rng)
		if err != nil {
			return err
		}
		return st.write(stdout)
	})
}
