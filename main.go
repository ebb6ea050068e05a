package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/ast"
	"github.com/pontaoski/huck/codegen"
	"github.com/pontaoski/huck/eval"
	"github.com/pontaoski/huck/frontend"
	"github.com/pontaoski/huck/reader"
	"github.com/pontaoski/huck/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/huck", "huck")

// report prints err; with --trace it also prints where it was raised.
func report(c *cli.Context, err error) error {
	if c.Bool("trace") {
		tracerr.PrintSourceColor(err)
	} else {
		fmt.Fprintln(os.Stderr, tracerr.Unwrap(err))
	}
	return cli.Exit("", 1)
}

// sourceFile picks the file named on the command line, falling back to the
// module's entry file.
func sourceFile(c *cli.Context) (string, error) {
	if file := c.Args().First(); file != "" {
		return file, nil
	}

	doc, err := readModule(moduleFile)
	if err != nil {
		return "", fmt.Errorf("no file given and no %s: %w", moduleFile, err)
	}
	return doc.Entry, nil
}

func withSource(c *cli.Context, fn func(r io.Reader, name string) error) error {
	name, err := sourceFile(c)
	if err != nil {
		return err
	}

	handle, err := os.Open(name)
	if err != nil {
		return err
	}
	defer handle.Close()

	return fn(handle, name)
}

func main() {
	app := &cli.App{
		Name:  "huck",
		Usage: "huck compiler",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print the source location errors were raised at",
			},
		},
		Before: func(c *cli.Context) error {
			level := c.String("log-level")
			if level == "" {
				if doc, err := readModule(moduleFile); err == nil {
					level = doc.LogLevel
				}
			}
			return setupLogging(level)
		},
		ExitErrHandler: func(context *cli.Context, err error) {
			if err == nil {
				return
			}
			if exit, ok := err.(cli.ExitCoder); ok {
				if msg := exit.Error(); msg != "" {
					fmt.Fprintln(os.Stderr, msg)
				}
				os.Exit(exit.ExitCode())
			}
			plog.Fatalf("error with huck: %s", err)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no module name provided", 1)
					}

					err := writeModule(moduleFile, huckModule{
						Package: name,
						Entry:   "main.huck",
					})
					if err != nil {
						return fmt.Errorf("error creating %s: %w", moduleFile, err)
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a file",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					return withSource(c, func(r io.Reader, name string) error {
						toks, err := frontend.Tokens(r, name)
						for _, tok := range toks {
							fmt.Printf("%s\t%s\n", tok.Location, tok)
						}
						if err != nil {
							return report(c, err)
						}
						return nil
					})
				},
			},
			{
				Name:      "parse",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repr", Usage: "print Go values instead of S-expressions"},
				},
				Action: func(c *cli.Context) error {
					return withSource(c, func(r io.Reader, name string) error {
						expr, err := frontend.Parse(r, name)
						if err != nil {
							return report(c, err)
						}
						if c.Bool("repr") {
							repr.Println(expr, repr.Indent("  "))
						} else {
							fmt.Println(ast.String(expr))
						}
						return nil
					})
				},
			},
			{
				Name:      "check",
				Usage:     "typecheck a file and dump the typed tree",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "repr", Usage: "print Go values instead of S-expressions"},
				},
				Action: func(c *cli.Context) error {
					return withSource(c, func(r io.Reader, name string) error {
						checked, err := frontend.Check(r, name)
						if err != nil {
							return report(c, err)
						}
						if c.Bool("repr") {
							repr.Println(checked, repr.Indent("  "))
						} else {
							fmt.Println(ast.Format(checked, types.ResolvedType.String))
						}
						return nil
					})
				},
			},
			{
				Name:      "run",
				Usage:     "typecheck and evaluate a file",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					return withSource(c, func(r io.Reader, name string) error {
						checked, err := frontend.Check(r, name)
						if err != nil {
							return report(c, err)
						}
						val, err := eval.Evaluate(checked)
						if err != nil {
							return report(c, err)
						}
						fmt.Printf("%s : %s\n", val, val.Type())
						return nil
					})
				},
			},
			{
				Name:  "typeinfo",
				Usage: "dump typeinfo from a compiled library",
				Action: func(c *cli.Context) error {
					file := c.Args().Get(0)
					data, err := reader.ReadTypeInfo(file)
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "evaluate expressions interactively",
				Action: func(c *cli.Context) error {
					return repl(os.Stdout)
				},
			},
			{
				Name:      "build",
				Usage:     "build a file",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "library",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					out := c.String("output")

					var pkg string
					if doc, err := readModule(moduleFile); err == nil {
						pkg = doc.Package
					}
					if out == "" {
						out = pkg
					}
					if out == "" {
						out = "a.out"
					}
					if c.Bool("library") {
						out += ".so"
					}

					var module string
					err := withSource(c, func(r io.Reader, name string) error {
						checked, err := frontend.Check(r, name)
						if err != nil {
							return report(c, err)
						}

						m, err := codegen.Generate(checked, codegen.Settings{
							IsLibrary:   c.Bool("library"),
							PackageName: pkg,
						})
						if err != nil {
							return report(c, err)
						}

						module = m.String()
						return nil
					})
					if err != nil {
						return err
					}

					if c.Bool("dump") {
						fmt.Println(module)
						return nil
					}

					fi, err := ioutil.TempFile("", "*.ll")
					if err != nil {
						return err
					}
					defer os.Remove(fi.Name())
					defer fi.Close()
					_, err = io.Copy(fi, strings.NewReader(module))
					if err != nil {
						return err
					}

					cmd := exec.Command("clang", "-o", out)
					if c.Bool("library") {
						cmd.Args = append(cmd.Args, "-shared", "-fPIC")
					}
					cmd.Args = append(cmd.Args, fi.Name())

					cmd.Stdout = os.Stdout
					cmd.Stderr = os.Stderr

					plog.Infof("linking %s", out)
					if err := cmd.Run(); err != nil {
						return report(c, tracerr.Wrap(err))
					}

					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
