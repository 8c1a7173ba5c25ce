package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/pbmlabel"
	"github.com/bodgit/pbmlabel/label"
	"github.com/urfave/cli/v2"
)

const defaultDB = "pbmlabel.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func failure(err error) error {
	return cli.NewExitError(fmt.Sprintf("ERROR: %v", err), 1)
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func labelAction(c *cli.Context) error {
	l := pbmlabel.New(nil, newLogger(c))
	defer l.Close()

	r, err := l.Open(c.Args().First())
	if err != nil {
		return failure(err)
	}

	w := bufio.NewWriter(c.App.Writer)
	fmt.Fprintf(w, "Input file: %d (W) X %d (H)\n", r.Config.Width, r.Config.Height)
	fmt.Fprintf(w, "Color used: %d\n", r.Count)
	if err := label.Render(w, r.Grid, label.WithPlaceholder(c.String("background"))); err != nil {
		return failure(err)
	}
	if err := w.Flush(); err != nil {
		return failure(err)
	}

	return nil
}

func convertAction(c *cli.Context) error {
	in, err := os.Open(c.Args().Get(0))
	if err != nil {
		return failure(err)
	}
	defer in.Close()

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return failure(err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	format, err := pbmlabel.Convert(w, bufio.NewReader(in))
	if err != nil {
		return failure(err)
	}
	if err := w.Flush(); err != nil {
		return failure(err)
	}
	if err := out.Close(); err != nil {
		return failure(err)
	}

	newLogger(c).Printf("Converted %s image \"%s\" to \"%s\"\n", format, c.Args().Get(0), c.Args().Get(1))

	return nil
}

func scanAction(c *cli.Context) error {
	db, err := pbmlabel.NewResultDB(c.String("db"))
	if err != nil {
		return failure(err)
	}

	l := pbmlabel.New(db, newLogger(c))
	defer l.Close()

	scan, summary, err := l.Scan(c.Args().First())
	if err != nil {
		return failure(err)
	}

	fmt.Fprintf(c.App.Writer, "Scan %s: %v\n", scan, summary)

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "pbmlabel"
	app.Usage = "Connected component labelling for PBM images"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PBMLABEL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "background",
			EnvVars: []string{"PBMLABEL_BACKGROUND"},
			Value:   " ",
			Usage:   "placeholder printed for background pixels",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.ArgsUsage = "FILE"
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}
		return labelAction(c)
	}

	app.Commands = []*cli.Command{
		{
			Name:        "label",
			Usage:       "Label a PBM image and print the result",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				return labelAction(c)
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to PBM",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				return convertAction(c)
			},
		},
		{
			Name:        "scan",
			Usage:       "Label every PBM image in a directory tree and record the results",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				return scanAction(c)
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
