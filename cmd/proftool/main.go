// Command proftool applies a patch file to a profile file and prints the
// updated profile together with the recorded change-set.
//
//	proftool -o increment --profile profile.json --patch patch.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pelletier/go-toml/v2"

	"github.com/brunoga/profile"
	"github.com/brunoga/profile/value"
)

type options struct {
	Operation    string `short:"o" long:"operation" description:"Operation to apply (update, increment, decrement, delete, array_add, array_remove, get)"`
	Profile      string `short:"p" long:"profile" description:"Profile document, JSON or YAML" required:"true"`
	Patch        string `short:"d" long:"patch" description:"Patch document, JSON or YAML" required:"true"`
	Config       string `short:"c" long:"config" description:"TOML file with default settings"`
	Indent       int    `long:"indent" description:"Indent output by this many spaces"`
	Verbose      bool   `short:"v" long:"verbose" description:"Log skipped patch values"`
	DeleteMarker string `long:"delete-marker" description:"Patch text that requests a deletion"`
	GetMarker    string `long:"get-marker" description:"Text written for reads in the change-set"`
}

// fileConfig is the layout of the --config file. Flags given on the command
// line take precedence over it.
type fileConfig struct {
	Operation    string `toml:"operation"`
	DeleteMarker string `toml:"delete_marker"`
	GetMarker    string `toml:"get_marker"`
	Indent       int    `toml:"indent"`
	Verbose      bool   `toml:"verbose"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	if opts.Config != "" {
		if err := applyConfig(parser, &opts); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	out, err := apply(&opts, logger)
	if err != nil {
		logger.Error("apply failed", "error", err)
		return 1
	}
	if _, err := fmt.Fprintf(stdout, "%s\n", out); err != nil {
		logger.Error("write output", "error", err)
		return 1
	}
	return 0
}

// applyConfig fills the settings not given as flags from the config file.
func applyConfig(parser *flags.Parser, opts *options) error {
	data, err := os.ReadFile(opts.Config)
	if err != nil {
		return err
	}
	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%s: %w", opts.Config, err)
	}

	isSet := func(name string) bool {
		opt := parser.FindOptionByLongName(name)
		return opt != nil && opt.IsSet()
	}
	if !isSet("operation") && cfg.Operation != "" {
		opts.Operation = cfg.Operation
	}
	if !isSet("delete-marker") && cfg.DeleteMarker != "" {
		opts.DeleteMarker = cfg.DeleteMarker
	}
	if !isSet("get-marker") && cfg.GetMarker != "" {
		opts.GetMarker = cfg.GetMarker
	}
	if !isSet("indent") {
		opts.Indent = cfg.Indent
	}
	if !isSet("verbose") {
		opts.Verbose = cfg.Verbose
	}
	return nil
}

func apply(opts *options, logger *slog.Logger) ([]byte, error) {
	op := profile.Update
	if opts.Operation != "" {
		var err error
		if op, err = profile.ParseOperation(opts.Operation); err != nil {
			return nil, err
		}
	}

	var codec []value.CodecOption
	if opts.DeleteMarker != "" {
		codec = append(codec, value.WithDeleteMarker(opts.DeleteMarker))
	}
	if opts.GetMarker != "" {
		codec = append(codec, value.WithGetMarker(opts.GetMarker))
	}

	doc, err := readDocument(opts.Profile, false, codec)
	if err != nil {
		return nil, err
	}
	patch, err := readDocument(opts.Patch, true, codec)
	if err != nil {
		return nil, err
	}

	res, err := profile.Traverse(doc, patch, op, profile.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Info("patch applied", "op", op, "changes", len(res.Changes))

	out := value.NewObject()
	out.Set("profile", res.Target)
	out.Set("changes", res.Changes.Object())
	if opts.Indent > 0 {
		codec = append(codec, value.WithIndent(opts.Indent))
	}
	return value.Marshal(out, codec...)
}

func readDocument(path string, patch bool, codec []value.CodecOption) (*value.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc *value.Object
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case (ext == ".yaml" || ext == ".yml") && patch:
		doc, err = value.ParseYAMLPatch(data, codec...)
	case ext == ".yaml" || ext == ".yml":
		doc, err = value.ParseYAMLObject(data)
	case patch:
		doc, err = value.ParsePatch(data, codec...)
	default:
		doc, err = value.ParseObject(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
