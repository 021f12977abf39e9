package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"

	"github.com/dshills/twinpane/internal/config"
	"github.com/dshills/twinpane/internal/config/loader"
	"github.com/dshills/twinpane/internal/config/notify"
	"github.com/dshills/twinpane/internal/config/schema"
	"github.com/dshills/twinpane/internal/jsonvalue"
)

type cli struct {
	ctx    context.Context
	store  *config.Store
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(c *cli, args []string) error
}

var commands = []command{
	{"path", "path", "print the settings file locations", runPath},
	{"show", "show [-format json|yaml|toml]", "print the settings as the next save would write them", runShow},
	{"diff", "diff", "diff the settings file against its canonical form", runDiff},
	{"set", "set <path> <value>", "set a value by dotted path and save", runSet},
	{"validate", "validate [-strict]", "check the settings file against the schema", runValidate},
	{"themes", "themes <dir>", "list the theme files in a directory", runThemes},
	{"schema", "schema", "write the schema file next to the settings", runSchema},
	{"watch", "watch", "print section changes until interrupted", runWatch},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func noArgs(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return nil
}

// readCurrent returns the raw bytes of the file a load would use. path is
// empty when no candidate exists.
func (c *cli) readCurrent() (path string, data []byte, err error) {
	for _, candidate := range c.store.Paths().LoadCandidates() {
		data, err := loader.ReadBounded(loader.DefaultFS(), candidate, loader.MaxSettingsFileSize)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return candidate, nil, err
		}
		return candidate, data, nil
	}
	return "", nil, nil
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
}

func runPath(c *cli, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	p := c.store.Paths()
	fmt.Fprintf(c.stdout, "primary\t%s\n", p.Primary())
	fmt.Fprintf(c.stdout, "versioned\t%s\n", p.Versioned())
	fmt.Fprintf(c.stdout, "legacy\t%s\n", p.Legacy())
	fmt.Fprintf(c.stdout, "debug\t%s\n", p.DebugFile())
	fmt.Fprintf(c.stdout, "schema\t%s\n", p.Schema())
	return nil
}

func runShow(c *cli, args []string) error {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	flags.SetOutput(c.stderr)
	format := flags.String("format", "json", "Output format (json, yaml, toml)")
	if err := flags.Parse(args); err != nil || flags.NArg() != 0 {
		return errUsage
	}

	settings, status, err := c.store.Load()
	if status == config.StatusFailed {
		return err
	}
	c.logger.Info("loaded settings", "status", status)

	switch *format {
	case "json":
		data, err := config.MarshalSettings(settings)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(stripBOM(data))
		return err
	case "yaml":
		return writeYAML(c.stdout, config.BuildDocument(settings))
	case "toml":
		return writeTOML(c.stdout, config.BuildDocument(settings))
	}
	return fmt.Errorf("unknown format %q", *format)
}

func runDiff(c *cli, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	path, raw, err := c.readCurrent()
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(c.stdout, "no settings file")
		return nil
	}
	settings, err := config.ParseSettings(raw)
	if err != nil {
		return err
	}
	canonical, err := config.MarshalSettings(settings)
	if err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(stripBOM(raw))),
		B:        difflib.SplitLines(string(stripBOM(canonical))),
		FromFile: path,
		ToFile:   "canonical",
		Context:  3,
	})
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(c.stdout, "settings file is canonical")
		return nil
	}
	_, err = io.WriteString(c.stdout, diff)
	return err
}

// runSet edits the raw document so members the engine does not model
// survive until the re-parse, then saves through the serializer. A value
// that is not JSON is stored as a string.
func runSet(c *cli, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	key, value := args[0], args[1]

	_, raw, err := c.readCurrent()
	if err != nil {
		return err
	}
	doc := jsonc.ToJSON(stripBOM(raw))
	if len(bytes.TrimSpace(doc)) == 0 {
		doc = []byte(fmt.Sprintf(`{"schemaVersion": %d}`, config.CurrentSchemaVersion))
	}

	if gjson.Valid(value) {
		doc, err = sjson.SetRawBytes(doc, key, []byte(value))
	} else {
		doc, err = sjson.SetBytes(doc, key, value)
	}
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	settings, err := config.ParseSettings(doc)
	if err != nil {
		return err
	}
	if err := c.store.Save(settings); err != nil {
		return err
	}
	c.logger.Info("saved settings", "path", c.store.Paths().Primary(), "key", key)
	return nil
}

func runValidate(c *cli, args []string) error {
	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags.SetOutput(c.stderr)
	strict := flags.Bool("strict", false, "Reject properties the schema does not declare")
	if err := flags.Parse(args); err != nil || flags.NArg() != 0 {
		return errUsage
	}

	path, raw, err := c.readCurrent()
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("no settings file")
	}
	doc, err := jsonvalue.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s, err := schema.LoadEmbedded()
	if err != nil {
		return err
	}

	err = schema.NewValidator(s).WithStrictMode(*strict).Validate(doc)
	var verrs *schema.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs.Errors {
			fmt.Fprintf(c.stdout, "%s\t%s\n", e.Kind, e)
		}
		return fmt.Errorf("%s: %d schema violations", path, verrs.Len())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s: ok\n", path)
	return nil
}

func runThemes(c *cli, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	themes, err := config.LoadThemeDefinitions(loader.DefaultFS(), args[0], c.logger)
	if err != nil {
		return err
	}
	for _, th := range themes {
		name := th.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(c.stdout, "%s\t%s\t%s\t%d colors\n", th.ID, th.BaseThemeID, name, len(th.Colors))
	}
	return nil
}

func runSchema(c *cli, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if err := c.store.SaveSchema(schema.Document()); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, c.store.Paths().Schema())
	return nil
}

func runWatch(c *cli, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	current, status, err := c.store.Load()
	if status == config.StatusFailed {
		return err
	}

	n := notify.New()
	defer n.Close()
	n.Subscribe(func(ch notify.Change) {
		if ch.Type == notify.ChangeReload {
			fmt.Fprintf(c.stdout, "reload\t%s\n", ch.Source)
			return
		}
		value, _ := jsonvalue.Serialize(ch.NewValue)
		fmt.Fprintf(c.stdout, "%s\t%s\t%s\n", ch.Type, ch.Section, strings.TrimSpace(value))
	})

	w, err := c.store.WatchChanges(current, n)
	if err != nil {
		return err
	}
	defer w.Close()
	fmt.Fprintf(c.stderr, "watching %s\n", w.Path())

	<-c.ctx.Done()
	return nil
}
