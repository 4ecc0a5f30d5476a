/*
Command fontcli inspects the font catalog of the platform: font families
available for languages, localized family and face names, and vertical glyph
substitutions.

	fontcli [-trace level] [-catalog provider] [command args…]

Without a command, fontcli starts an interactive session with tab completion
of font family names. Try 'help' for a list of commands.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"github.com/npillmayer/fontloc/core/font/fontregistry"
	"github.com/npillmayer/fontloc/core/font/localized"
	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/core/font/opentype/otquery"
	"github.com/npillmayer/fontloc/core/font/vertical"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// tracer traces with key 'fontloc.catalog'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.catalog")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	provider := flag.String("catalog", "", "Font catalog provider [fontconfig|system|gofonts]")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.fontloc.catalog":   *tlevel,
		"trace.fontloc.fonts":     *tlevel,
		"trace.fontloc.resources": *tlevel,
		"trace.fontloc.vertical":  *tlevel,
	}
	if *provider != "" {
		conf["font-catalog"] = *provider
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	catalog, err := fontregistry.Default(conf)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	intp := &Intp{
		catalog:  catalog,
		names:    localized.New(catalog, localized.WithFallback(localized.FallbackInput)),
		vertical: vertical.New(catalog),
		conf:     conf,
	}
	if flag.NArg() > 0 { // one-shot mode
		if _, err := intp.execute(parseCommand(strings.Join(flag.Args(), " "))); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(4)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "fonts > ",
		AutoComplete: intp.completer(),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	pterm.Info.Printfln("Welcome to the font catalog CLI, catalog is %q", catalog.Provider().Name())
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	catalog  *fontcatalog.Catalog
	names    *localized.Names
	vertical *vertical.Lookup
	conf     testconfig.Conf
}

func (intp *Intp) completer() *readline.PrefixCompleter {
	families := readline.PcItemDynamic(func(line string) []string {
		fields := strings.Fields(line)
		prefix := ""
		if len(fields) > 1 {
			prefix = strings.Join(fields[1:], " ")
		}
		return intp.names.CompleteFamilyName(prefix)
	})
	return readline.NewPrefixCompleter(
		readline.PcItem("families"),
		readline.PcItem("family", families),
		readline.PcItem("face", families),
		readline.PcItem("vert", families),
		readline.PcItem("info", families),
		readline.PcItem("complete", families),
		readline.PcItem("providers"),
		readline.PcItem("refresh"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(parseCommand(line))
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op codes of commands
const (
	QUIT int = iota
	HELP
	FAMILIES
	FAMILY
	FACE
	VERT
	COMPLETE
	PROVIDERS
	REFRESH
	INFO
)

// Command is a parsed command line.
type Command struct {
	code int
	args []string
}

func parseCommand(line string) Command {
	fields := strings.Fields(line)
	cmd := Command{code: HELP}
	if len(fields) == 0 {
		return cmd
	}
	cmd.args = fields[1:]
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		cmd.code = QUIT
	case "families", "fams":
		cmd.code = FAMILIES
	case "family", "fam":
		cmd.code = FAMILY
	case "face", "font":
		cmd.code = FACE
	case "vert", "vertical":
		cmd.code = VERT
	case "complete":
		cmd.code = COMPLETE
	case "providers":
		cmd.code = PROVIDERS
	case "refresh":
		cmd.code = REFRESH
	case "info":
		cmd.code = INFO
	}
	tracer().Debugf("parse command = %v", cmd)
	return cmd
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case FAMILIES:
		langs, err := parseLanguages(cmd.args)
		if err != nil {
			return false, err
		}
		families, err := intp.names.AvailableFamilyNames(langs...)
		if err != nil {
			return false, err
		}
		for _, f := range families {
			pterm.Println(f)
		}
		pterm.Info.Printfln("%d families", len(families))
	case FAMILY, FACE:
		name, lang, err := nameAndLanguage(cmd.args)
		if err != nil {
			return false, err
		}
		if cmd.code == FAMILY {
			pterm.Printfln("%s [%s] = %s", name, lang, intp.names.LocalizedFamilyName(name, lang))
		} else {
			pterm.Printfln("%s [%s] = %s", name, lang, intp.names.LocalizedFontName(name, lang))
		}
	case VERT:
		return false, intp.vert(cmd.args)
	case COMPLETE:
		for _, n := range intp.names.CompleteFamilyName(strings.Join(cmd.args, " ")) {
			pterm.Println(n)
		}
	case PROVIDERS:
		if tracer().GetTraceLevel() >= tracing.LevelInfo {
			fontregistry.GlobalRegistry().LogProviderList()
		}
		current := intp.catalog.Provider().Name()
		for _, n := range fontregistry.GlobalRegistry().Names() {
			if n == current {
				pterm.Printfln("* %s", n)
			} else {
				pterm.Printfln("  %s", n)
			}
		}
	case REFRESH:
		intp.vertical.Refresh() // refreshes the catalog as well
		pterm.Info.Println("font catalog refreshed")
	case INFO:
		return false, intp.info(strings.Join(cmd.args, " "))
	}
	return false, nil
}

// nameAndLanguage splits "<name…> <lang>"; font names may contain blanks.
func nameAndLanguage(args []string) (string, language.Tag, error) {
	if len(args) < 2 {
		return "", language.Und, fmt.Errorf("usage: <name> <language>")
	}
	lang, err := language.Parse(args[len(args)-1])
	if err != nil {
		return "", language.Und, err
	}
	return strings.Join(args[:len(args)-1], " "), lang, nil
}

func parseLanguages(args []string) ([]language.Tag, error) {
	langs := make([]language.Tag, 0, len(args))
	for _, a := range args {
		l, err := language.Parse(a)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, nil
}

// vert handles "vert <font…> <glyph>", where glyph is a glyph index, a
// code-point 'U+xxxx', or a single character.
func (intp *Intp) vert(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: vert <font> <glyph|U+xxxx|char>")
	}
	fontname, arg := strings.Join(args[:len(args)-1], " "), args[len(args)-1]
	if strings.HasPrefix(strings.ToUpper(arg), "U+") {
		cp, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil {
			return err
		}
		return intp.vertRune(fontname, rune(cp))
	}
	if gid, err := strconv.ParseUint(arg, 10, 16); err == nil {
		g := ot.GlyphIndex(gid)
		pterm.Printfln("%s: glyph %d → %d", fontname, g, intp.vertical.SubstitutionGlyph(fontname, g))
		return nil
	}
	if utf8.RuneCountInString(arg) == 1 {
		r, _ := utf8.DecodeRuneInString(arg)
		return intp.vertRune(fontname, r)
	}
	return fmt.Errorf("not a glyph index or character: %s", arg)
}

func (intp *Intp) vertRune(fontname string, r rune) error {
	g := intp.vertical.SubstitutionForRune(fontname, r)
	if g == 0 {
		return fmt.Errorf("font %s has no glyph for %q", fontname, r)
	}
	pterm.Printfln("%s: %q (U+%04X) → glyph %d", fontname, r, r, g)
	return nil
}

// info prints what the catalog and the font's tables tell about a face.
func (intp *Intp) info(name string) error {
	f, fi, err := intp.catalog.Load(name)
	if err != nil {
		return err
	}
	otf, err := ot.ParseCollection(f.Binary, fi.Index)
	if err != nil {
		return err
	}
	pterm.Printfln("family      %s", fi.Family)
	pterm.Printfln("face        %s (%s)", fi.Face, fi.PostScriptName)
	pterm.Printfln("file        %s #%d", fi.Path, fi.Index)
	pterm.Printfln("type        %s", otquery.FontType(otf))
	pterm.Printfln("layout      %v", otquery.LayoutTables(otf))
	pterm.Printfln("languages   %v", fi.Languages)
	if gsub := otf.GSub(); gsub != nil {
		pterm.Printfln("scripts     %v", otquery.VerticalScripts(gsub))
	}
	pterm.Printfln("vertical    lookups %v", otquery.VerticalLookups(otf))
	return nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	families [lang…]        list font families suitable for any of the languages
	family <name> <lang>    localized name of a font family
	face <name> <lang>      localized name of a font face
	vert <font> <glyph>     vertical substitution of a glyph (index, U+xxxx or character)
	info <font>             names, file, tables and vertical features of a font
	complete <prefix>       family names starting with prefix
	providers               list font catalog providers, * marks the one in use
	refresh                 re-read the font catalog
	quit                    leave the CLI
	`)
}
