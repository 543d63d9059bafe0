package main

import (
	"fmt"
	"strings"
)

// Options is the fully parsed command line, threaded through the rest of
// the pipeline instead of read back out of global flag state — the
// Context-value idiom spec §9's design notes call for in place of the
// original's global mutable rule vector and debug flag.
//
// Raw argument values (UserInstructions, SystemInstructions, Output,
// EditorComments) are left unresolved here; internal/emit.ResolveArgValue
// interprets their @file / @- / =inline / bare-literal forms once stdin
// availability is known.
type Options struct {
	Files []string

	UserInstructions   string
	HasUserInstructions bool

	SystemInstructions   string
	HasSystemInstructions bool

	EditorComments     bool
	EditorCommentsBody string

	TreeFull     bool
	TreeFiltered bool

	CodeMap bool

	Output     string
	HasOutput  bool

	NoGitignore bool
	Excludes    []string

	Keywords string

	FilerankWeight string
	FilerankCutoff string
	FilerankDebug  bool

	TokenBudget    int
	HasTokenBudget bool
	TokenModel     string

	Diagnostics bool
	Debug       bool
	Help        bool
}

// ParseArgs scans argv getopt-style: short flags may carry an attached
// value (-c@-, -s=foo, -sglued) that no flag-parsing library in the
// example pack (flag, pflag) can express, so the scan is a plain
// character-by-character for loop rather than a declarative flag table,
// following the hand-rolled arg loop of ImmaZoni-PromptPacker's tool (the
// teacher's own cmd entrypoint uses cobra/pflag instead).
func ParseArgs(argv []string) (*Options, error) {
	opts := &Options{}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch {
		case arg == "-f":
			// Everything after -f is a path/pattern, not a flag, no
			// matter what it looks like.
			opts.Files = append(opts.Files, argv[i+1:]...)
			i = len(argv)
			continue

		case arg == "-h" || arg == "--help":
			opts.Help = true
			i++
			continue

		case arg == "-C":
			opts.UserInstructions = "@-"
			opts.HasUserInstructions = true
			i++
			continue

		case arg == "-c" || arg == "--command" || strings.HasPrefix(arg, "-c") || strings.HasPrefix(arg, "--command="):
			val, consumed, err := scanValue(arg, argv, i, "-c", "--command")
			if err != nil {
				return nil, err
			}
			opts.UserInstructions = val
			opts.HasUserInstructions = true
			i += consumed
			continue

		case arg == "-s" || strings.HasPrefix(arg, "-s"):
			val, consumed, err := scanValue(arg, argv, i, "-s", "")
			if err != nil {
				return nil, err
			}
			opts.SystemInstructions = val
			opts.HasSystemInstructions = true
			i += consumed
			continue

		case arg == "-e" || strings.HasPrefix(arg, "-e"):
			opts.EditorComments = true
			if rest := strings.TrimPrefix(arg, "-e"); rest != "" {
				opts.EditorCommentsBody = rest
			}
			i++
			continue

		case arg == "--editor-comments" || strings.HasPrefix(arg, "--editor-comments="):
			opts.EditorComments = true
			if rest := strings.TrimPrefix(arg, "--editor-comments="); rest != arg {
				opts.EditorCommentsBody = rest
			}
			i++
			continue

		case arg == "-t":
			opts.TreeFull = true
			i++
			continue

		case arg == "-T":
			opts.TreeFiltered = true
			i++
			continue

		case arg == "-m" || arg == "--code-map":
			opts.CodeMap = true
			i++
			continue

		case arg == "-o" || strings.HasPrefix(arg, "-o") || strings.HasPrefix(arg, "--output"):
			val, consumed, err := scanOutput(arg, argv, i)
			if err != nil {
				return nil, err
			}
			opts.Output = val
			opts.HasOutput = true
			i += consumed
			continue

		case arg == "--no-gitignore":
			opts.NoGitignore = true
			i++
			continue

		case arg == "--exclude":
			if i+1 >= len(argv) {
				return nil, usageErrorf("--exclude requires a pattern argument")
			}
			opts.Excludes = append(opts.Excludes, argv[i+1])
			i += 2
			continue

		case strings.HasPrefix(arg, "--exclude="):
			opts.Excludes = append(opts.Excludes, strings.TrimPrefix(arg, "--exclude="))
			i++
			continue

		case arg == "-k" || arg == "--keywords":
			if i+1 >= len(argv) {
				return nil, usageErrorf("%s requires a value", arg)
			}
			opts.Keywords = argv[i+1]
			i += 2
			continue

		case strings.HasPrefix(arg, "--keywords="):
			opts.Keywords = strings.TrimPrefix(arg, "--keywords=")
			i++
			continue

		case arg == "--filerank-weight":
			if i+1 >= len(argv) {
				return nil, usageErrorf("--filerank-weight requires a value")
			}
			opts.FilerankWeight = argv[i+1]
			i += 2
			continue

		case strings.HasPrefix(arg, "--filerank-weight="):
			opts.FilerankWeight = strings.TrimPrefix(arg, "--filerank-weight=")
			i++
			continue

		case arg == "--filerank-cutoff":
			if i+1 >= len(argv) {
				return nil, usageErrorf("--filerank-cutoff requires a value")
			}
			opts.FilerankCutoff = argv[i+1]
			i += 2
			continue

		case strings.HasPrefix(arg, "--filerank-cutoff="):
			opts.FilerankCutoff = strings.TrimPrefix(arg, "--filerank-cutoff=")
			i++
			continue

		case arg == "--filerank-debug":
			opts.FilerankDebug = true
			i++
			continue

		case arg == "-b" || arg == "--token-budget":
			if i+1 >= len(argv) {
				return nil, usageErrorf("%s requires a value", arg)
			}
			n, err := parseIntArg(argv[i+1])
			if err != nil {
				return nil, usageErrorf("invalid token budget %q: %v", argv[i+1], err)
			}
			opts.TokenBudget = n
			opts.HasTokenBudget = true
			i += 2
			continue

		case strings.HasPrefix(arg, "--token-budget="):
			n, err := parseIntArg(strings.TrimPrefix(arg, "--token-budget="))
			if err != nil {
				return nil, usageErrorf("invalid token budget: %v", err)
			}
			opts.TokenBudget = n
			opts.HasTokenBudget = true
			i++
			continue

		case arg == "--token-model":
			if i+1 >= len(argv) {
				return nil, usageErrorf("--token-model requires a value")
			}
			opts.TokenModel = argv[i+1]
			i += 2
			continue

		case strings.HasPrefix(arg, "--token-model="):
			opts.TokenModel = strings.TrimPrefix(arg, "--token-model=")
			i++
			continue

		case arg == "-D":
			opts.Diagnostics = true
			i++
			continue

		case arg == "-d":
			opts.Debug = true
			i++
			continue

		case strings.HasPrefix(arg, "-"):
			return nil, usageErrorf("unknown option %q", arg)

		default:
			// A bare positional before -f is still a file/pattern input;
			// the teacher's walker accepted this too.
			opts.Files = append(opts.Files, arg)
			i++
			continue
		}
	}

	return opts, nil
}

// scanValue resolves one of the attached-value short/long flag forms:
//
//	-c value        (bare, value is the next argv element)
//	-c@file -c@-    (attached @-prefixed form)
//	-c=inline       (attached =-prefixed form)
//	-cglued         (attached bare form, no separator)
//	--command value
//	--command=value
//
// It returns the raw value (still carrying its @/=/bare marker, which
// internal/emit.ResolveArgValue interprets) and how many argv slots were
// consumed starting at i.
func scanValue(arg string, argv []string, i int, short, long string) (string, int, error) {
	if long != "" && strings.HasPrefix(arg, long+"=") {
		val := strings.TrimPrefix(arg, long+"=")
		if val == "" {
			return "", 0, usageErrorf("%s= requires a non-empty value", long)
		}
		return val, 1, nil
	}
	if long != "" && arg == long {
		if i+1 >= len(argv) {
			return "", 0, usageErrorf("%s requires a value", long)
		}
		return argv[i+1], 2, nil
	}

	if arg == short {
		if i+1 >= len(argv) {
			return "", 0, usageErrorf("%s requires a value", short)
		}
		return argv[i+1], 2, nil
	}

	// Attached form: -cVALUE, where VALUE keeps its @/=/bare marker.
	rest := strings.TrimPrefix(arg, short)
	if rest == "" {
		return "", 0, usageErrorf("%s requires a value", short)
	}
	if strings.HasPrefix(rest, "=") && len(rest) == 1 {
		return "", 0, usageErrorf("%s= requires a non-empty value", short)
	}
	return rest, 1, nil
}

// scanOutput resolves the -o / -o@<path> / -oclipboard / --output=@<path>
// forms. Unlike -c/-s, bare "-o" with nothing attached and no following
// value takes no argument at all: it selects the default stdout sink
// explicitly. A following bare word ("-o clipboard") is accepted as an
// ergonomic superset of the attached forms the table lists.
func scanOutput(arg string, argv []string, i int) (string, int, error) {
	if strings.HasPrefix(arg, "--output=") {
		val := strings.TrimPrefix(arg, "--output=")
		if val == "" {
			return "", 0, usageErrorf("--output= requires a value")
		}
		return val, 1, nil
	}
	if arg == "--output" {
		if i+1 >= len(argv) {
			return "", 0, usageErrorf("--output requires a value")
		}
		return argv[i+1], 2, nil
	}

	if arg == "-o" {
		if i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
			return argv[i+1], 2, nil
		}
		return "", 1, nil
	}

	rest := strings.TrimPrefix(arg, "-o")
	return rest, 1, nil
}

func parseIntArg(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, fmt.Errorf("empty integer")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a non-negative integer")
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// HelpText renders the -h/--help output: every flag in the external
// interface table, column-aligned, in the teacher-adjacent
// ImmaZoni-PromptPacker setupUsage() style (fmt padding to the widest flag
// over a static flag/description list rather than flag.VisitAll, since
// these flags are not registered with the stdlib flag package).
func HelpText() string {
	rows := [][2]string{
		{"-f <paths...>", "Begin file/pattern list (all remaining args are inputs)"},
		{"-c, --command <arg>", "User instructions: @file, @-, =inline, or literal"},
		{"-C", "Alias for -c @- (read stdin as user instructions)"},
		{"-s <arg>", "System instructions: @file, @-, =inline, literal, or glued"},
		{"-e[arg], --editor-comments[=arg]", "Enable PR-style response guide, optional body"},
		{"-t", "Full file tree"},
		{"-T", "Filtered file tree (included files and their ancestors only)"},
		{"-m, --code-map", "Emit code map via the codemap collaborator"},
		{"-o, -o@<path>, --output=@<path>", "Output sink: stdout, file, or clipboard"},
		{"--no-gitignore", "Disable the Ignore Engine (.git/ stays excluded)"},
		{"--exclude <pattern>", "Add a CLI-seeded ignore rule (repeatable)"},
		{"-k, --keywords tok:factor,...", "Keyword boosts for FileRank"},
		{"--filerank-weight path:x,content:y,size:z,tfidf:w", "Override FileRank scoring weights"},
		{"--filerank-cutoff ratio:v|topk:n|percentile:p|auto", "Cutoff policy for FileRank"},
		{"--filerank-debug", "Emit ranker debug table on stderr"},
		{"-b, --token-budget N", "Token budget"},
		{"--token-model M", "Tokenizer model"},
		{"-D", "Token diagnostics table"},
		{"-d", "Verbose debug logging"},
		{"-h, --help", "This help text"},
	}

	var b strings.Builder
	b.WriteString("Usage: llmctx [options] [-f paths...]\n\n")
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, r[0], r[1])
	}
	return b.String()
}
