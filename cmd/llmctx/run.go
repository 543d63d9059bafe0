package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/llm-ctx/llm-ctx/internal/budget"
	"github.com/llm-ctx/llm-ctx/internal/classify"
	"github.com/llm-ctx/llm-ctx/internal/clipboard"
	"github.com/llm-ctx/llm-ctx/internal/config"
	"github.com/llm-ctx/llm-ctx/internal/emit"
	"github.com/llm-ctx/llm-ctx/internal/ignore"
	"github.com/llm-ctx/llm-ctx/internal/ingest"
	"github.com/llm-ctx/llm-ctx/internal/llmctxlog"
	"github.com/llm-ctx/llm-ctx/internal/rank"
)

// stdinContentName is the synthetic CandidateFile path spec §4.5 assigns
// to piped standard input.
const stdinContentName = "stdin_content"

// run wires the pipeline end to end: parse args, load ambient config,
// plan ingest, capture stdin, rank, emit, audit budget, write to a sink.
// It returns the process exit code rather than calling os.Exit directly,
// so tests can drive it without forking.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer, stdinIsTTY bool) int {
	opts, err := ParseArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	if opts.Help {
		fmt.Fprint(stdout, HelpText())
		return ExitSuccess
	}

	llmctxlog.Setup(opts.Debug)

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		fmt.Fprintf(stderr, "warning: loading config: %v\n", cfgErr)
	}

	engine := ignore.NewEngine()
	engine.SetEnabled(!opts.NoGitignore)
	if werr := engine.LoadTree("."); werr != nil {
		fmt.Fprintf(stderr, "warning: loading ignore rules: %v\n", werr)
	}
	for _, pattern := range opts.Excludes {
		engine.AddRule(pattern, "cli")
	}

	planner := ingest.NewPlanner(engine)
	planner.NoGitignore = opts.NoGitignore
	planner.Permissive = opts.NoGitignore
	planner.ControlRatio = classify.DefaultControlRatio

	candidates, warnings := planner.Plan(opts.Files)
	for _, w := range warnings {
		fmt.Fprintln(stderr, "warning:", w.String())
	}

	stdinUsed := false
	resolve := func(raw string, has bool) (string, error) {
		if !has {
			return "", nil
		}
		if raw == "@-" {
			stdinUsed = true
		}
		return emit.ResolveArgValue(raw, stdin)
	}

	userInstructions, err := resolve(opts.UserInstructions, opts.HasUserInstructions)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitIO
	}
	systemInstructions, err := resolve(opts.SystemInstructions, opts.HasSystemInstructions)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitIO
	}
	editorBody, err := resolve(opts.EditorCommentsBody, opts.EditorCommentsBody != "")
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitIO
	}

	var stdinFile *ingest.CandidateFile
	var stdinContent string
	stdinHint := ""
	if !stdinUsed && !stdinIsTTY {
		blob, serr := ingest.CaptureStdin(stdin)
		if serr != nil {
			fmt.Fprintf(stderr, "warning: reading stdin: %v\n", serr)
		} else if len(blob.Bytes) > 0 {
			if blob.Truncated {
				fmt.Fprintln(stderr, "warning: stdin truncated at 8 MiB")
			}
			stdinContent = string(blob.Bytes)
			stdinHint = stdinFenceHint(blob.Kind)
			stdinFile = &ingest.CandidateFile{
				Path:     stdinContentName,
				Size:     int64(len(blob.Bytes)),
				IsBinary: blob.Kind == ingest.KindBinary,
			}
		}
	}

	if len(candidates) == 0 && stdinFile == nil && !opts.HasUserInstructions && !opts.HasSystemInstructions {
		fmt.Fprintln(stderr, "error: No input provided.")
		return exitCode(ErrNoInput)
	}

	if stdinFile != nil {
		candidates = append([]ingest.CandidateFile{*stdinFile}, candidates...)
	}

	contents, ioErr := loadContents(candidates, stdinContent)
	if ioErr != nil {
		fmt.Fprintln(stderr, "error:", ioErr)
		return ExitIO
	}

	weights := rank.DefaultWeights()
	if cfg.Defaults.WeightPath != 0 {
		weights.Path = cfg.Defaults.WeightPath
	}
	if cfg.Defaults.WeightContent != 0 {
		weights.Content = cfg.Defaults.WeightContent
	}
	if cfg.Defaults.WeightTFIDF != 0 {
		weights.TFIDF = cfg.Defaults.WeightTFIDF
	}
	if cfg.Defaults.WeightSize != 0 {
		weights.Size = cfg.Defaults.WeightSize
	}
	if opts.FilerankWeight != "" {
		parsed, warns := rank.ParseWeights(opts.FilerankWeight)
		for _, w := range warns {
			fmt.Fprintln(stderr, "warning:", w)
		}
		weights = parsed
	}

	boosts, boostWarnings := rank.ParseBoosts(opts.Keywords)
	for _, w := range boostWarnings {
		fmt.Fprintln(stderr, "warning:", w)
	}

	policy := rank.Policy{Kind: rank.PolicyNone}
	if opts.FilerankCutoff != "" {
		parsed, warns := rank.ParsePolicy(opts.FilerankCutoff)
		for _, w := range warns {
			fmt.Fprintln(stderr, "warning:", w)
		}
		policy = parsed
	}

	var included []ingest.CandidateFile
	if opts.HasUserInstructions && userInstructions != "" {
		rankCandidates := make([]rank.Candidate, len(candidates))
		for i, c := range candidates {
			rankCandidates[i] = rank.Candidate{Path: c.Path, Size: c.Size, Content: contents[c.Path]}
		}
		scored := rank.Score(rankCandidates, userInstructions, weights, boosts)
		kept := rank.Apply(scored, policy)

		if opts.FilerankDebug {
			fmt.Fprint(stderr, rank.FormatDebugReport(userInstructions, scored, kept))
		}

		byPath := make(map[string]ingest.CandidateFile, len(candidates))
		for _, c := range candidates {
			byPath[c.Path] = c
		}
		for _, s := range kept {
			cf := byPath[s.Path]
			cf.Score = s.Score
			cf.HitCount = s.HitCount
			included = append(included, cf)
		}
	} else {
		included = candidates
	}

	doc := &emit.Document{}
	doc.Add(emit.SectionSystemInstructions, systemInstructions)
	doc.Add(emit.SectionUserInstructions, userInstructions)

	reviewMode := opts.EditorComments
	if reviewMode || userInstructions != "" {
		doc.Add(emit.SectionResponseGuide, emit.ResponseGuide(reviewMode, editorBody))
	}

	allPaths := pathsOf(candidates)
	includedPaths := pathsOf(included)

	if opts.TreeFull {
		doc.Add(emit.SectionFileTree, emit.RenderTree(emit.BuildTree(allPaths)))
	} else if opts.TreeFiltered {
		doc.Add(emit.SectionFileTree, emit.RenderTree(emit.FilterTree(emit.BuildTree(allPaths), includedPaths)))
	}

	if opts.CodeMap {
		extractor, cmErr := emit.NewTreeSitterCodemap()
		if cmErr != nil {
			fmt.Fprintf(stderr, "warning: code map unavailable: %v\n", cmErr)
		} else {
			byteContents := make(map[string][]byte, len(included))
			for _, c := range included {
				byteContents[c.Path] = []byte(contents[c.Path])
			}
			doc.Add(emit.SectionCodeMap, emit.RenderCodeMap(extractor, includedPaths, byteContents))
			extractor.Close()
		}
	}

	_, toFile := resolveSink(opts, stdout, stderr).(emit.FileSink)
	entries := make([]emit.FileEntry, 0, len(included))
	for _, c := range included {
		langHint := ""
		if toFile {
			langHint = langHintFor(c.Path, stdinHint)
		}
		entries = append(entries, emit.FileEntry{
			Path:     c.Path,
			LangHint: langHint,
			IsBinary: c.IsBinary,
			Body:     contents[c.Path],
		})
	}
	doc.Add(emit.SectionFileContext, emit.RenderFileContext(entries))

	output := doc.Render()

	tokenBudget := 0
	if cfg.Defaults.TokenBudget > 0 {
		tokenBudget = cfg.Defaults.TokenBudget
	}
	if opts.HasTokenBudget {
		tokenBudget = opts.TokenBudget
	}
	model := budget.DefaultModel
	if cfg.Defaults.TokenModel != "" {
		model = cfg.Defaults.TokenModel
	}
	if opts.TokenModel != "" {
		model = opts.TokenModel
	}

	if tokenBudget > 0 || opts.Diagnostics {
		tok, tokErr := budget.NewTiktoken(model)
		if tokErr != nil {
			budget.WarnUnavailableOnce(tokErr.Error())
			fmt.Fprintln(stderr, "warning: tokenizer unavailable, skipping budget audit")
		} else {
			sections := budgetSections(doc, entries)
			result := budget.Audit(tok, output, tokenBudget, sections, opts.Diagnostics)
			if opts.Diagnostics {
				fmt.Fprint(stderr, budget.FormatBreakdown(result))
			}
			if result.OverBudget {
				fmt.Fprintln(stderr, budget.FormatOverBudgetError(result.Total, result.Budget))
				return ExitBudget
			}
		}
	}

	sink := resolveSink(opts, stdout, stderr)
	if werr := sink.Write(output); werr != nil {
		fmt.Fprintln(stderr, "error:", werr)
		return ExitIO
	}

	return ExitSuccess
}

// loadContents reads the full body of every non-binary candidate. The
// synthetic stdin_content entry uses the bytes already captured instead of
// touching the filesystem. A read failure on the single explicit input the
// invocation was given is fatal (IoFatal per spec §7); otherwise it is
// skipped with the candidate left out of contents (rendered as empty).
func loadContents(candidates []ingest.CandidateFile, stdinContent string) (map[string]string, error) {
	contents := make(map[string]string, len(candidates))
	singleInput := len(candidates) == 1

	for _, c := range candidates {
		if c.Path == stdinContentName {
			contents[c.Path] = stdinContent
			continue
		}
		if c.IsBinary {
			continue
		}
		data, err := os.ReadFile(c.Path)
		if err != nil {
			if singleInput {
				return nil, fmt.Errorf("reading %s: %w", c.Path, err)
			}
			continue
		}
		contents[c.Path] = string(data)
	}
	return contents, nil
}

func pathsOf(candidates []ingest.CandidateFile) []string {
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.Path
	}
	return paths
}

func langHintFor(path, stdinHint string) string {
	if path == stdinContentName {
		return stdinHint
	}
	return classify.LanguageHint(path)
}

// stdinFenceHint maps a sniffed stdin content kind to the fence-language
// annotation used for its <file_context> block.
func stdinFenceHint(kind ingest.ContentKind) string {
	switch kind {
	case ingest.KindDiff:
		return "diff"
	case ingest.KindJSON:
		return "json"
	case ingest.KindXML:
		return "xml"
	case ingest.KindMarkdown:
		return "markdown"
	default:
		return ""
	}
}

// budgetSections builds the -D diagnostic section list: one entry for
// every non-file-context document section, plus one per included file so
// the breakdown can attribute tokens at file granularity rather than only
// lumping every file body into one "file_context" bucket.
func budgetSections(doc *emit.Document, entries []emit.FileEntry) []budget.Section {
	var sections []budget.Section
	for _, s := range doc.Sections {
		if s.Kind == emit.SectionFileContext {
			continue
		}
		sections = append(sections, budget.Section{Name: s.Kind.Tag(), Body: s.Body})
	}
	for _, e := range entries {
		sections = append(sections, budget.Section{
			Name: "file:" + e.Path,
			Body: emit.RenderFileContext([]emit.FileEntry{e}),
		})
	}
	return sections
}

// resolveSink picks the output destination from -o's resolved forms:
// "clipboard" (literal, matching -o clipboard), "@<path>" (file), or any
// other non-empty value treated as a bare file path. No -o at all, or
// bare -o with nothing attached, means stdout.
func resolveSink(opts *Options, stdout, stderr io.Writer) emit.Sink {
	if !opts.HasOutput || opts.Output == "" {
		return emit.StdoutSink{Writer: stdout}
	}
	if opts.Output == "clipboard" {
		return emit.ClipboardSink{Clip: clipboard.System{}}
	}
	path := strings.TrimPrefix(opts.Output, "@")
	return emit.FileSink{Path: path, Diagnostic: stderr}
}
