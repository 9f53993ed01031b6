package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/example/go-subword/internal/bpe"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var (
		codesPath      string
		inputPath      string
		outputPath     string
		vocabPath      string
		vocabThreshold int
		glossaries     []string
		caseFeature    bool
		opennmtSep     bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Segment text with learned BPE merge operations",
		RunE: func(_ *cobra.Command, _ []string) error {
			codes, err := bpe.LoadCodesFile(codesPath)
			if err != nil {
				return err
			}

			var opts []bpe.Option
			if opennmtSep {
				opts = append(opts, bpe.WithSeparator(bpe.OpenNMTSeparator))
			}
			if vocabPath != "" {
				vocab, err := bpe.LoadVocabularyFile(vocabPath, vocabThreshold)
				if err != nil {
					return err
				}
				opts = append(opts, bpe.WithVocabulary(vocab))
			}
			if len(glossaries) > 0 {
				opts = append(opts, bpe.WithGlossaries(glossaries...))
			}
			if caseFeature {
				opts = append(opts, bpe.WithCaseFeature())
			}

			seg := bpe.NewSegmenter(codes, opts...)

			return withLineStreams(inputPath, outputPath, func(line string, out *bufio.Writer) error {
				_, err := fmt.Fprintln(out, seg.SegmentLine(line))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&codesPath, "codes", "c", "", "File with BPE codes (required)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (default: standard input)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: standard output)")
	cmd.Flags().StringVar(&vocabPath, "vocabulary", "", "Vocabulary file; merges producing out-of-vocabulary tokens are reverted")
	cmd.Flags().IntVar(&vocabThreshold, "vocabulary-threshold", 0, "Vocabulary entries with frequency below this are treated as out-of-vocabulary")
	cmd.Flags().StringSliceVar(&glossaries, "glossaries", nil, "Literal strings exempted from merging")
	cmd.Flags().BoolVar(&caseFeature, "case-feature", false, "Segment with lowercased text, annotating tokens with case tags")
	cmd.Flags().BoolVar(&opennmtSep, "opennmt-separator", false, "Use the OpenNMT separator instead of @@")
	_ = cmd.MarkFlagRequired("codes")

	return cmd
}

// withLineStreams opens input and output (stdin/stdout when paths are
// empty), runs fn per input line, and flushes the output.
func withLineStreams(inputPath, outputPath string, fn func(line string, out *bufio.Writer) error) error {
	var in io.Reader = os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var outFile *os.File = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	out := bufio.NewWriter(outFile)

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if err := fn(sc.Text(), out); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
