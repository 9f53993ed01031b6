package main

import (
	"bufio"
	"fmt"

	"github.com/example/go-subword/internal/bpe"
	"github.com/spf13/cobra"
)

func newDetokCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "detok",
		Short: "Detokenize text with OpenNMT separator and case features",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withLineStreams(inputPath, outputPath, func(line string, out *bufio.Writer) error {
				_, err := fmt.Fprintln(out, bpe.DetokenizeLine(line))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (default: standard input)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: standard output)")

	return cmd
}
