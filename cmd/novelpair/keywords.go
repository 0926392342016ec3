package main

import (
	"fmt"
	"strings"

	"github.com/abdulachik/novelpair/internal/keywords"
	"github.com/abdulachik/novelpair/internal/textproc"
	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <text>",
	Short: "Extract keyword phrases from text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKeywords,
}

var keywordsTop int

func init() {
	keywordsCmd.Flags().IntVar(&keywordsTop, "top", keywords.DefaultTopN, "Maximum number of phrases")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	stop, err := textproc.EnglishStopWords()
	if err != nil {
		return err
	}

	for _, phrase := range keywords.Extract(strings.Join(args, " "), stop, keywordsTop) {
		fmt.Println(phrase)
	}
	return nil
}
