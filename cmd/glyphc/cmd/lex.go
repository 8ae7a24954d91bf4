package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyphlang/glyphc/internal/errors"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/source"
)

var lexComments bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Glyph source file and dump the token tree",
	Long: `Tokenize a single Glyph source file and print the resulting token
tree, one token per line, with nesting shown by indentation. Useful for
debugging the character-level scanner.`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexComments, "comments", false, "keep comment tokens in the dump")
}

func lexFile(_ *cobra.Command, args []string) error {
	file, err := source.Load(args[0])
	if err != nil {
		return err
	}

	tokens, lexErrs := lexer.New(file, lexer.WithPreserveComments(lexComments)).Lex()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintln(os.Stderr, errors.AtSource(e.Range, e.Message))
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}

	dumpTokens(tokens, 0)
	return nil
}

func dumpTokens(tokens []lexer.Token, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindParenthesis:
			fmt.Printf("%sParenthesis %s\n", indent, tok.ParenKind)
			dumpTokens(tok.Children, depth+1)
		case lexer.KindCommaList:
			fmt.Printf("%sCommaList (%d groups)\n", indent, len(tok.Groups))
			for _, group := range tok.Groups {
				dumpTokens(group, depth+1)
			}
		default:
			fmt.Printf("%s%s %q\n", indent, tok.Kind, tok.Range.Text())
		}
	}
}
