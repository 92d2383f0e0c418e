// Package cmd implements the CLI application to manage a money book.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

// Commands lists all the subcommands of the application. A main package
// registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&addAssetCmd{},
	&updateValueCmd{},
	&retireAssetCmd{},
	&refreshCmd{},
	&addTxCmd{},
	&editTxCmd{},
	&deleteTxCmd{},
	&txCmd{},
	&summaryCmd{},
	&monthlyCmd{},
	&historyCmd{},
	&syncCmd{},
	&assistCmd{},
	&topicCmd{},
	&fmtCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookDir = flag.String("book-dir", ".", "Path to the directory holding book files (JSONL format)")
var bookName = flag.String("book", "", "Book to work on. Defaults to the only book if one exists.")

// DecodeBook loads the app's selected book from the book directory.
func DecodeBook() (*moneybook.Book, error) {
	return moneybook.FindBook(*bookDir, *bookName)
}

// SaveBook rewrites the book's file in the book directory.
func SaveBook(b *moneybook.Book) error {
	return moneybook.SaveBook(*bookDir, b)
}

// printMarkdown renders markdown for the terminal. If rendering fails the
// raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// parseDateFlag parses a -d style flag value, empty meaning today.
func parseDateFlag(s string) (moneybook.Date, error) {
	if s == "" {
		return moneybook.Today(), nil
	}
	return moneybook.ParseDate(s)
}

// errorf reports a command error on stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
