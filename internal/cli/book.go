package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/walletcore/internal/core/domain"
)

var bookNote string

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage saved recipient addresses",
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved recipients, most recently used first",
	Run:   runBookList,
}

var bookAddCmd = &cobra.Command{
	Use:   "add <name> <address>",
	Short: "Save a recipient address",
	Args:  cobra.ExactArgs(2),
	Run:   runBookAdd,
}

var bookRemoveCmd = &cobra.Command{
	Use:   "remove <name-or-address>",
	Short: "Remove a saved recipient",
	Args:  cobra.ExactArgs(1),
	Run:   runBookRemove,
}

func init() {
	bookAddCmd.Flags().StringVar(&bookNote, "note", "", "optional note")
	bookCmd.AddCommand(bookListCmd, bookAddCmd, bookRemoveCmd)
	rootCmd.AddCommand(bookCmd)
}

func runBookList(cmd *cobra.Command, args []string) {
	app := newWallet()

	entries := app.Book().List(context.Background())
	if len(entries) == 0 {
		fmt.Println("No saved recipients.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "NAME\tADDRESS\tNOTE\tLAST USED")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Name,
			domain.ShortAddress(e.Address),
			e.Note,
			time.Unix(e.LastUsed, 0).Format(time.RFC3339),
		)
	}
	_ = w.Flush()
}

func runBookAdd(cmd *cobra.Command, args []string) {
	app := newWallet()

	entry, err := app.Book().Add(context.Background(), args[0], args[1], bookNote)
	if err != nil {
		slog.Error("Failed to save recipient", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s -> %s\n", entry.Name, entry.Address)
}

func runBookRemove(cmd *cobra.Command, args []string) {
	app := newWallet()
	ctx := context.Background()

	entry, err := app.Book().Lookup(ctx, args[0])
	if err != nil {
		slog.Error("Recipient not found", "recipient", args[0])
		os.Exit(1)
	}
	if err := app.Book().Remove(ctx, entry.ID); err != nil {
		slog.Error("Failed to remove recipient", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %s\n", entry.Name)
}
