// Command votesummary prints the current standings and comments from the
// configured store. With --delete it removes a vote first, the operator
// action the widget itself does not expose to participants.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/vncsmyrnk/tamaire/internal/adapters/repository"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/keyvalue"
	"github.com/vncsmyrnk/tamaire/internal/app"
	"github.com/vncsmyrnk/tamaire/internal/config"
	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

func main() {
	fs := pflag.NewFlagSet("votesummary", pflag.ExitOnError)
	cfg := config.Bind(fs)
	deleteID := fs.String("delete", "", "id of a vote to delete before printing")
	withComments := fs.Bool("comments", true, "print comments per team")
	_ = fs.Parse(os.Args[1:])

	if err := cfg.Resolve(); err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closer, err := repository.Open(ctx, *cfg, logger)
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}
	defer closer.Close()

	widget := app.New(ctx, keyvalue.NewGateway(store, keyvalue.Keys{Votes: cfg.VotesKey, Comments: cfg.CommentsKey}, logger), logger)

	if *deleteID != "" {
		if widget.DeleteVote(ctx, *deleteID) {
			fmt.Printf("Deleted vote %s.\n\n", *deleteID)
		} else {
			fmt.Printf("No vote with id %s.\n\n", *deleteID)
		}
	}

	printSummary(os.Stdout, widget.View(), widget.AllComments(), *withComments)
}

func printSummary(out io.Writer, view app.View, comments []domain.Comment, withComments bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tLABEL\tVOTES")
	for _, s := range view.Teams {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Color, s.Label, s.Count)
	}
	fmt.Fprintf(tw, "total\t\t%d\n", view.TotalVotes)
	tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCHOICE\tAT")
	for _, v := range view.Votes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Choice, formatMillis(v.Timestamp))
	}
	tw.Flush()

	if !withComments {
		return
	}
	for _, team := range domain.Teams {
		fmt.Fprintf(out, "\n%s comments:\n", team.Label())
		for _, c := range comments {
			if c.TeamColor != team {
				continue
			}
			fmt.Fprintf(out, "  [%s] %s: %s\n", formatMillis(c.Timestamp), c.UserName, c.Text)
		}
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
