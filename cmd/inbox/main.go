// Command inbox prints the most recent contact form messages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/database"
	"github.com/stemsi/portfolio-backend/internal/logger"
	"github.com/stemsi/portfolio-backend/internal/model"
	"github.com/stemsi/portfolio-backend/internal/repository"
)

func main() {
	var (
		limit int
		full  bool
	)
	flag.IntVar(&limit, "limit", 20, "Number of messages to show")
	flag.BoolVar(&full, "full", false, "Print full message bodies")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, "pretty")

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	msgs, err := repository.NewContactRepository(pool).ListRecent(ctx, limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list contact messages")
	}

	if len(msgs) == 0 {
		fmt.Println("Inbox is empty.")
		return
	}

	if full {
		for _, m := range msgs {
			printFull(m)
		}
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tFROM\tSUBJECT")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%d\t%s\t%s <%s>\t%s\n",
			m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Name, m.Email, truncate(m.Subject, 60))
	}
	tw.Flush()
}

func printFull(m model.ContactMessage) {
	fmt.Printf("#%d  %s\n", m.ID, m.CreatedAt.Local().Format(time.RFC1123))
	fmt.Printf("From:    %s <%s>\n", m.Name, m.Email)
	fmt.Printf("Subject: %s\n\n", m.Subject)
	fmt.Println(m.Message)
	fmt.Println(strings.Repeat("─", 60))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
