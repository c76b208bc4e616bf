package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"hisab/internal/cli"
	"hisab/internal/core"
	"hisab/internal/export"
	apphttp "hisab/internal/http"
)

// cli commands / args available
var root struct {
	Serve    serveCmd    `cmd:"" default:"1" help:"Run the ledger web UI."`
	Add      addCmd      `cmd:"" help:"Record an income or expense transaction."`
	List     listCmd     `cmd:"" help:"Print transactions, newest first."`
	Delete   deleteCmd   `cmd:"" help:"Delete a transaction by id."`
	Export   exportCmd   `cmd:"" help:"Export all transactions to a CSV file."`
	DarkMode darkModeCmd `cmd:"" name:"dark-mode" help:"Toggle the persisted dark-mode preference."`
}

func main() {
	cli.LoadEnvFile()
	ctx := kong.Parse(&root)
	ctx.FatalIfErrorf(ctx.Run())
}

type serveCmd struct{}

func (c *serveCmd) Run() error {
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel, grace := cli.NotifyShutdown(context.Background())
	defer cancel()

	book, closeStore := cli.OpenBook(ctx, logger, cfg.DBPath)
	defer closeStore()

	srv := apphttp.NewServer(":"+cfg.Port, book, cfg.RecentLimit)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting hisab server", "port", cfg.Port, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), grace)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

type addCmd struct {
	Amount   string `required:"" help:"Positive decimal amount (dot or comma separator)."`
	Type     string `required:"" enum:"income,expense" help:"Transaction type."`
	Category string `default:"Other" help:"Category label; any string is accepted."`
	Date     string `help:"Calendar date (YYYY-MM-DD), defaults to today."`
}

func (c *addCmd) Run() error {
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	book, closeStore := cli.OpenBook(ctx, logger, cfg.DBPath)
	defer closeStore()

	cents, err := core.ParseDecimalToCents(c.Amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", c.Amount, err)
	}
	date := core.Date(c.Date)
	if date != "" {
		if err := date.Validate(); err != nil {
			return fmt.Errorf("date %q: %w", c.Date, err)
		}
	}

	tx := core.New(core.Money{Cents: cents}, core.Kind(c.Type), c.Category, date)
	if err := book.Add(ctx, tx); err != nil {
		return err
	}
	fmt.Printf("Added %s %s %s on %s (id %d)\n", c.Type, core.FormatINR(tx.Amount.Cents), tx.Category, tx.Date, tx.ID)
	return nil
}

type listCmd struct {
	Month string `help:"Restrict to a year-month token, e.g. 2024-03."`
}

func (c *listCmd) Run() error {
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	book, closeStore := cli.OpenBook(ctx, logger, cfg.DBPath)
	defer closeStore()

	seq := core.FilterByMonth(book.All(), c.Month)
	if len(seq) == 0 {
		fmt.Println("No transactions.")
		return nil
	}
	for _, t := range seq {
		fmt.Printf("%-14d %s  %-8s %-12s %s\n", t.ID, t.Date.Display(), t.Kind, t.Category, core.SignedINR(t))
	}
	fmt.Printf("\nIncome %s  Expense %s  Balance %s\n",
		core.FormatINR(core.TotalIncome(seq).Cents),
		core.FormatINR(core.TotalExpense(seq).Cents),
		core.FormatINR(core.Balance(seq).Cents))
	return nil
}

type deleteCmd struct {
	ID int64 `arg:"" help:"Transaction id."`
}

func (c *deleteCmd) Run() error {
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	book, closeStore := cli.OpenBook(ctx, logger, cfg.DBPath)
	defer closeStore()

	if err := book.Remove(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %d\n", c.ID)
	return nil
}

type exportCmd struct {
	Out string `help:"Output path; defaults to expenses_<date>.csv in the working directory."`
}

func (c *exportCmd) Run() error {
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	book, closeStore := cli.OpenBook(ctx, logger, cfg.DBPath)
	defer closeStore()

	out := c.Out
	if out == "" {
		out = export.Filename(time.Now())
	}
	if err := os.WriteFile(out, []byte(export.CSV(book.All())), 0644); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Printf("Exported %d transactions to %s\n", book.Len(), out)
	return nil
}

type darkModeCmd struct {
	State string `arg:"" enum:"on,off" help:"on or off"`
}

func (c *darkModeCmd) Run() error {
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	book, closeStore := cli.OpenBook(ctx, logger, cfg.DBPath)
	defer closeStore()

	return book.SetDarkMode(ctx, c.State == "on")
}
