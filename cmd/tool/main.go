package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"stocksvc/cmd"
	"stocksvc/internal"
	"stocksvc/internal/cache"
	"stocksvc/internal/domain"

	"github.com/spf13/cobra"
	_ "github.com/lib/pq"
)

func main() {
	root := &cobra.Command{
		Use:   "stocksvc-tool",
		Short: "Operational commands for the stock quote service",
	}

	root.AddCommand(
		newQuoteCmd(),
		newPurchaseCmd(),
		newCacheCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newQuoteCmd() *cobra.Command {
	var date string

	quoteCmd := &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Fetch a composite quote, going through the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			apiHandler, db, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(apiHandler, db)

			quote, err := apiHandler.StockService.GetStock(context.Background(), args[0], date)
			if err != nil {
				return err
			}
			internal.Pprint(quote)
			return nil
		},
	}
	quoteCmd.Flags().StringVar(&date, "date", "", "trading date (YYYY-MM-DD), defaults to the last business day")

	return quoteCmd
}

func newPurchaseCmd() *cobra.Command {
	purchaseCmd := &cobra.Command{
		Use:   "purchase",
		Short: "Manage recorded purchase amounts",
	}

	purchaseCmd.AddCommand(&cobra.Command{
		Use:   "set SYMBOL AMOUNT",
		Short: "Record the purchased amount for a symbol",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			apiHandler, db, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(apiHandler, db)

			row, err := apiHandler.PurchaseService.RecordPurchase(context.Background(), args[0], amount)
			if err != nil {
				return err
			}
			internal.Pprint(row)
			return nil
		},
	})

	return purchaseCmd
}

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the quote cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "flush SYMBOL",
		Short: "Drop all cached quotes for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sym := domain.NormalizeSymbol(args[0])
			if sym == "" {
				return domain.ErrInvalidSymbol
			}

			secrets, err := internal.LoadSecrets()
			if err != nil {
				return err
			}
			if secrets.Redis.Addr == "" {
				return fmt.Errorf("no redis configured; the in-memory cache is per-process and cannot be flushed externally")
			}

			ctx := context.Background()
			redisCache, err := cache.NewRedisCache(ctx, secrets.Redis.Addr, secrets.Redis.Password, secrets.Redis.Db)
			if err != nil {
				return err
			}
			defer redisCache.Close()

			deleted, err := redisCache.DeleteByPrefix(ctx, cache.StockPrefix(sym))
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d cached quotes\n", deleted)
			return nil
		},
	})

	return cacheCmd
}
