package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/junglore/chat-engine/internal/cache"
	"github.com/junglore/chat-engine/internal/chat"
	"github.com/junglore/chat-engine/internal/intent"
	"github.com/junglore/chat-engine/internal/storage"
)

const commandTimeout = 30 * time.Second

// newCheckDBCmd verifies connectivity to every backing store.
func newCheckDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Verify connectivity to Postgres, the document store, and the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			failures := 0

			// Postgres
			db, err := sql.Open("postgres", cfg.Postgres.DSN)
			if err == nil {
				err = db.PingContext(ctx)
			}
			if err != nil {
				ui.Error("Postgres: %v", err)
				failures++
			} else {
				ui.Success("Postgres reachable")
				var content int
				if qerr := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content WHERE status = 'PUBLISHED'").Scan(&content); qerr == nil {
					ui.Field("published content", "%d", content)
				}
				var sessions int
				if qerr := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chatbot_sessions").Scan(&sessions); qerr == nil {
					ui.Field("sessions", "%d", sessions)
				}
				db.Close()
			}

			// Document store
			packages, err := storage.NewPackageStore(ctx, storage.PackageStoreConfig{
				URI:        cfg.Mongo.URI,
				Database:   cfg.Mongo.Database,
				Collection: cfg.Mongo.Collection,
				Timeout:    cfg.Mongo.Timeout,
			})
			if err != nil {
				ui.Error("Document store: %v", err)
				failures++
			} else {
				ui.Success("Document store reachable")
				if count, cerr := packages.Count(ctx); cerr == nil {
					ui.Field("packages", "%d", count)
					if count == 0 {
						ui.Warning("Package collection is empty; expedition replies will apologize")
					}
				}
				packages.Close(ctx)
			}

			// Cache
			if cfg.Cache.Driver == "redis" {
				redisClient, err := cache.NewRedisClient(cache.RedisConfig{
					Addr:     cfg.Cache.Redis.Addr,
					Password: cfg.Cache.Redis.Password,
					DB:       cfg.Cache.Redis.DB,
					PoolSize: cfg.Cache.Redis.PoolSize,
				})
				if err != nil {
					ui.Error("Redis: %v", err)
					failures++
				} else {
					ui.Success("Redis reachable")
					redisClient.Close()
				}
			} else {
				ui.Info("Cache driver is %q; nothing to check", cfg.Cache.Driver)
			}

			if failures > 0 {
				return fmt.Errorf("%d dependency check(s) failed", failures)
			}
			return nil
		},
	}
}

// newPackagesCmd lists expedition packages from the document store.
func newPackagesCmd() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List expedition packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			store, err := storage.NewPackageStore(ctx, storage.PackageStoreConfig{
				URI:        cfg.Mongo.URI,
				Database:   cfg.Mongo.Database,
				Collection: cfg.Mongo.Collection,
				Timeout:    cfg.Mongo.Timeout,
			})
			if err != nil {
				return fmt.Errorf("connect package store: %w", err)
			}
			defer store.Close(ctx)

			packages, err := store.FindExpeditions(ctx, location, cfg.Chat.MaxPackagesToSearch)
			if err != nil {
				return fmt.Errorf("list packages: %w", err)
			}

			ui.Result("packages", packages)
			if !outputJSON {
				for _, pkg := range packages {
					ui.Info("%s", pkg.Title)
					ui.Field("park", "%s", chat.ParkName(pkg))
					ui.Field("region", "%s", pkg.Region)
					ui.Field("duration", "%s", pkg.Duration)
				}
				ui.Success("%d package(s)", len(packages))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "filter by location substring")
	return cmd
}

// newContentCmd searches published editorial content the way the reply
// cascade does.
func newContentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content <query>",
		Short: "Search published content with relevance scoring",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			db, err := sql.Open("postgres", cfg.Postgres.DSN)
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer db.Close()

			query := strings.Join(args, " ")
			resolver := chat.NewContentResolver(storage.NewArticleRepository(db), cfg.Chat.MaxContentResults, logger)
			matches := resolver.Resolve(ctx, query)

			ui.Result("matches", matches)
			if !outputJSON {
				for _, m := range matches {
					ui.Info("%s", m.Article.Title)
					ui.Field("score", "%d", m.Score)
					ui.Field("slug", "%s", m.Article.Slug)
				}
				ui.Success("%d match(es) for %q", len(matches), query)
			}
			return nil
		},
	}
}

// newClassifyCmd dry-runs intent classification on a message.
func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Show how a message would be classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			result := intent.NewClassifier().Detect(message)

			ui.Result("classification", result)
			if !outputJSON {
				ui.Field("travel", "%t", result.TravelIntent)
				ui.Field("expedition", "%t", result.ExpeditionIntent)
				ui.Field("blog", "%t", result.BlogIntent)
				ui.Field("ai_info", "%t", result.AIIntent)
				ui.Field("gate_prediction", "%t", result.GatePredictionIntent)
				ui.Field("locations", "%s", strings.Join(result.Locations, ", "))
			}
			return nil
		},
	}
}
