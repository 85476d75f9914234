package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/cache"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solution cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached solutions and drawings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case backendFile:
			case backendMongo:
				return c.clearMongo(cmd)
			default:
				return apperr.New(apperr.ErrCodeUnsupported, "cache clear supports the file and mongo backends (configured: %s)", c.Config.Cache.Backend)
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}

			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear %s: %w", dir, err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case backendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), "redis://"+c.Config.Cache.RedisAddr)
				return nil
			case backendMongo:
				fmt.Fprintf(cmd.OutOrStdout(), "%s (database %s)\n", c.Config.Cache.MongoURI, c.Config.Cache.MongoDatabase)
				return nil
			case backendNone:
				printWarning("Caching is disabled")
				return nil
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func (c *CLI) clearMongo(cmd *cobra.Command) error {
	mc, err := cache.NewMongoCache(cmd.Context(), c.Config.Cache.MongoURI, c.Config.Cache.MongoDatabase)
	if err != nil {
		return err
	}
	defer mc.Close()
	if err := mc.Clear(cmd.Context()); err != nil {
		return err
	}
	printSuccess("Cleared mongo cache")
	printDetail("Database: %s", c.Config.Cache.MongoDatabase)
	return nil
}
