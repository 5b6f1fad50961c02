package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhl/internal/logging"
	"github.com/yaklabco/mdhl/pkg/config"
	"github.com/yaklabco/mdhl/pkg/stylecache"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the style cache",
		Long: `The style cache keeps the styles of highlighted files between runs so an
unchanged file is not scanned again and an edited one resumes from the
first changed line. Enable it with cache.enabled in the configuration.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("cleared style cache", logging.FieldCachePath, cache.Dir())
			return nil
		},
	})

	return cmd
}

func openCache(cmd *cobra.Command) (*stylecache.Cache, error) {
	sess, err := loadSession(cmd, &config.Config{})
	if err != nil {
		return nil, err
	}
	cache, err := stylecache.Open(sess.cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("open style cache: %w", err)
	}
	return cache, nil
}
