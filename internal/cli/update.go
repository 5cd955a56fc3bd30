package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"

	"github.com/matzehuels/netdraw/pkg/buildinfo"
	"github.com/matzehuels/netdraw/pkg/cache"
	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// releaseCheck is the cached outcome of a release lookup.
type releaseCheck struct {
	Checked  string `json:"checked"`
	Latest   string `json:"latest"`
	Outdated bool   `json:"outdated"`
}

// updateCommand creates the update command.
func (c *CLI) updateCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for a newer netdraw release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if buildinfo.Version == "dev" {
				printInfo("Development build; release check skipped")
				return nil
			}

			ctx := cmd.Context()
			res, err := c.checkRelease(ctx, buildinfo.Version, refresh)
			if err != nil {
				return err
			}
			if res.Outdated {
				printWarning("A new version is available: %s (you have %s)", res.Latest, buildinfo.Version)
				printDetail("https://github.com/%s/%s/releases", repoOwner, repoName)
				return nil
			}
			printSuccess("You are using the latest version: %s", buildinfo.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached answer")

	return cmd
}

// checkRelease asks GitHub for the latest tag, caching the answer for a day.
func (c *CLI) checkRelease(ctx context.Context, current string, refresh bool) (releaseCheck, error) {
	cfg, err := c.config()
	if err != nil {
		return releaseCheck{}, err
	}
	ch, err := c.newCache(ctx, cfg, false)
	if err != nil {
		ch = cache.NewNullCache()
	}
	defer ch.Close()

	key := cache.NewDefaultKeyer().ReleaseKey(repoOwner, repoName)
	if !refresh {
		if data, ok, _ := ch.Get(ctx, key); ok {
			var cached releaseCheck
			if json.Unmarshal(data, &cached) == nil && cached.Checked == current {
				c.Logger.Debug("release check cached", "latest", cached.Latest)
				return cached, nil
			}
		}
	}

	spinner := newSpinnerWithContext(ctx, "Checking for updates...")
	spinner.Start()
	res, err := latest.Check(&latest.GithubTag{Owner: repoOwner, Repository: repoName}, current)
	spinner.Stop()
	if err != nil {
		return releaseCheck{}, errs.Wrap(errs.ErrCodeNetwork, err, "check latest release")
	}

	rc := releaseCheck{Checked: current, Latest: res.Current, Outdated: res.Outdated}
	if data, err := json.Marshal(rc); err == nil {
		if err := ch.Set(ctx, key, data, cache.TTLRelease); err != nil {
			c.Logger.Debug("cache release check", "err", err)
		}
	}
	return rc, nil
}
