package cmd

import (
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
)

// globalFlags are persistent flags shared by all commands.
type globalFlags struct {
	baseURL   string
	timeoutMs int
	cacheDir  string
	cacheSize string
	noCache   bool
	jobs      int
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.baseURL, "base-url", "u", "",
		"root URL of the name matching service")
	pf.IntVarP(&f.timeoutMs, "timeout", "t", 0,
		"timeout of one lookup in milliseconds")
	pf.StringVar(&f.cacheDir, "cache-dir", "",
		"keep the response cache in this directory between runs")
	pf.StringVar(&f.cacheSize, "cache-size", "",
		`maximal size of the response cache, for example "50 MiB"`)
	pf.BoolVar(&f.noCache, "no-cache", false,
		"send every request to the service")
	pf.IntVarP(&f.jobs, "jobs", "j", 0,
		"number of concurrent lookups for bulk requests")
}

// options converts flags set by the user into config options.
func (f *globalFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	changed := cmd.Flags().Changed

	if changed("base-url") {
		res = append(res, config.OptClientBaseURL(f.baseURL))
	}
	if changed("timeout") {
		res = append(res, config.OptClientTimeoutMs(f.timeoutMs))
	}
	if changed("cache-dir") {
		res = append(res, config.OptCacheDir(f.cacheDir))
	}
	if changed("cache-size") {
		res = append(res, config.OptCacheSize(f.cacheSize))
	}
	if changed("no-cache") {
		enabled := !f.noCache
		res = append(res, config.OptCacheEnabled(&enabled))
	}
	if changed("jobs") {
		res = append(res, config.OptJobsNumber(f.jobs))
	}
	return res
}
