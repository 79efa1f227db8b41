package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/dndadmin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags below are
// picked out of args (via flagx.FilterArgs), so other components can share
// the command line.
//
//	-a string     admin API base url
//	-t duration   per-request timeout
//	-e string     client hash encoding (hex|base64)
//	-r string     comma separated role options
//	-d string     data directory
//	-s string     token sealer (aesgcm|age)
//	-l string     log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-e", "-r", "-d", "-s", "-l"})

	fs := flag.NewFlagSet("dndadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "admin API base url")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.HashEncoding, "e", cfg.HashEncoding, "client hash encoding (hex|base64)")
	roles := fs.String("r", strings.Join(cfg.RoleOptions, ","), "comma separated role options")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.TokenSealer, "s", cfg.TokenSealer, "token sealer (aesgcm|age)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RoleOptions = splitRoles(*roles)
	return nil
}

func splitRoles(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
