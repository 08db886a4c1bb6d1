package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aofei/href"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// maxLineBytes is the maximum length of an input line of the rewrite command.
const maxLineBytes = 8 << 20

// rewriter applies the component flags of a command to URLs.
type rewriter struct {
	flags *pflag.FlagSet

	protocol string
	host     string
	hostname string
	port     string
	pathname string
	search   string
	hash     string
	params   []string
	deletes  []string
}

// newRewriter returns a new instance of the `rewriter` with its flags
// registered on the fs.
func newRewriter(fs *pflag.FlagSet) *rewriter {
	rw := &rewriter{flags: fs}

	fs.StringVar(&rw.protocol, "protocol", "", "Set the protocol")
	fs.StringVar(&rw.host, "host", "", "Set the host (hostname[:port])")
	fs.StringVar(&rw.hostname, "hostname", "", "Set the hostname")
	fs.StringVar(&rw.port, "port", "", "Set the port")
	fs.StringVar(&rw.pathname, "pathname", "", "Set the pathname")
	fs.StringVar(&rw.search, "search", "", "Replace the query string")
	fs.StringVar(&rw.hash, "hash", "", "Set the hash")
	fs.StringArrayVarP(&rw.params, "param", "p", nil, "Set a query parameter (key=value)")
	fs.StringArrayVarP(&rw.deletes, "delete", "d", nil, "Delete a query parameter")

	return rw
}

// apply applies the changed flags of the rw to the u.
func (rw *rewriter) apply(u *href.URL) error {
	if rw.flags.Changed("protocol") {
		u.SetProtocol(rw.protocol)
	}

	if rw.flags.Changed("host") {
		u.SetHost(rw.host)
	}

	if rw.flags.Changed("hostname") {
		u.SetHostname(rw.hostname)
	}

	if rw.flags.Changed("port") {
		u.SetPort(rw.port)
	}

	if rw.flags.Changed("pathname") {
		u.SetPathname(rw.pathname)
	}

	if rw.flags.Changed("search") {
		u.SetSearch(rw.search)
	}

	if rw.flags.Changed("hash") {
		u.SetHash(rw.hash)
	}

	for _, p := range rw.params {
		k, v := p, ""
		if i := strings.IndexByte(p, '='); i >= 0 {
			k, v = p[:i], p[i+1:]
		}

		if err := u.Set(k, v); err != nil {
			return err
		}
	}

	for _, d := range rw.deletes {
		u.QueryString.Del(d)
	}

	return nil
}

// rewrite applies the rw to the URL parsed from the line and writes the
// result to the w.
func (rw *rewriter) rewrite(w io.Writer, line string) error {
	u := href.Default.AcquireURL(line)
	defer href.Default.ReleaseURL(u)

	if err := rw.apply(u); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, u)

	return err
}

func setCmd() *cobra.Command {
	var rw *rewriter

	cmd := &cobra.Command{
		Use:   "set <url>",
		Short: "Rewrite components of a URL",
		Example: `  href set http://example.com/a --port 8080 -p page=2
  href set /search?q=go --hash results`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := href.Parse(args[0])
			if err := rw.apply(u); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), u)

			return err
		},
	}

	rw = newRewriter(cmd.Flags())

	return cmd
}

func rewriteCmd() *cobra.Command {
	var (
		rw    *rewriter
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite URLs read line by line from stdin",
		Long: `Rewrite URLs read line by line from stdin and print them to stdout.
Input lines are limited to 8 MiB.

With --watch, the config file given by --config is reloaded whenever it
changes while the input is being read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				cf := href.Default.ConfigFile
				if cf == "" {
					return fmt.Errorf("--watch requires --config")
				}

				if err := href.Default.WatchConfig(cf); err != nil {
					return err
				}

				defer href.Default.Close()
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			s := bufio.NewScanner(cmd.InOrStdin())
			s.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
			for s.Scan() {
				if err := rw.rewrite(w, s.Text()); err != nil {
					return err
				}
			}

			return s.Err()
		},
	}

	rw = newRewriter(cmd.Flags())
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the config file on change")

	return cmd
}
