package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aofei/href"
	"github.com/spf13/cobra"
)

// components is the JSON form of a parsed URL printed by the parse command.
type components struct {
	Href     string                 `json:"href"`
	Protocol string                 `json:"protocol"`
	Host     string                 `json:"host"`
	Hostname string                 `json:"hostname"`
	Port     string                 `json:"port"`
	Pathname string                 `json:"pathname"`
	Search   string                 `json:"search"`
	Hash     string                 `json:"hash"`
	Keys     []string               `json:"keys"`
	Query    map[string]interface{} `json:"query"`
}

func parseCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "parse <url>",
		Short: "Print the components of a URL as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := href.Parse(args[0])

			c := components{
				Href:     u.String(),
				Protocol: u.Protocol(),
				Host:     u.Host(),
				Hostname: u.Hostname(),
				Port:     u.Port(),
				Pathname: u.Pathname(),
				Search:   u.Search(),
				Hash:     u.Hash(),
				Keys:     u.QueryString.Keys(),
				Query:    u.QueryString.Map(),
			}

			var (
				b   []byte
				err error
			)

			if compact {
				b, err = json.Marshal(c)
			} else {
				b, err = json.MarshalIndent(c, "", "  ")
			}

			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return err
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print single-line JSON")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <url> <component>",
		Short: "Print one component of a URL",
		Long: `Print one component of a URL.

Components:
  protocol, host, hostname, port, pathname, search, hash
  ?<key>      the value of the query parameter <key>
  domain      the registrable domain of the hostname
  ascii-host  the hostname in its ASCII (punycode) form`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := component(href.Parse(args[0]), args[1])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)

			return err
		},
	}
}

// component returns the component of the u named name.
func component(u *href.URL, name string) (string, error) {
	if strings.HasPrefix(name, "?") {
		return u.Get(name[1:]), nil
	}

	switch name {
	case "protocol":
		return u.Protocol(), nil
	case "host":
		return u.Host(), nil
	case "hostname":
		return u.Hostname(), nil
	case "port":
		return u.Port(), nil
	case "pathname":
		return u.Pathname(), nil
	case "search":
		return u.Search(), nil
	case "hash":
		return u.Hash(), nil
	case "domain":
		return u.Domain()
	case "ascii-host":
		return u.ASCIIHostname()
	}

	return "", fmt.Errorf("unknown component %q", name)
}
