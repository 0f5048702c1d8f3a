package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/i18nrouter/pkg/routing"
)

func (a *app) resolveCmd() *cobra.Command {
	var req routing.Request

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Route a single request and print the decision",
		Example: `  i18nrouter resolve /fr/about
  i18nrouter resolve / --host example.nl --accept-language "nl-BE,nl;q=0.9"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}

			req.Path = args[0]
			req.BasePath = m.BasePath()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(routing.Route(req, m))
		},
	}

	cmd.Flags().StringVar(&req.Host, "host", "", "request host")
	cmd.Flags().StringVar(&req.CookieLocale, "cookie", "", "value of the locale cookie")
	cmd.Flags().StringVar(&req.AcceptLanguage, "accept-language", "", "Accept-Language header")
	return cmd
}
