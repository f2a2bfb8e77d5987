package cmd

import (
	"os/signal"
	"syscall"

	"github.com/chris-regnier/wellnessctl/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API over HTTP",
	Long: `Serve check-ins, journal entries, trends and recommendations as a JSON API.

Requests act as the user named in the X-User-ID header, or the signed-in
user when the header is absent.

Routes:
  GET    /health
  POST   /api/v1/sentiment
  POST   /api/v1/checkins            GET /api/v1/checkins?from&to
  GET    /api/v1/checkins/days?from&to
  POST   /api/v1/journal             GET /api/v1/journal?from&to&tag&limit&offset
  GET    /api/v1/journal/{id}        DELETE /api/v1/journal/{id}
  GET    /api/v1/trend?days&window
  GET    /api/v1/recommendations?mood&stress&energy&activities
  POST   /api/v1/recommendations/{id}/complete
  DELETE /api/v1/recommendations/{id}/complete
  GET    /api/v1/dashboard`,
	Example: `  wellnessctl serve
  wellnessctl serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Serve.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		router := httpapi.NewRouter(svc, sess, logger,
			httpapi.WithAllowedOrigins(appConfig.Serve.AllowedOrigins),
			httpapi.WithWriteHook(invalidateCache),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("starting HTTP API", zap.String("storage", appConfig.Storage))
		return httpapi.Serve(ctx, addr, router.Setup(), logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config serve.addr)")
	rootCmd.AddCommand(serveCmd)
}
