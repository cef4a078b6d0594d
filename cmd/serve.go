package cmd

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SmartAppUnipi/ArtGuide/internal/apihandlers"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document adaptation HTTP API",
	Long: `Starts an HTTP server exposing keyword expansion and text tailoring,
the two operations the application back-end calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default()
		apiHandler := apihandlers.NewAPIHandler(appInstance)

		router.GET("/", apiHandler.RootHandler)
		router.POST("/keywords", apiHandler.KeywordsHandler)
		router.POST("/tailored_text", apiHandler.TailoredTextHandler)

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Address
		}
		log.Infof("Listening on %s", addr)
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
