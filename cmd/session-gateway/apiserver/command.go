package apiserver

import (
	"github.com/spf13/cobra"

	"github.com/nordcodes/session-gateway/internal/business"
	"github.com/nordcodes/session-gateway/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"api-server",
		"Session Gateway API server",
		"Session Gateway API server hosts the public token-gated HTTP API.",
		buildInfo,
		cmdutils.RunAsService,
		business.Main,
	)
}
