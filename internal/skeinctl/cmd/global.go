package cmd

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/skeinlab/skein/internal/skeinctl/client"
)

var (
	globalSkeindAddr string
	globalToken      string
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&globalSkeindAddr,
		"skeind-addr",
		"http://127.0.0.1:11810",
		"Base URL of the skeind server")
	flags.StringVar(&globalToken,
		"token",
		"",
		"Bearer token for the skeind server (also SKEIN_GATEWAY_TOKEN env)")
}

// NewClient builds a SkeindClient from the global flags.
func NewClient() *client.SkeindClient {
	token := globalToken
	if token == "" {
		token = os.Getenv("SKEIN_GATEWAY_TOKEN")
	}
	return client.NewSkeindClient(globalSkeindAddr, token, nil)
}
