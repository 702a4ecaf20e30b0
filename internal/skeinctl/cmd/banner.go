package cmd

import (
	"fmt"

	"github.com/skeinlab/skein/pkg/version"
)

const bannerText = `
      _        _
  ___| | _____(_)_ __
 / __| |/ / _ \ | '_ \
 \__ \   <  __/ | | | |
 |___/_|\_\___|_|_| |_|

   Agent Thread Viewer
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
