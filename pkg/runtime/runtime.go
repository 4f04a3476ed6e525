package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
	"github.com/byxorna/shelf/pkg/config"
)

// File returns a path for filename under the xdg runtime dir, creating
// parent directories as needed.
func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", config.XDGName, filename))
}
