package logtesting

import (
	"bytes"
	"strings"

	"github.com/MobRulesGames/isopick/logging"
)

// Runs fn with all logging sent to a buffer and returns the non-empty lines
// that were logged.
func CollectOutput(fn func()) []string {
	buf := &bytes.Buffer{}
	reset := logging.Redirect(buf)
	defer reset()

	fn()

	ret := []string{}
	for _, line := range strings.Split(buf.String(), "\n") {
		if line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}
