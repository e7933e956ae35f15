package asklet

import (
	"fmt"
	"os"
)

// SocketPath returns the daemon's Unix socket path.
// Resolution order: $ASKLET_SOCKET > $XDG_RUNTIME_DIR/asklet.sock > /tmp/asklet-<uid>.sock
func SocketPath() string {
	if path := os.Getenv("ASKLET_SOCKET"); path != "" {
		return path
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir + "/asklet.sock"
	}
	return fmt.Sprintf("/tmp/asklet-%d.sock", os.Getuid())
}
