//go:build windows

package sim

import "os"

// Windows has no SIGTERM delivery for arbitrary processes; Kill is the
// closest available request.
var interruptSignal = os.Kill
