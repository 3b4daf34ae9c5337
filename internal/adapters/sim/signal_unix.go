//go:build !windows

package sim

import "syscall"

var interruptSignal = syscall.SIGTERM
