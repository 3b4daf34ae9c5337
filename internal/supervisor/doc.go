// Package supervisor implements the shell's bootstrap and recovery logic.
//
// Mode resolution, in priority order:
//  1. An explicit panic request restores the default shell registration
//     and launches the default shell, bypassing everything else.
//  2. Safe mode launches only the default shell.
//  3. Dev/test mode runs the orchestrator with dangerous operations
//     disabled.
//  4. Full mode terminates any running default-shell instance, registers
//     this process as the session shell, and runs the orchestrator.
//
// In the modes that run the orchestrator, the supervisor polls the
// rendering host's liveness on a fixed interval and relaunches it after a
// fixed delay, up to a bounded number of consecutive attempts. Exceeding
// the bound stops the loop and proceeds to shutdown; it is fatal to the
// supervision loop, not to the process. Every wait during shutdown is
// bounded by an explicit timeout, after which the host is terminated
// forcefully.
package supervisor
