package supervisor

import (
	"os"
	"sync"
)

// Registry maps live process identifiers to their kill capability.
// The waiting context owns the exec.Cmd; the cancel path only ever
// touches the registry, so the two never share the child object.
// A pid is registered exactly once, immediately after a successful
// spawn, and removed when the run has been waited on.
type Registry struct {
	mu    sync.Mutex
	procs map[int]*os.Process
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[int]*os.Process)}
}

// Register records the kill capability for pid.
func (r *Registry) Register(pid int, proc *os.Process) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[pid] = proc
}

// Unregister removes pid. Removing an unknown pid is a no-op.
func (r *Registry) Unregister(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.procs, pid)
}

// Lookup returns the process registered for pid, if any.
func (r *Registry) Lookup(pid int) (*os.Process, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	proc, ok := r.procs[pid]
	return proc, ok
}

// Live returns the currently registered pids.
func (r *Registry) Live() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	pids := make([]int, 0, len(r.procs))
	for pid := range r.procs {
		pids = append(pids, pid)
	}
	return pids
}
