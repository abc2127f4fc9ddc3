package models

// Lifecycle states reported by the API for node clusters and nodes.
// The server owns all transitions; these values exist so callers can
// branch on state without string literals scattered around.
type State string

const (
	StateInit           State = "Init"
	StateDeploying      State = "Deploying"
	StateDeployed       State = "Deployed"
	StatePartlyDeployed State = "Partly deployed"
	StateScaling        State = "Scaling"
	StateUpgrading      State = "Upgrading"
	StateUnreachable    State = "Unreachable"
	StateTerminating    State = "Terminating"
	StateTerminated     State = "Terminated"
	StateEmptyCluster   State = "Empty cluster"
)

// IsTerminal reports whether the resource can never leave its current
// state. Terminated resources stay visible in listings for a while but
// accept no further deploy, update or upgrade calls.
func (s State) IsTerminal() bool {
	return s == StateTerminated
}

// IsTransitioning reports whether the server is still working on the
// resource and a follow-up get may observe a different state.
func (s State) IsTransitioning() bool {
	switch s {
	case StateDeploying, StateScaling, StateUpgrading, StateTerminating:
		return true
	}
	return false
}
