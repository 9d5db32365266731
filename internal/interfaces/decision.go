package interfaces

//go:generate mockgen -package=mock -source=decision.go -destination=mock/decision.go

// DecisionProvider answers yes/no questions before destructive local steps,
// such as cloning over an existing directory. The editor front-end supplies
// the interactive implementation; headless callers can auto-confirm.
type DecisionProvider interface {
	Confirm(question string) bool
}
