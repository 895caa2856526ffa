package ports

import "context"

// Confirmer asks the presentation layer for an explicit yes/no decision.
// An error is treated by callers as a dismissal.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm answers yes without asking (e.g. --yes).
func AlwaysConfirm() Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
}
