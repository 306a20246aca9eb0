package identity

import "context"

// Profile is the authenticated user as seen by the service.
type Profile struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ctxKey string

const ctxProfile ctxKey = "profile"

func WithProfile(ctx context.Context, p Profile) context.Context {
	return context.WithValue(ctx, ctxProfile, p)
}

func FromContext(ctx context.Context) (Profile, bool) {
	p, ok := ctx.Value(ctxProfile).(Profile)
	return p, ok && p.UserID != ""
}
