package llm

import "context"

type purposeKey struct{}

// UnlabeledPurpose is recorded for requests made without WithPurpose.
const UnlabeledPurpose = "unlabeled"

// WithPurpose labels every request made with ctx, so request events and
// usage stats can be grouped by feature (clinical-summary, daily-insight...).
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "" if none was set.
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	return p
}

func purposeOrDefault(ctx context.Context) string {
	if p := PurposeFrom(ctx); p != "" {
		return p
	}
	return UnlabeledPurpose
}
