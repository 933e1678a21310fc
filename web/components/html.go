package components

import twmerge "github.com/Oudwins/tailwind-merge-go"

// TwMerge merges Tailwind classes, later classes winning over conflicting
// earlier ones.
func TwMerge(classes ...string) string {
	return twmerge.Merge(classes...)
}
