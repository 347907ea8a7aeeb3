// Package tokens provides a coarse token-cost estimator for budget decisions.
// It deliberately does not call a real tokenizer: the budgeter only needs a
// cheap, deterministic value that grows monotonically with text length.
package tokens

// charsPerToken is the usual rough ratio for English prose.
const charsPerToken = 4

// Estimate approximates the token cost of a text fragment (characters / 4,
// rounded up). Empty input costs zero.
func Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
