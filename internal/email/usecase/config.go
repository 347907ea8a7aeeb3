package usecase

// ContextConfig controls how much history the context engine loads and how
// large the assembled window may grow.
type ContextConfig struct {
	MaxThreadEmails    int `json:"max_thread_emails"`
	MaxSenderEmails    int `json:"max_sender_emails"`
	SenderLookbackDays int `json:"sender_lookback_days"`
	TotalTokenBudget   int `json:"total_token_budget"`
}

// DefaultContextConfig returns the standard limits for a context build.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		MaxThreadEmails:    10,
		MaxSenderEmails:    5,
		SenderLookbackDays: 30,
		TotalTokenBudget:   8000,
	}
}

// mergeConfig fills zero-valued override fields from the base config.
// Negative values pass through untouched: a negative total token budget is
// accepted and simply starves the sender branch.
func mergeConfig(base ContextConfig, overrides *ContextConfig) ContextConfig {
	if overrides == nil {
		return base
	}
	merged := *overrides
	if merged.MaxThreadEmails == 0 {
		merged.MaxThreadEmails = base.MaxThreadEmails
	}
	if merged.MaxSenderEmails == 0 {
		merged.MaxSenderEmails = base.MaxSenderEmails
	}
	if merged.SenderLookbackDays == 0 {
		merged.SenderLookbackDays = base.SenderLookbackDays
	}
	if merged.TotalTokenBudget == 0 {
		merged.TotalTokenBudget = base.TotalTokenBudget
	}
	return merged
}
