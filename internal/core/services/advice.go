package services

import "churn-insight-service/internal/core/domain"

var highRiskAdvice = domain.Advice{
	Risk:     domain.RiskHigh,
	Headline: "High Churn Risk Detected",
	Title:    "Personalized Retention Strategies",
	Strategies: []string{
		"Offer personalized discounts or loyalty rewards",
		"Reduce waiting time & improve support follow-ups",
		"Provide onboarding & product education",
		"Offer flexible billing or temporary downgrade",
	},
	Message: "We value your journey with us. Here's something special crafted just for you!",
}

var lowRiskAdvice = domain.Advice{
	Risk:     domain.RiskLow,
	Headline: "Customer Likely to Stay",
	Title:    "Retention Boost Ideas",
	Strategies: []string{
		"Send appreciation & reward points",
		"Share new features and exclusive offers",
		"Collect positive feedback",
		"Celebrate usage milestones",
	},
}

// AdviceFor returns the canned retention advice for a predicted label.
func AdviceFor(label int) domain.Advice {
	base := lowRiskAdvice
	if label == domain.ChurnLabel {
		base = highRiskAdvice
	}
	base.Strategies = append([]string(nil), base.Strategies...)
	return base
}
