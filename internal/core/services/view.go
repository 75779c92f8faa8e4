package services

import "churn-insight-service/internal/core/domain"

var views = map[domain.ViewName]domain.View{
	domain.ViewHome: {
		Name:        domain.ViewHome,
		Title:       "Customer Churn Prediction & Insights",
		Description: "Upload your customer dataset and explore churn risk.",
		Sections: []domain.ViewSection{
			{
				Heading: "Aim of This Website",
				Items: []string{
					"Predict which customers are likely to leave",
					"Understand why a customer may churn",
					"Take proactive retention actions",
					"Reduce revenue loss and improve loyalty",
				},
			},
			{
				Heading: "Welcome!",
				Items: []string{
					"Auto-generated customer form",
					"One-click churn prediction",
					"Smart retention suggestions",
					"Visual insights & patterns",
				},
			},
		},
	},
	domain.ViewPredict: {
		Name:        domain.ViewPredict,
		Title:       "Predict Churn",
		Description: "Upload your dataset (CSV), fill the generated form and predict.",
		Sections: []domain.ViewSection{
			{Heading: "Preview of Data"},
			{Heading: "Auto-Generated Customer Input Form"},
			{Heading: "Predict & Recommend"},
		},
	},
	domain.ViewAnalytics: {
		Name:        domain.ViewAnalytics,
		Title:       "Analytics",
		Description: "Upload a dataset for analysis.",
		Sections: []domain.ViewSection{
			{Heading: "Churn Distribution"},
			{Heading: "Numerical Feature Trends"},
		},
	},
}

type ViewService struct{}

func NewViewService() *ViewService {
	return &ViewService{}
}

func (s *ViewService) List() []domain.View {
	names := domain.ViewNames()
	out := make([]domain.View, 0, len(names))
	for _, name := range names {
		out = append(out, copyView(views[name]))
	}
	return out
}

// Get resolves a view by name; an empty name selects the default view.
func (s *ViewService) Get(name string) (domain.View, error) {
	if name == "" {
		return copyView(views[domain.DefaultView]), nil
	}
	v, err := domain.ParseViewName(name)
	if err != nil {
		return domain.View{}, err
	}
	return copyView(views[v]), nil
}

func copyView(v domain.View) domain.View {
	sections := make([]domain.ViewSection, len(v.Sections))
	for i, s := range v.Sections {
		sections[i] = domain.ViewSection{Heading: s.Heading}
		if s.Items != nil {
			sections[i].Items = append([]string(nil), s.Items...)
		}
	}
	v.Sections = sections
	return v
}
