package domain

type ViewName string

const (
	ViewHome      ViewName = "home"
	ViewPredict   ViewName = "predict"
	ViewAnalytics ViewName = "analytics"
)

// DefaultView is the view shown before the user navigates anywhere.
const DefaultView = ViewHome

var viewOrder = []ViewName{ViewHome, ViewPredict, ViewAnalytics}

func ViewNames() []ViewName {
	return append([]ViewName(nil), viewOrder...)
}

func ParseViewName(s string) (ViewName, error) {
	for _, v := range viewOrder {
		if string(v) == s {
			return v, nil
		}
	}
	return "", ErrUnknownView
}

type ViewSection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items,omitempty"`
}

type View struct {
	Name        ViewName
	Title       string
	Description string
	Sections    []ViewSection
}
