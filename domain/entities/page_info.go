package entities

// Evidence is what the browser showed when a scenario failed
type Evidence struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Screenshot string `json:"screenshot,omitempty"` // path of the saved PNG
}
