package nationalities

// Nationality is a country players and clubs are associated with.
type Nationality struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
