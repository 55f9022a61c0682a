package clubs

import "github.com/preston-bernstein/transfer-console/internal/domain/nationalities"

// Ref identifies a club from inside another record (a player or a contract).
type Ref struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	League string `json:"league,omitempty" yaml:"league,omitempty"`
}

// Club is a club as listed by the remote service.
type Club struct {
	ID          int                       `json:"id" yaml:"id"`
	Name        string                    `json:"name" yaml:"name"`
	League      string                    `json:"league" yaml:"league"`
	Nationality nationalities.Nationality `json:"nationality" yaml:"nationality"`
}

// Ref returns the reference form of the club.
func (c Club) Ref() Ref {
	return Ref{ID: c.ID, Name: c.Name, League: c.League}
}
