// Package entities contains domain entities used across the application.
package entities

// Country is one entry of the fixed flag pool.
type Country struct {
	Code string `json:"code"` // unique identifier, e.g. "EE"
	Name string `json:"name"` // display name shown as the target of a round
	Flag string `json:"flag"` // flag emoji used as the button label
}
