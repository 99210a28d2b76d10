package domain

import "fmt"

// ConnectionConfig is the only state persisted between sessions.
type ConnectionConfig struct {
	APIURL string
	Token  string
}

func (c ConnectionConfig) Configured() bool {
	return c.APIURL != ""
}

func (c ConnectionConfig) String() string {
	token := "<none>"
	if c.Token != "" {
		token = "<redacted>"
	}
	return fmt.Sprintf("%s (token: %s)", c.APIURL, token)
}
