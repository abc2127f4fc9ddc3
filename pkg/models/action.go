package models

// Action is an immutable audit record of an operation performed
// against the service. Actions are read-only.
type Action struct {
	UUID        string    `json:"uuid"`
	ResourceURI string    `json:"resource_uri"`
	Action      string    `json:"action"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	State       string    `json:"state"`
	StartDate   Timestamp `json:"start_date"`
	EndDate     Timestamp `json:"end_date"`
	Object      string    `json:"object"`
	IP          string    `json:"ip"`
	Location    string    `json:"location"`
}

// Actions is one page of the action log, newest first.
type Actions struct {
	Meta    Meta     `json:"meta"`
	Objects []Action `json:"objects"`
}
