package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Flexible accepts a JSON string or any other scalar and keeps it as text.
// Clients send "time" both as "30" and as 30.
type Flexible string

func (f *Flexible) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flexible(s)
		return nil
	}
	*f = Flexible(strings.TrimSpace(string(data)))
	return nil
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Ingredients Flexible `json:"ingredients"`
	Preferences Flexible `json:"preferences"`
	Time        Flexible `json:"time"`
	Cuisine     Flexible `json:"cuisine"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
