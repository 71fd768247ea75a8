package controller

import "encoding/json"

// Server-to-client frame types. Every outbound websocket frame is one JSON
// object carrying a "type" discriminator; clients render by type. Inbound
// frames are plain text (a menu choice, a title, a contribution).
const (
	frameWelcome = "welcome"
	framePrompt  = "prompt"
	frameInfo    = "info"
	frameError   = "error"
	frameTurn    = "turn"
	frameUpdate  = "update"
	frameGoodbye = "goodbye"
)

type textFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// turnFrame is sent only to the queue head: it grants the turn and carries
// the full story text so the writer sees what came before.
type turnFrame struct {
	Type  string `json:"type"`
	Story string `json:"story"`
	Text  string `json:"text"`
}

// updateFrame is the unsolicited broadcast pushed to every other participant
// after an accepted contribution.
type updateFrame struct {
	Type         string `json:"type"`
	Contributor  string `json:"contributor"`
	Contribution string `json:"contribution"`
	Story        string `json:"story"`
}

func marshalFrame(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return payload
}
