package messaging

import "encoding/json"

// envelope carries headers for brokers without native header support.
type envelope struct {
	Key     string            `json:"k,omitempty"`
	Headers map[string]string `json:"h,omitempty"`
	Body    []byte            `json:"b"`
}

func wrap(msg Outgoing) ([]byte, error) {
	return json.Marshal(envelope{Key: msg.Key, Headers: msg.Headers, Body: msg.Body})
}

// unwrap falls back to treating data as a bare body when it is not an
// envelope, so producers outside this package still interoperate.
func unwrap(data []byte) (key string, headers map[string]string, body []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Body == nil {
		return "", nil, data
	}
	return env.Key, env.Headers, env.Body
}
