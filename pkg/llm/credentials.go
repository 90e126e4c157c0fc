package llm

// Credentials maps providers to API keys. It is built once at startup and never
// mutated, so it can be shared freely between goroutines.
type Credentials struct {
	keys map[Provider]string
}

// NewCredentials copies keys, dropping empty values.
func NewCredentials(keys map[Provider]string) Credentials {
	c := Credentials{keys: make(map[Provider]string, len(keys))}
	for p, k := range keys {
		if k != "" {
			c.keys[p] = k
		}
	}
	return c
}

// Resolve returns the key for p, if one was configured
func (c Credentials) Resolve(p Provider) (string, bool) {
	key, ok := c.keys[p]
	return key, ok
}
