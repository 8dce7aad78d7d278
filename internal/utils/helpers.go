package utils

// MakeMap builds a Sentry tag map from key, value and any further key/value
// pairs in more. A trailing key without a value is dropped.
func MakeMap(key, value string, more ...string) map[string]string {
	m := make(map[string]string, 1+len(more)/2)
	m[key] = value
	for i := 0; i+1 < len(more); i += 2 {
		m[more[i]] = more[i+1]
	}
	return m
}
