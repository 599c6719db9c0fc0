package types

// redactedPlaceholder is the string used to replace secret values in logs and serialization.
const redactedPlaceholder = "***REDACTED***"

// redactedJSON is the pre-computed JSON encoding of the redacted placeholder.
var redactedJSON = []byte(`"***REDACTED***"`)

// SecretString holds a value that must never reach logs, JSON or YAML output,
// such as a database connection string with an embedded password. String,
// MarshalJSON and MarshalYAML all return a redacted placeholder.
//
// Use Unmask() to retrieve the raw value when handing it to a database driver.
type SecretString string

// String returns a redacted placeholder instead of the raw value.
func (s SecretString) String() string {
	return redactedPlaceholder
}

// MarshalJSON returns the redacted placeholder as a JSON string.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return redactedJSON, nil
}

// MarshalYAML returns the redacted placeholder so that `holocene config`
// dumps never include credentials.
func (s SecretString) MarshalYAML() (any, error) {
	return redactedPlaceholder, nil
}

// IsSet reports whether a value was provided.
func (s SecretString) IsSet() bool {
	return s != ""
}

// Unmask returns the raw plaintext value of the secret.
func (s SecretString) Unmask() string {
	return string(s)
}
