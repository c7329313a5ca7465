package agent

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/tabular/agent/tabular"
)

// TypedConfig types a tabular.Config with the Type of agent it
// configures. In this way, the configuration of a run can be stored
// alongside its checkpoints, and the agent reconstructed from them
// without knowing beforehand which algorithm produced them.
type TypedConfig struct {
	Type   Type           `json:"type"`
	Config tabular.Config `json:"config"`
}

// NewTypedConfig returns a new TypedConfig
func NewTypedConfig(t Type, c tabular.Config) TypedConfig {
	return TypedConfig{Type: t, Config: c}
}

// CreateAgent creates the agent that the TypedConfig describes
func (t TypedConfig) CreateAgent(seed uint64) (Agent, error) {
	return New(t.Type, t.Config, seed)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Types that
// are not registered are rejected.
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	type typedConfig TypedConfig
	var c typedConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	if _, ok := registeredTypes[c.Type]; !ok {
		return fmt.Errorf("unmarshalJSON: type %q not registered", c.Type)
	}
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	*t = TypedConfig(c)
	return nil
}

// WriteTypedConfig writes t to filename as JSON
func WriteTypedConfig(filename string, t TypedConfig) error {
	data, err := json.MarshalIndent(t, "", "\t")
	if err != nil {
		return fmt.Errorf("writeTypedConfig: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writeTypedConfig: %w", err)
	}
	return nil
}

// ReadTypedConfig reads a TypedConfig written by WriteTypedConfig
func ReadTypedConfig(filename string) (TypedConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return TypedConfig{}, fmt.Errorf("readTypedConfig: %w", err)
	}

	var t TypedConfig
	if err := json.Unmarshal(data, &t); err != nil {
		return TypedConfig{}, fmt.Errorf("readTypedConfig: %w", err)
	}
	return t, nil
}
