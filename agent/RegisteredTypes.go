package agent

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/tabular/agent/tabular"
)

// Type represents a specific type of agent. Agents of a registered Type
// can be constructed with New.
type Type string

const (
	QLearning       Type = "QLearning"
	Sarsa           Type = "Sarsa"
	DoubleQLearning Type = "DoubleQLearning"
	MonteCarlo      Type = "MonteCarlo"
)

// Constructor constructs an Agent from a Config and a seed for its
// behaviour policy
type Constructor func(c tabular.Config, seed uint64) (Agent, error)

// Registered types with the package. Once a Type has been registered
// with this map, Agents of that type can be created with New.
//
// No Types are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes = make(map[Type]Constructor)

// Register registers an agent's Type with the Constructor that creates
// it. Registering the same Type twice panics.
func Register(agentType Type, constructor Constructor) {
	if _, ok := registeredTypes[agentType]; ok {
		panic(fmt.Sprintf("register: type %v already registered", agentType))
	}
	registeredTypes[agentType] = constructor
}

// New constructs a new Agent of the argument Type
func New(agentType Type, c tabular.Config, seed uint64) (Agent, error) {
	constructor, ok := registeredTypes[agentType]
	if !ok {
		return nil, fmt.Errorf("new: type %v not registered", agentType)
	}
	return constructor(c, seed)
}

// Types returns all registered Types in sorted order
func Types() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
