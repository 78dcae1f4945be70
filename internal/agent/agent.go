// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var agentCard []byte

var (
	// AgentCardData is the validated card, set by LoadAgentCard.
	AgentCardData []byte

	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard validates the embedded card once and publishes it in AgentCardData.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		}
		if err := json.Unmarshal(agentCard, &card); err != nil {
			loadErr = fmt.Errorf("failed to parse agent card: %w", err)
			return
		}
		if card.Name == "" || card.Version == "" {
			loadErr = fmt.Errorf("agent card is missing name or version")
			return
		}
		AgentCardData = agentCard
	})
	return loadErr
}
