package domain

import "fmt"

// Revision is the optimistic-concurrency token owned by the service.
// Clients echo the last value they saw; the service rejects stale versions.
type Revision struct {
	ClientID     string `json:"clientId,omitempty" mapstructure:"clientId" yaml:"clientId,omitempty"`
	Version      int64  `json:"version" mapstructure:"version" yaml:"version"`
	LastModifier string `json:"lastModifier,omitempty" mapstructure:"lastModifier" yaml:"lastModifier,omitempty"`
}

func (r Revision) String() string {
	return fmt.Sprintf("[%d, %s]", r.Version, r.ClientID)
}
