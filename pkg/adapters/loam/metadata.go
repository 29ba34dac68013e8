package loam

import "github.com/aretw0/portcfg/pkg/domain"

// PortMetadata is the frontmatter of a port fixture document.
// The document body becomes the port's comments.
type PortMetadata struct {
	ID            string `json:"id" mapstructure:"id"`
	Type          string `json:"type" mapstructure:"type"`
	Name          string `json:"name" mapstructure:"name"`
	State         string `json:"state" mapstructure:"state"`
	ParentGroupID string `json:"parent_group_id" mapstructure:"parent_group_id"`

	// ConcurrentTasks accepts a number or a string.
	ConcurrentTasks   domain.TaskCount `json:"concurrent_tasks" mapstructure:"concurrent_tasks"`
	AllowRemoteAccess bool             `json:"allow_remote_access" mapstructure:"allow_remote_access"`
}
