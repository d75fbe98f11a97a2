package descriptor

import (
	"time"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// Descriptor is the JSON metadata document an agent publishes about
// itself: identity, service endpoint, and what it can do. Peers
// exchange descriptors to discover each other before authenticating.
type Descriptor struct {
	// DID is the agent's decentralized identifier.
	DID did.AgentDID `json:"did"`

	// Name is the human-readable name of the agent.
	Name string `json:"name"`

	// Description provides details about the agent's purpose.
	Description string `json:"description,omitempty"`

	// Endpoint is the base URL where the agent's service is reachable.
	Endpoint string `json:"endpoint"`

	// Capabilities lists the operations this agent offers.
	Capabilities []string `json:"capabilities,omitempty"`

	// CreatedAt is when the descriptor was created (Unix timestamp).
	CreatedAt int64 `json:"createdAt"`

	// ExpiresAt is the optional expiration (Unix timestamp).
	ExpiresAt int64 `json:"expiresAt,omitempty"`

	// Version of the descriptor format.
	Version string `json:"version,omitempty"`

	// Metadata contains additional custom fields.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Builder constructs Descriptors with a fluent API.
type Builder struct {
	desc *Descriptor
}

// NewBuilder starts a descriptor with the required fields.
func NewBuilder(agentDID did.AgentDID, name, endpoint string) *Builder {
	return &Builder{
		desc: &Descriptor{
			DID:       agentDID,
			Name:      name,
			Endpoint:  endpoint,
			CreatedAt: time.Now().Unix(),
			Version:   "1.0",
		},
	}
}

// WithDescription adds a description.
func (b *Builder) WithDescription(description string) *Builder {
	b.desc.Description = description
	return b
}

// WithCapabilities appends capabilities.
func (b *Builder) WithCapabilities(capabilities ...string) *Builder {
	b.desc.Capabilities = append(b.desc.Capabilities, capabilities...)
	return b
}

// WithExpiresAt sets the expiration time.
func (b *Builder) WithExpiresAt(expiresAt time.Time) *Builder {
	b.desc.ExpiresAt = expiresAt.Unix()
	return b
}

// WithMetadata adds a custom metadata field.
func (b *Builder) WithMetadata(key string, value interface{}) *Builder {
	if b.desc.Metadata == nil {
		b.desc.Metadata = make(map[string]interface{})
	}
	b.desc.Metadata[key] = value
	return b
}

// Build returns the constructed descriptor.
func (b *Builder) Build() *Descriptor {
	return b.desc
}

// IsExpired checks whether the descriptor has expired. Descriptors
// without an expiry never expire.
func (d *Descriptor) IsExpired() bool {
	if d.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() > d.ExpiresAt
}

// HasCapability checks whether the agent declares a capability.
func (d *Descriptor) HasCapability(capability string) bool {
	for _, c := range d.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Validate performs basic validation on the descriptor.
func (d *Descriptor) Validate() error {
	if err := d.DID.Validate(); err != nil {
		return ErrInvalidDescriptor{"invalid DID: " + err.Error()}
	}
	if d.Name == "" {
		return ErrInvalidDescriptor{"name is required"}
	}
	if d.Endpoint == "" {
		return ErrInvalidDescriptor{"endpoint is required"}
	}
	if d.CreatedAt == 0 {
		return ErrInvalidDescriptor{"createdAt is required"}
	}
	return nil
}

// ErrInvalidDescriptor is returned when a descriptor is invalid.
type ErrInvalidDescriptor struct {
	Message string
}

func (e ErrInvalidDescriptor) Error() string {
	return "invalid descriptor: " + e.Message
}
