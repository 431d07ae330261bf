package systems

// SystemInfo describes a per-tick system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "background", "images")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// Phase IDs in tick order. The perf collector and the tuning panel key on these.
const (
	PhaseImages      = "images"
	PhaseAttractor   = "attractor"
	PhaseColor       = "color"
	PhaseWave        = "wave"
	PhaseProjector   = "projector"
	PhaseOrientation = "orientation"
	PhaseRender      = "render"
)

// registerDefaults adds all known systems to the registry in tick order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseImages, Name: "Images", Description: "Adds fields for finished image loads", Category: "core"})

	// Background attractor
	r.Register(SystemInfo{ID: PhaseAttractor, Name: "Attractor", Description: "Integrates the Case R system", Category: "background"})
	r.Register(SystemInfo{ID: PhaseColor, Name: "Color", Description: "Maps line-of-sight velocity to color", Category: "background"})

	// Image point clouds
	r.Register(SystemInfo{ID: PhaseWave, Name: "Wave", Description: "Oscillates image particles", Category: "images"})
	r.Register(SystemInfo{ID: PhaseProjector, Name: "Projector", Description: "Places image fields over their anchors", Category: "images"})

	r.Register(SystemInfo{ID: PhaseOrientation, Name: "Orientation", Description: "Spins the background and eases parallax", Category: "background"})
	r.Register(SystemInfo{ID: PhaseRender, Name: "Render", Description: "Hands the frame to the renderer", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
