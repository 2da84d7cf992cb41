package scene

import "swarmfield/engine"

// Section ids used by the scene anchors
const (
	HeroSection       = "hero-section"
	ContentSection    = "content-section"
	BarsSection       = "bars-section"
	LoseSection       = "lose-section"
	AntSection        = "ant-section"
	ProtectionSection = "protection-section"
	ConnectSection    = "connect-section"
)

// DefaultSections is the landing page layout, heights in viewport heights
func DefaultSections() []engine.Section {
	return []engine.Section{
		{ID: HeroSection, Height: 0.9},
		{ID: ContentSection, Height: 1},
		{ID: BarsSection, Height: 1},
		{ID: LoseSection, Height: 1},
		{ID: AntSection, Height: 1},
		{ID: ProtectionSection, Height: 1},
		{ID: ConnectSection, Height: 1},
	}
}

// NewPage lays the sections out for a viewport, falling back to the default layout
func NewPage(viewport engine.Bounds, sections []engine.Section) *engine.Page {
	if len(sections) == 0 {
		sections = DefaultSections()
	}
	return engine.NewPage(viewport, sections...)
}
