package entity

// Site es una sede (tenant) que delimita qué colección de insumos ve un usuario.
// El conjunto de sedes permitidas es fijo y viene de configuración.
type Site struct {
	ID   string
	Name string
}

// SiteSet conjunto de sedes permitidas indexado por ID.
type SiteSet struct {
	order []Site
	byID  map[string]Site
}

// NewSiteSet construye el conjunto ignorando IDs vacíos o repetidos.
func NewSiteSet(sites ...Site) *SiteSet {
	s := &SiteSet{byID: make(map[string]Site, len(sites))}
	for _, site := range sites {
		if site.ID == "" {
			continue
		}
		if _, dup := s.byID[site.ID]; dup {
			continue
		}
		if site.Name == "" {
			site.Name = site.ID
		}
		s.byID[site.ID] = site
		s.order = append(s.order, site)
	}
	return s
}

// Contains indica si id pertenece al conjunto permitido.
func (s *SiteSet) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Get devuelve la sede por ID.
func (s *SiteSet) Get(id string) (Site, bool) {
	site, ok := s.byID[id]
	return site, ok
}

// List devuelve las sedes en el orden configurado.
func (s *SiteSet) List() []Site {
	out := make([]Site, len(s.order))
	copy(out, s.order)
	return out
}
