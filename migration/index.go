package migration

import (
	"github.com/TykTechnologies/servicemigration/servicedef"
)

// link is the part of a service the index depends on.
type link struct {
	svc      *servicedef.Service
	id       string
	parentID string
}

// index maps identifiers to services and parent identifiers to children.
// It is rebuilt whenever Services or any parent reference changed since
// the previous build.
type index struct {
	links    []link
	byID     map[string]*servicedef.Service
	children map[string][]*servicedef.Service
}

func (x *index) stale(services []*servicedef.Service) bool {
	if x.byID == nil || len(x.links) != len(services) {
		return true
	}
	for i, svc := range services {
		l := x.links[i]
		if l.svc != svc || svc == nil || l.id != svc.ID() || l.parentID != svc.ParentID() {
			return true
		}
	}
	return false
}

func (x *index) build(services []*servicedef.Service) {
	x.links = make([]link, 0, len(services))
	x.byID = make(map[string]*servicedef.Service, len(services))
	x.children = make(map[string][]*servicedef.Service)

	for _, svc := range services {
		if svc == nil {
			x.links = append(x.links, link{})
			continue
		}

		id, parentID := svc.ID(), svc.ParentID()
		x.links = append(x.links, link{svc: svc, id: id, parentID: parentID})

		if _, ok := x.byID[id]; id != "" && !ok {
			x.byID[id] = svc
		}
		x.children[parentID] = append(x.children[parentID], svc)
	}
}

// tree returns the index for the current services.
func (c *ServiceContext) tree() *index {
	if c.idx.stale(c.Services) {
		c.idx.build(c.Services)
	}
	return &c.idx
}

func (x *index) parent(svc *servicedef.Service) *servicedef.Service {
	parentID := svc.ParentID()
	if parentID == "" {
		return nil
	}
	return x.byID[parentID]
}

// path returns the names from the tenant down to svc. The walk stops at a
// missing parent or at the first repeated service.
func (x *index) path(svc *servicedef.Service) []string {
	var names []string
	visited := make(map[*servicedef.Service]bool)
	for cur := svc; cur != nil && !visited[cur]; cur = x.parent(cur) {
		visited[cur] = true
		names = append(names, cur.Name)
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}
