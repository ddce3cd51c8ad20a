package migration

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	logger "github.com/TykTechnologies/servicemigration/log"
	"github.com/TykTechnologies/servicemigration/servicedef"
)

// PathSeparator separates service names in a service path.
const PathSeparator = "/"

// Tenant returns the first service without a parent, or nil.
func (c *ServiceContext) Tenant() *servicedef.Service {
	roots := c.tree().children[""]
	if len(roots) == 0 {
		return nil
	}
	return roots[0]
}

// ServicePath returns the names of the services from the tenant down to
// svc joined with PathSeparator. The path of the tenant is its name.
func (c *ServiceContext) ServicePath(svc *servicedef.Service) string {
	if svc == nil {
		return ""
	}
	return strings.Join(c.tree().path(svc), PathSeparator)
}

// ServiceParent returns the parent of svc, nil for the tenant.
func (c *ServiceContext) ServiceParent(svc *servicedef.Service) *servicedef.Service {
	if svc == nil {
		return nil
	}
	return c.tree().parent(svc)
}

// ServiceChildren returns the services whose parent is svc, in sequence
// order. An uncommitted service has no children.
func (c *ServiceContext) ServiceChildren(svc *servicedef.Service) []*servicedef.Service {
	if svc == nil || !svc.Committed() {
		return nil
	}

	children := c.tree().children[svc.ID()]
	out := make([]*servicedef.Service, len(children))
	copy(out, children)
	return out
}

// FindService resolves a path such as "Zenoss.core/localhost/zenhub". The
// first segment must name the tenant, every following segment must match
// the name of exactly one child. Returns nil when any segment is absent or
// ambiguous.
func (c *ServiceContext) FindService(path string) *servicedef.Service {
	tenant := c.Tenant()
	if tenant == nil {
		return nil
	}

	segments := strings.Split(path, PathSeparator)
	if segments[0] != tenant.Name {
		return nil
	}

	x := c.tree()
	cur := tenant
	for _, name := range segments[1:] {
		if !cur.Committed() {
			return nil
		}

		matches := lo.Filter(x.children[cur.ID()], func(child *servicedef.Service, _ int) bool {
			return child.Name == name
		})
		if len(matches) != 1 {
			return nil
		}
		cur = matches[0]
	}
	return cur
}

// FindServices returns the services whose path matches pattern, in
// sequence order. The pattern is anchored at the start of the path.
func (c *ServiceContext) FindServices(pattern string) ([]*servicedef.Service, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid service pattern: %w", err)
	}

	x := c.tree()
	return lo.Filter(c.Services, func(svc *servicedef.Service, _ int) bool {
		return svc != nil && re.MatchString(strings.Join(x.path(svc), PathSeparator))
	}), nil
}

// ReparentService moves svc below newParent. It fails without changing
// anything when svc is the tenant, when newParent is uncommitted, or when
// newParent is svc or one of its descendants.
func (c *ServiceContext) ReparentService(svc, newParent *servicedef.Service) error {
	if svc == nil || newParent == nil {
		return ErrNilService
	}
	if svc.ParentID() == "" {
		return ErrReparentTenant
	}
	if !newParent.Committed() {
		return ErrReparentToNew
	}

	x := c.tree()
	visited := make(map[*servicedef.Service]bool)
	for cur := newParent; cur != nil && !visited[cur]; cur = x.parent(cur) {
		if cur == svc || (svc.Committed() && cur.ID() == svc.ID()) {
			return ErrCycle
		}
		visited[cur] = true
	}

	c.log.WithFields(logger.Fields{
		"service": svc.Name,
		"from":    svc.ParentID(),
		"to":      newParent.ID(),
	}).Debug("Reparenting service")

	svc.SetParentID(newParent.ID())
	return nil
}
