package resources

import (
	"fmt"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

// Set is the three views bound to one session.
type Set struct {
	Workloads Provider
	Projects  Provider
	Clusters  Provider
}

// NewSet builds the providers from the session's current client and keeps
// them in step with later reconfigurations.
func NewSet(s *session.Session, n Notifier) *Set {
	return NewSetPerView(s, func(domain.View) Notifier { return n })
}

// NewSetPerView is NewSet with a notifier of its own for each view.
func NewSetPerView(s *session.Session, notifierFor func(domain.View) Notifier) *Set {
	c, _ := s.Client()
	set := &Set{
		Workloads: NewWorkloadsProvider(c, notifierFor(domain.ViewWorkloads)),
		Projects:  NewProjectsProvider(c, notifierFor(domain.ViewProjects)),
		Clusters:  NewClustersProvider(c, notifierFor(domain.ViewClusters)),
	}
	s.Subscribe(func(c client.RunAI) {
		for _, p := range set.All() {
			p.UpdateClient(c)
		}
	})
	return set
}

func (s *Set) All() []Provider {
	return []Provider{s.Workloads, s.Projects, s.Clusters}
}

func (s *Set) Get(view domain.View) (Provider, error) {
	for _, p := range s.All() {
		if p.View() == view {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown view %q", view)
}
