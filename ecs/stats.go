package ecs

import (
	"reflect"
	"sort"
)

// SceneStats is a point-in-time summary of a scene's contents.
type SceneStats struct {
	TotalEntityCount int
	SubscriberCount  int
	KindBreakdown    []KindStats
	ResourceTypes    []string
}

// KindStats counts the entities carrying one component kind.
type KindStats struct {
	Kind        Kind
	Name        string
	EntityCount int
}

// CollectStats summarises the scene. Kinds with no entities are omitted.
func (s *Scene) CollectStats() SceneStats {
	stats := SceneStats{
		TotalEntityCount: s.store.Len(),
		SubscriberCount:  s.Subscribers(),
	}

	for _, kind := range s.Registry().Kinds() {
		count := s.store.Count(kind)
		if count == 0 {
			continue
		}
		stats.KindBreakdown = append(stats.KindBreakdown, KindStats{
			Kind:        kind,
			Name:        s.Registry().Name(kind),
			EntityCount: count,
		})
	}

	for t := range s.resources {
		stats.ResourceTypes = append(stats.ResourceTypes, typeName(t))
	}
	sort.Strings(stats.ResourceTypes)

	return stats
}

func typeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
