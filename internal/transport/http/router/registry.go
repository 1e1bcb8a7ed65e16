package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule is anything that can mount routes on the authenticated /api/v1
// group.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Implementing this controls mount order (lower mounts first, default 100).
type prioritizer interface{ Priority() int }

// MountAll mounts the given modules in priority order.
func MountAll(api *gin.RouterGroup, mods ...APIModule) {
	sorted := append([]APIModule(nil), mods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) < priorityOf(sorted[j])
	})
	for _, m := range sorted {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
