package webapi

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

var startedAt = time.Now()

// handleSystemStatus reports process and host health for the admin panel.
func (s *Service) handleSystemStatus(c *gin.Context) {
	status := gin.H{
		"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"go_version":     runtime.Version(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_used_percent"] = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}
	if info, err := host.Info(); err == nil {
		status["host_uptime_seconds"] = info.Uptime
		status["platform"] = info.Platform
	}

	if sessions, err := s.auth.Stats(c.Request.Context()); err == nil {
		status["sessions"] = sessions
	}

	s.respondSuccess(c, http.StatusOK, status, "")
}
