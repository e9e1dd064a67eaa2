package router

import (
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/host"
)

// DescribeHost returns a one-line operating system description, such as
// "linux ubuntu 22.04 (kernel 6.5.0-14-generic x86_64) on build-01".
// It falls back to GOOS/GOARCH when host information is unavailable.
func DescribeHost() string {
	info, err := host.Info()
	if err != nil || info == nil || info.OS == "" {
		return runtime.GOOS + "/" + runtime.GOARCH
	}

	var b strings.Builder
	b.WriteString(info.OS)
	for _, part := range []string{info.Platform, info.PlatformVersion} {
		if part != "" {
			b.WriteByte(' ')
			b.WriteString(part)
		}
	}
	if info.KernelVersion != "" {
		b.WriteString(" (kernel ")
		b.WriteString(info.KernelVersion)
		if info.KernelArch != "" {
			b.WriteByte(' ')
			b.WriteString(info.KernelArch)
		}
		b.WriteByte(')')
	}
	if info.Hostname != "" {
		b.WriteString(" on ")
		b.WriteString(info.Hostname)
	}
	return b.String()
}

func newSessionID() string {
	return uuid.NewString()
}
