package main

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/pkg/profile"
)

var modes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// profileModes returns the names of the supported profiling modes.
func profileModes() []string {
	return slices.Sorted(maps.Keys(modes))
}

// startProfile starts profiling in the given mode and returns a function to
// stop it. An empty or unknown mode does nothing.
func startProfile(ctx context.Context, logger *slog.Logger, mode, dir string) (stop func()) {
	m, ok := modes[mode]
	if !ok {
		return func() {}
	}
	logger.DebugContext(ctx, "profile start", slog.String("mode", mode), slog.String("dir", dir))
	p := profile.Start(m, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook)
	return func() {
		p.Stop()
		logger.DebugContext(ctx, "profile stop", slog.String("mode", mode), slog.String("dir", dir))
	}
}
