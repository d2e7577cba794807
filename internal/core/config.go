package core

// RuntimeConfig contains host-level settings passed to a session at startup.
// Simulation tuning lives in config.IslandConfig; this only carries what the
// host decides (screen size, render rate, seed).
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	FrameHz  int    // Render frames per second requested by the host
	Seed     int64  // RNG seed, 0 means the host picks one from the clock
	SaveSlot string // Save slot used by quick save
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		FrameHz:  60,
		SaveSlot: "quick",
	}
}
