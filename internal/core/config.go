package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for seeding randomness.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Frames requested per second (default 60)
	Seed       int64  // RNG seed; 0 means use current time in platform layer
	PlayerName string // Display name shown on the HUD and stored with runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score        int  // Current score
	Level        int  // 1-based level number
	Correct      int  // Correctly answered quiz questions
	Wrong        int  // Incorrect or timed-out quiz questions
	Paused       bool // Whether the game is paused
	AwaitingQuiz bool // Whether the simulation is frozen behind the quiz gate
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	// RunEnded is set when a campaign wraps back to the first level.
	// The platform persists the finished run before the score resets.
	RunEnded bool
	Final    GameState
}
