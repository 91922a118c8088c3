// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

// PlatformerConfig contains every tunable of the platformer engine.
type PlatformerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Camera     CameraConfig     `yaml:"camera"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines movement and collision parameters in world units.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`           // units/s^2, downward
	MaxSpeed         float64 `yaml:"max_speed"`         // max horizontal speed, units/s
	Acceleration     float64 `yaml:"acceleration"`      // horizontal acceleration toward target, units/s^2
	Friction         float64 `yaml:"friction"`          // velocity kept per 1/60 s with no input
	JumpImpulse      float64 `yaml:"jump_impulse"`      // negative = up
	SpringMultiplier float64 `yaml:"spring_multiplier"` // spring launch = jump_impulse * multiplier
	StompBounce      float64 `yaml:"stomp_bounce"`      // vertical velocity after a stomp
	MaxFrameDelta    float64 `yaml:"max_frame_delta"`   // seconds
	LandingEpsilon   float64 `yaml:"landing_epsilon"`   // tolerance for the previous-edge test
	EdgeInset        float64 `yaml:"edge_inset"`        // platform edges shrunk by this for landing
	PitMargin        float64 `yaml:"pit_margin"`        // fall this far below ground to die
	AxisDeadzone     float64 `yaml:"axis_deadzone"`     // analog values below this are ignored
	AxisThreshold    float64 `yaml:"axis_threshold"`    // analog values above this count as a direction
}

// PlayerConfig defines the player body and respawn behavior.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	StartX         float64 `yaml:"start_x"`
	StartOffsetY   float64 `yaml:"start_offset_y"` // spawn this far above ground
	RespawnLift    float64 `yaml:"respawn_lift"`   // checkpoint respawn raised by this
	Invulnerable   float64 `yaml:"invulnerability"` // seconds granted after a checkpoint respawn
	CoinPickupDist float64 `yaml:"coin_pickup_dist"`
}

// EnemyConfig defines enemy size and motion.
type EnemyConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	PatrolSpeed    float64 `yaml:"patrol_speed"`
	FlierSpeed     float64 `yaml:"flier_speed"`
	FlierAmplitude float64 `yaml:"flier_amplitude"`
	FlierFrequency float64 `yaml:"flier_frequency"` // radians per second
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	Offset         float64 `yaml:"offset"`          // player kept this far from the left edge
	Decay          float64 `yaml:"decay"`           // remaining distance fraction after one second
	ViewportWidth  float64 `yaml:"viewport_width"`  // logical resolution
	ViewportHeight float64 `yaml:"viewport_height"` // logical resolution
}

// GeneratorConfig defines the procedural level layout.
type GeneratorConfig struct {
	Levels     int     `yaml:"levels"`
	BaseWidth  float64 `yaml:"base_width"`
	WidthStep  float64 `yaml:"width_step"`
	GroundY    float64 `yaml:"ground_y"`
	GroundH    float64 `yaml:"ground_height"`
	TailMargin float64 `yaml:"tail_margin"` // no holes or clusters in the last stretch
	FinishW    float64 `yaml:"finish_width"`
	FinishH    float64 `yaml:"finish_height"`

	HoleStart    float64 `yaml:"hole_start"`
	HoleSpacing  float64 `yaml:"hole_spacing"`
	HoleShift    float64 `yaml:"hole_shift"` // per-level offset of the hole pattern
	HoleMinWidth float64 `yaml:"hole_min_width"`
	HoleMaxWidth float64 `yaml:"hole_max_width"`

	SegmentStart     float64 `yaml:"segment_start"`
	Segment          float64 `yaml:"segment"`
	PlatformMinW     float64 `yaml:"platform_min_width"`
	PlatformMaxW     float64 `yaml:"platform_max_width"`
	PlatformH        float64 `yaml:"platform_height"`
	PlatformMinLift  float64 `yaml:"platform_min_lift"` // height above ground
	PlatformLiftVar  float64 `yaml:"platform_lift_var"`
	MovingRangeMin   float64 `yaml:"moving_range_min"`
	MovingRangeMax   float64 `yaml:"moving_range_max"`
	MovingSpeedMin   float64 `yaml:"moving_speed_min"` // radians per second
	MovingSpeedMax   float64 `yaml:"moving_speed_max"`
	SpringW          float64 `yaml:"spring_width"`
	SpringH          float64 `yaml:"spring_height"`
	SpikeH           float64 `yaml:"spike_height"`
	SpikeInset       float64 `yaml:"spike_inset"`
	GroundSpikeW     float64 `yaml:"ground_spike_width"`
	GroundCoins      int     `yaml:"ground_coins"`
	CoinLift         float64 `yaml:"coin_lift"`
	SafeStart        float64 `yaml:"safe_start"`         // nothing hostile before this x
	HoleClearance    float64 `yaml:"hole_clearance"`     // keep ground hazards this far from holes
	MinPatrolSegment float64 `yaml:"min_patrol_segment"` // ground segments shorter than this get no patroller
}

// ScoringConfig defines points.
type ScoringConfig struct {
	Coin               int `yaml:"coin"`
	Stomp              int `yaml:"stomp"`
	WrongAnswerPenalty int `yaml:"wrong_answer_penalty"`
}

// QuizConfig defines the arithmetic quiz gate.
type QuizConfig struct {
	TimeLimit      float64 `yaml:"time_limit"` // seconds; 0 disables the timeout
	MaxOperand     int     `yaml:"max_operand"`
	OptionCount    int     `yaml:"option_count"`
	OptionSpread   int     `yaml:"option_spread"`
	AddProbability float64 `yaml:"add_probability"`
}

// DifficultyConfig defines how generation densities grow with level index.
type DifficultyConfig struct {
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	MaxAt        int           `yaml:"max_at"`        // level index at which scaling saturates
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the density range between easy and hard.
// Each pair is the value at difficulty 0 and at difficulty 1.
type ScalingConfig struct {
	PlatformChance    [2]float64 `yaml:"platform_chance"`
	MovingChance      [2]float64 `yaml:"moving_chance"`
	SpringChance      [2]float64 `yaml:"spring_chance"`
	EnemyChance       [2]float64 `yaml:"enemy_chance"`
	FlierChance       [2]float64 `yaml:"flier_chance"`
	SpikeChance       [2]float64 `yaml:"spike_chance"`
	CoinChance        [2]float64 `yaml:"coin_chance"`
	GroundEnemyEvery  int        `yaml:"ground_enemy_every"`  // one ground patroller per N levels
	GroundSpikeEvery  int        `yaml:"ground_spike_every"`  // one ground spike strip per N levels
	HoleEvery         int        `yaml:"hole_every"`          // one extra hole per N levels
	BaseHoles         int        `yaml:"base_holes"`
	SpikesFromLevel   int        `yaml:"spikes_from_level"`   // platform spikes start at this index
	FliersFromLevel   int        `yaml:"fliers_from_level"`   // fliers start at this index
	MovingFromLevel   int        `yaml:"moving_from_level"`   // moving platforms start at this index
	GroundHazardsFrom int        `yaml:"ground_hazards_from"` // ground spikes start at this index
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
