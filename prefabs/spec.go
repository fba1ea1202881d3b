package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CharacterSpec struct {
	Name           string   `yaml:"name"`
	Spawn          VecSpec  `yaml:"spawn"`
	DefaultSize    SizeSpec `yaml:"default_size"`
	LargeSize      SizeSpec `yaml:"large_size"`
	StompBounce    float64  `yaml:"stomp_bounce"`
	DeathVelocityY float64  `yaml:"death_velocity_y"`
	RestartDelayMs float64  `yaml:"restart_delay_ms"`
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	data, err := Load("character.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load character.yaml: %w", err)
	}
	var spec CharacterSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal character.yaml: %w", err)
	}
	return &spec, nil
}

type MoveSpec struct {
	MaxVelocityX float64 `yaml:"max_velocity_x"`
	Acceleration float64 `yaml:"acceleration"`
	StopSpeed    float64 `yaml:"stop_speed"`
	RunThreshold float64 `yaml:"run_threshold"`
}

type JumpSpec struct {
	VelocityY    float64 `yaml:"velocity_y"`
	MaxVelocityY float64 `yaml:"max_velocity_y"`
	DurationMs   float64 `yaml:"duration_ms"`
}

type LargeSpec struct {
	GrowLift     float64 `yaml:"grow_lift"`
	ProtectMs    float64 `yaml:"protect_ms"`
	ProtectAlpha float64 `yaml:"protect_alpha"`
}

type FireSpec struct {
	MaxBalls   int      `yaml:"max_balls"`
	CooldownMs float64  `yaml:"cooldown_ms"`
	SpeedX     float64  `yaml:"speed_x"`
	BounceY    float64  `yaml:"bounce_y"`
	Range      float64  `yaml:"range"`
	ExplodeMs  float64  `yaml:"explode_ms"`
	BallSize   SizeSpec `yaml:"ball_size"`
}

type InvincibleSpec struct {
	DurationMs float64  `yaml:"duration_ms"`
	Tints      []uint32 `yaml:"tints"`
}

type EnterPipeSpec struct {
	DurationMs float64 `yaml:"duration_ms"`
}

type HitBrickSpec struct {
	BumpHeight float64 `yaml:"bump_height"`
	BumpMs     float64 `yaml:"bump_ms"`
}

type AbilitiesSpec struct {
	Move       MoveSpec       `yaml:"move"`
	Jump       JumpSpec       `yaml:"jump"`
	Large      LargeSpec      `yaml:"large"`
	Fire       FireSpec       `yaml:"fire"`
	Invincible InvincibleSpec `yaml:"invincible"`
	EnterPipe  EnterPipeSpec  `yaml:"enter_pipe"`
	HitBrick   HitBrickSpec   `yaml:"hit_brick"`
}

func LoadAbilitiesSpec() (*AbilitiesSpec, error) {
	spec, err := LoadSpec[AbilitiesSpec]("abilities.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ShellSpec struct {
	Size      SizeSpec `yaml:"size"`
	KickSpeed float64  `yaml:"kick_speed"`
	KickNudge float64  `yaml:"kick_nudge"`
}

type EnemyKindSpec struct {
	Size  SizeSpec   `yaml:"size"`
	Walk  string     `yaml:"walk"`
	Dead  string     `yaml:"dead"`
	Shell *ShellSpec `yaml:"shell,omitempty"`
}

type EnemiesSpec struct {
	PatrolVelocityX  float64                  `yaml:"patrol_velocity_x"`
	KnockedVelocityY float64                  `yaml:"knocked_velocity_y"`
	FadeMs           float64                  `yaml:"fade_ms"`
	FadeRepeat       int                      `yaml:"fade_repeat"`
	Score            int                      `yaml:"score"`
	CullMargin       VecSpec                  `yaml:"cull_margin"`
	Kinds            map[string]EnemyKindSpec `yaml:"kinds"`
}

func LoadEnemiesSpec() (*EnemiesSpec, error) {
	spec, err := LoadSpec[EnemiesSpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PowerUpKindSpec struct {
	Score       int      `yaml:"score"`
	Lives       int      `yaml:"lives"`
	Velocity    VecSpec  `yaml:"velocity"`
	Bounce      VecSpec  `yaml:"bounce"`
	MaxVelocity VecSpec  `yaml:"max_velocity"`
	Gravity     bool     `yaml:"gravity"`
	Size        SizeSpec `yaml:"size"`
	Anim        string   `yaml:"anim"`
	Sound       string   `yaml:"sound"`
}

type CoinSpec struct {
	Rise       float64 `yaml:"rise"`
	DurationMs float64 `yaml:"duration_ms"`
	Coins      int     `yaml:"coins"`
}

type PowerUpsSpec struct {
	RevealRise       float64                    `yaml:"reveal_rise"`
	RevealDurationMs float64                    `yaml:"reveal_duration_ms"`
	HopVelocity      float64                    `yaml:"hop_velocity"`
	CullMargin       VecSpec                    `yaml:"cull_margin"`
	Kinds            map[string]PowerUpKindSpec `yaml:"kinds"`
	Coin             CoinSpec                   `yaml:"coin"`
}

func LoadPowerUpsSpec() (*PowerUpsSpec, error) {
	spec, err := LoadSpec[PowerUpsSpec]("powerups.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AnimationSpec struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type AnimationsSpec struct {
	Animations map[string]AnimationSpec `yaml:"animations"`
}

func LoadAnimationsSpec() (*AnimationsSpec, error) {
	spec, err := LoadSpec[AnimationsSpec]("animations.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning bundles every spec the game reads at level start.
type Tuning struct {
	Character  *CharacterSpec
	Abilities  *AbilitiesSpec
	Enemies    *EnemiesSpec
	PowerUps   *PowerUpsSpec
	Animations *AnimationsSpec
}

// LoadTuning loads all specs, disk overrides first.
func LoadTuning() (*Tuning, error) {
	character, err := LoadCharacterSpec()
	if err != nil {
		return nil, err
	}
	abilities, err := LoadAbilitiesSpec()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemiesSpec()
	if err != nil {
		return nil, err
	}
	powerUps, err := LoadPowerUpsSpec()
	if err != nil {
		return nil, err
	}
	animations, err := LoadAnimationsSpec()
	if err != nil {
		return nil, err
	}
	return &Tuning{
		Character:  character,
		Abilities:  abilities,
		Enemies:    enemies,
		PowerUps:   powerUps,
		Animations: animations,
	}, nil
}

// EnemyKinds returns the configured enemy kind names.
func (t *Tuning) EnemyKinds() []string {
	if t == nil || t.Enemies == nil {
		return nil
	}
	out := make([]string, 0, len(t.Enemies.Kinds))
	for k := range t.Enemies.Kinds {
		out = append(out, k)
	}
	return out
}
