package tuning

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"spacestation.ai/internal/sim/world"
)

//go:embed tuning.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("https://spacestation.ai/schemas/tuning.schema.json", schemaJSON)

type Tuning struct {
	PlayArea       int    `yaml:"play_area" json:"play_area"`
	SpawnResources uint64 `yaml:"spawn_resources" json:"spawn_resources"`
	ResourceMaxCap int    `yaml:"resource_max_cap" json:"resource_max_cap"`

	ConsumptionRate  int `yaml:"consumption_rate" json:"consumption_rate"`
	RechargeRate     int `yaml:"recharge_rate" json:"recharge_rate"`
	RechargeInterval int `yaml:"recharge_interval" json:"recharge_interval"` // ms between recharge steps
	GameTick         int `yaml:"game_tick" json:"game_tick"`

	MiningReach  int `yaml:"mining_reach" json:"mining_reach"`
	StorageStart int `yaml:"storage_start" json:"storage_start"`
	PingRadius   int `yaml:"ping_radius" json:"ping_radius"`
}

func Defaults() Tuning {
	return Tuning{
		PlayArea:         100,
		SpawnResources:   100,
		ResourceMaxCap:   100,
		ConsumptionRate:  1,
		RechargeRate:     1,
		RechargeInterval: 200,
		GameTick:         1,
		MiningReach:      1,
		StorageStart:     0,
		PingRadius:       25,
	}
}

// Load reads a YAML tuning file. Keys missing from the file keep their
// default values.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := Parse(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse validates raw against the tuning schema and decodes it over t.
func Parse(raw []byte, t *Tuning) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc != nil {
		if err := validateDoc(doc); err != nil {
			return err
		}
	}
	return yaml.Unmarshal(raw, t)
}

func (t Tuning) Validate() error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return validateJSON(b)
}

// validateDoc round-trips through JSON so the validator sees json.Unmarshal
// shapes rather than YAML ones.
func validateDoc(doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tuning is not a JSON-compatible document: %w", err)
	}
	return validateJSON(b)
}

func validateJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

func (t Tuning) ToWorldConfig() world.Config {
	return world.Config{
		PlayArea:         t.PlayArea,
		SpawnResources:   t.SpawnResources,
		ResourceMaxCap:   t.ResourceMaxCap,
		ConsumptionRate:  t.ConsumptionRate,
		RechargeRate:     t.RechargeRate,
		RechargeInterval: t.RechargeInterval,
		GameTick:         uint8(t.GameTick),
		MiningReach:      t.MiningReach,
	}
}
