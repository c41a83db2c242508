package service

import (
	"fmt"
	"strings"

	"ArmsDealer/internal/shared/config"
	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/war/entity"
	"ArmsDealer/modules/kit/errx"
)

// Scenario 无界面运行时代替征兵/开战方，描述初始编队和战争。
type Scenario struct {
	Name  string         `yaml:"name" mapstructure:"name"`
	Turn  int            `yaml:"turn" mapstructure:"turn"`
	Wars  []ScenarioWar  `yaml:"wars" mapstructure:"wars"`
	Units []ScenarioUnit `yaml:"units" mapstructure:"units"`
}

type ScenarioWar struct {
	Attacker geo.CountryCode `yaml:"attacker" mapstructure:"attacker"`
	Defender geo.CountryCode `yaml:"defender" mapstructure:"defender"`
}

type ScenarioUnit struct {
	ID           string          `yaml:"id" mapstructure:"id"`
	Kind         entity.Kind     `yaml:"kind" mapstructure:"kind"`
	Country      geo.CountryCode `yaml:"country" mapstructure:"country"`
	Branch       entity.Branch   `yaml:"branch" mapstructure:"branch"`
	Count        int             `yaml:"count" mapstructure:"count"`
	MaxStrength  float64         `yaml:"max_strength" mapstructure:"max_strength"`
	Strength     *float64        `yaml:"strength" mapstructure:"strength"`
	Equipment    int             `yaml:"equipment" mapstructure:"equipment"`
	Supplies     *float64        `yaml:"supplies" mapstructure:"supplies"`
	Organization *float64        `yaml:"organization" mapstructure:"organization"`
	Training     *float64        `yaml:"training" mapstructure:"training"`
	Morale       *float64        `yaml:"morale" mapstructure:"morale"`
	Momentum     *float64        `yaml:"momentum" mapstructure:"momentum"`
	// regular 驻扎城市
	City geo.CityID `yaml:"city" mapstructure:"city"`
	// assault 进攻目标
	Target geo.CountryCode `yaml:"target" mapstructure:"target"`
}

// IDGenerator 剧本里没写 id 的编队用它生成。
type IDGenerator interface {
	NextString(prefix string) string
}

func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	if err := config.Load(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Apply 先开战，再编入部队，最后分配进攻目标。
func (s *Scenario) Apply(world *entity.World, ids IDGenerator) error {
	if s.Turn > 0 {
		world.SetTurn(s.Turn)
	}
	for _, w := range s.Wars {
		if _, err := world.DeclareWar(w.Attacker, w.Defender); err != nil {
			return err
		}
	}
	for i, su := range s.Units {
		if err := s.applyUnit(world, ids, i, su); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scenario) applyUnit(world *entity.World, ids IDGenerator, idx int, su ScenarioUnit) error {
	country, ok := world.Country(su.Country)
	if !ok {
		return entity.ErrUnknownCountry.WithData("country", su.Country).WithData("unit_index", idx)
	}
	count := max(1, su.Count)
	for n := 0; n < count; n++ {
		spec := su.spec(ids, idx, n, count)
		switch su.Kind {
		case entity.KindRegular:
			if _, ok := world.Atlas().City(su.Country, su.City); !ok {
				return errx.ErrInvalidConfig.WithData("unit_index", idx).WithData("city", su.City).WithData("country", su.Country)
			}
			if err := country.AddRegular(entity.NewRegularUnit(spec, su.City)); err != nil {
				return err
			}
		case entity.KindAssault:
			u := entity.NewAssaultUnit(spec, "")
			if su.Morale != nil || su.Momentum != nil {
				morale, momentum := float64(entity.DefaultMorale), 0.0
				if su.Morale != nil {
					morale = *su.Morale
				}
				if su.Momentum != nil {
					momentum = *su.Momentum
				}
				u.Restore(morale, momentum)
			}
			if err := country.AddAssault(u); err != nil {
				return err
			}
			if su.Target != "" {
				if _, err := world.AssignTarget(su.Country, u.ID(), su.Target); err != nil {
					return err
				}
			}
		default:
			return errx.ErrInvalidConfig.WithData("unit_index", idx).WithData("kind", su.Kind)
		}
	}
	return nil
}

func (su ScenarioUnit) spec(ids IDGenerator, idx, n, count int) entity.UnitSpec {
	id := su.ID
	switch {
	case id == "" && ids != nil:
		id = ids.NextString(strings.ToLower(string(su.Country)) + "-")
	case id == "":
		id = fmt.Sprintf("%s-%s-%d-%d", strings.ToLower(string(su.Country)), su.Kind, idx, n+1)
	case count > 1:
		id = fmt.Sprintf("%s-%d", id, n+1)
	}
	branch := su.Branch
	if branch == "" {
		branch = entity.BranchArmy
	}
	spec := entity.UnitSpec{
		ID:          entity.UnitID(id),
		Country:     su.Country,
		Branch:      branch,
		MaxStrength: su.MaxStrength,
		Equipment:   su.Equipment,
		Strength:    su.Strength,
	}
	if su.Supplies != nil || su.Organization != nil || su.Training != nil {
		attrs := entity.DefaultAttributes()
		if su.Supplies != nil {
			attrs.Supplies = *su.Supplies
		}
		if su.Organization != nil {
			attrs.Organization = *su.Organization
		}
		if su.Training != nil {
			attrs.Training = *su.Training
		}
		spec.Attributes = &attrs
	}
	return spec
}
