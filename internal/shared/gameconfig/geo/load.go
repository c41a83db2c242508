package geo

import (
	_ "embed"
	"sync"

	"ArmsDealer/internal/shared/config"
)

//go:embed atlas.json
var embeddedAtlas []byte

const (
	defaultAttackDistance    = 1500
	defaultFrontierTolerance = 20
)

type atlasFile struct {
	Title             string        `mapstructure:"title"`
	AttackDistance    float64       `mapstructure:"attack_distance"`
	FrontierTolerance float64       `mapstructure:"frontier_tolerance"`
	Countries         []countryFile `mapstructure:"countries"`
}

type countryFile struct {
	Code      CountryCode           `mapstructure:"code"`
	Name      string                `mapstructure:"name"`
	Cities    []cityFile            `mapstructure:"cities"`
	Neighbors []DirectionalNeighbor `mapstructure:"neighbors"`
	// viper 会把 key 转成小写，方向在 build 时再解析
	Borders map[string][]CityID `mapstructure:"borders"`
}

type cityFile struct {
	ID   CityID  `mapstructure:"id"`
	Name string  `mapstructure:"name"`
	X    float64 `mapstructure:"x"`
	Y    float64 `mapstructure:"y"`
}

// Options 覆盖数据文件中的几何参数，零值表示沿用文件。
type Options struct {
	Path              string
	AttackDistance    float64
	FrontierTolerance float64
}

var (
	defaultOnce  sync.Once
	defaultAtlas *Atlas
	defaultErr   error
)

// Default 内置数据，只构建一次。调用方不得修改返回值。
func Default() (*Atlas, error) {
	defaultOnce.Do(func() {
		defaultAtlas, defaultErr = Load(Options{})
	})
	return defaultAtlas, defaultErr
}

// Load 读取并校验数据；任何不一致都会以 ErrInvalidAtlas 返回，data 中带全部问题。
func Load(opts Options) (*Atlas, error) {
	var f atlasFile
	var err error
	if opts.Path != "" {
		err = config.Load(opts.Path, &f)
	} else {
		err = config.LoadBytes(embeddedAtlas, "json", &f)
	}
	if err != nil {
		return nil, err
	}
	if opts.AttackDistance > 0 {
		f.AttackDistance = opts.AttackDistance
	}
	if opts.FrontierTolerance > 0 {
		f.FrontierTolerance = opts.FrontierTolerance
	}
	return fromFile(f)
}

// fromFile 构建并校验。
func fromFile(f atlasFile) (*Atlas, error) {
	a, defects := build(f)
	defects = append(defects, a.validate()...)
	for _, gap := range a.FrontierGaps() {
		defects = append(defects, gap.Defect())
	}
	if len(defects) != 0 {
		return nil, ErrInvalidAtlas.WithDataMap(map[string]any{
			"defects": defects,
			"count":   len(defects),
		})
	}
	return a, nil
}

// build 只做结构转换，收集无法转换的条目（未知方向、未知城市引用）。
func build(f atlasFile) (*Atlas, []Defect) {
	a := &Atlas{
		title:          f.Title,
		attackDistance: f.AttackDistance,
		tolerance:      f.FrontierTolerance,
		countries:      make(map[CountryCode]*CountryGeo, len(f.Countries)),
	}
	if a.attackDistance <= 0 {
		a.attackDistance = defaultAttackDistance
	}
	if a.tolerance <= 0 {
		a.tolerance = defaultFrontierTolerance
	}

	var defects []Defect
	for _, cf := range f.Countries {
		if _, dup := a.countries[cf.Code]; dup {
			defects = append(defects, Defect{Country: cf.Code, Problem: ProblemDuplicateCountry})
			continue
		}
		g := &CountryGeo{
			code:      cf.Code,
			name:      cf.Name,
			cityIdx:   make(map[CityID]int, len(cf.Cities)),
			neighbors: cf.Neighbors,
			borders:   make(map[Direction][]BorderCity, len(cf.Borders)),
		}
		for _, c := range cf.Cities {
			if _, dup := g.cityIdx[c.ID]; dup {
				defects = append(defects, Defect{Country: cf.Code, City: c.ID, Problem: ProblemDuplicateCity})
				continue
			}
			g.cityIdx[c.ID] = len(g.cities)
			g.cities = append(g.cities, City{ID: c.ID, Name: c.Name, Position: Point{X: c.X, Y: c.Y}})
		}
		for rawDir, ids := range cf.Borders {
			dir, err := ParseDirection(rawDir)
			if err != nil {
				defects = append(defects, Defect{Country: cf.Code, Direction: Direction(rawDir), Problem: ProblemUnknownDirection})
				continue
			}
			for _, id := range ids {
				i, ok := g.cityIdx[id]
				if !ok {
					defects = append(defects, Defect{Country: cf.Code, City: id, Direction: dir, Problem: ProblemUnknownBorderCity})
					continue
				}
				c := g.cities[i]
				g.borders[dir] = append(g.borders[dir], BorderCity{
					CityID:    c.ID,
					CityName:  c.Name,
					Direction: dir,
					Position:  c.Position,
				})
			}
		}
		a.countries[cf.Code] = g
		a.order = append(a.order, cf.Code)
	}
	return a, defects
}
