package geo

import "slices"

// CityID 聚居点 id，全局唯一（约定 "<国家小写>.<城市>"）。
type CityID string

// City 国家内的聚居点，坐标相对于国家原点。
type City struct {
	ID       CityID
	Name     string
	Position Point
}

// BorderCity 不可变配置：某个方向上的边境城市。
type BorderCity struct {
	CityID    CityID    `json:"city_id"`
	CityName  string    `json:"city_name"`
	Direction Direction `json:"direction"`
	Position  Point     `json:"position"`
}

// DirectionalNeighbor 不可变配置：邻国以及它位于本国的哪个方向。
type DirectionalNeighbor struct {
	Country   CountryCode `json:"country"`
	Direction Direction   `json:"direction"`
}

// CountryGeo 单个国家的静态地理数据。
type CountryGeo struct {
	code      CountryCode
	name      string
	cities    []City
	cityIdx   map[CityID]int
	neighbors []DirectionalNeighbor
	borders   map[Direction][]BorderCity
}

func (g *CountryGeo) Code() CountryCode { return g.code }
func (g *CountryGeo) Name() string      { return g.name }

// Atlas 国家邻接图 + 边境城市登记表。加载后只读，无需加锁。
type Atlas struct {
	title          string
	attackDistance float64
	tolerance      float64
	countries      map[CountryCode]*CountryGeo
	order          []CountryCode
}

func (a *Atlas) Title() string { return a.title }

// AttackDistance 进攻起点到国家原点的距离。
func (a *Atlas) AttackDistance() float64 { return a.attackDistance }

// FrontierTolerance 判定“挡在中间”的横向容差。
func (a *Atlas) FrontierTolerance() float64 { return a.tolerance }

// Countries 按数据文件顺序返回。
func (a *Atlas) Countries() []CountryCode {
	return slices.Clone(a.order)
}

func (a *Atlas) Country(code CountryCode) (*CountryGeo, bool) {
	g, ok := a.countries[code]
	return g, ok
}

// BorderCitiesForDirection 有序列表，可能为空。
func (a *Atlas) BorderCitiesForDirection(country CountryCode, dir Direction) []BorderCity {
	g, ok := a.countries[country]
	if !ok {
		return nil
	}
	return slices.Clone(g.borders[dir])
}

// Neighbors 按数据顺序。
func (a *Atlas) Neighbors(country CountryCode) []DirectionalNeighbor {
	g, ok := a.countries[country]
	if !ok {
		return nil
	}
	return slices.Clone(g.neighbors)
}

// NeighborDirection 邻国位于 country 的哪个方向；取第一条声明。
func (a *Atlas) NeighborDirection(country, neighbor CountryCode) (Direction, bool) {
	g, ok := a.countries[country]
	if !ok {
		return "", false
	}
	for _, n := range g.neighbors {
		if n.Country == neighbor {
			return n.Direction, true
		}
	}
	return "", false
}

func (a *Atlas) Cities(country CountryCode) []City {
	g, ok := a.countries[country]
	if !ok {
		return nil
	}
	return slices.Clone(g.cities)
}

func (a *Atlas) City(country CountryCode, id CityID) (City, bool) {
	g, ok := a.countries[country]
	if !ok {
		return City{}, false
	}
	i, ok := g.cityIdx[id]
	if !ok {
		return City{}, false
	}
	return g.cities[i], true
}

// AttackOrigin 某方向来袭时的进攻起点（局部坐标）。
func (a *Atlas) AttackOrigin(dir Direction) Point {
	return dir.Unit().Scale(a.attackDistance)
}

// AttackLine 渲染用：从进攻起点指向当前前线城市。
type AttackLine struct {
	Defender  CountryCode `json:"defender"`
	Attacker  CountryCode `json:"attacker"`
	Direction Direction   `json:"direction"`
	From      Point       `json:"from"`
	Target    *BorderCity `json:"target,omitempty"`
}

// AttackLine 计算 attacker 进攻 defender 的攻击线；fallen 中的城市被跳过。
// 方向由 defender 对 attacker 的邻接声明决定，没有声明时返回 false。
func (a *Atlas) AttackLine(defender, attacker CountryCode, fallen map[CityID]bool) (AttackLine, bool) {
	dir, ok := a.NeighborDirection(defender, attacker)
	if !ok {
		return AttackLine{}, false
	}
	line := AttackLine{
		Defender:  defender,
		Attacker:  attacker,
		Direction: dir,
		From:      a.AttackOrigin(dir),
	}
	for _, bc := range a.countries[defender].borders[dir] {
		if fallen[bc.CityID] {
			continue
		}
		target := bc
		line.Target = &target
		break
	}
	return line, true
}
