package geo

import "math"

// FrontierGap 某城市位于进攻起点与已登记边境城市之间，却没有登记在该方向。
type FrontierGap struct {
	Country   CountryCode `json:"country"`
	Direction Direction   `json:"direction"`
	Border    CityID      `json:"border"`
	Blocking  CityID      `json:"blocking"`
	Offset    float64     `json:"offset"`
}

func (g FrontierGap) Defect() Defect {
	return Defect{
		Country:   g.Country,
		Direction: g.Direction,
		City:      g.Blocking,
		Other:     string(g.Border),
		Problem:   ProblemFrontierGap,
	}
}

// FrontierGaps 检查全部国家、全部方向。
func (a *Atlas) FrontierGaps() []FrontierGap {
	var gaps []FrontierGap
	for _, code := range a.order {
		for _, dir := range AllDirections() {
			gaps = append(gaps, a.frontierGaps(code, dir)...)
		}
	}
	return gaps
}

func (a *Atlas) frontierGaps(code CountryCode, dir Direction) []FrontierGap {
	g := a.countries[code]
	borders := g.borders[dir]
	if len(borders) == 0 {
		return nil
	}
	registered := make(map[CityID]bool, len(borders))
	for _, bc := range borders {
		registered[bc.CityID] = true
	}

	origin := a.AttackOrigin(dir)
	var gaps []FrontierGap
	for _, bc := range borders {
		seg := bc.Position.Sub(origin)
		length := math.Sqrt(seg.Dot(seg))
		if length == 0 {
			continue
		}
		for _, c := range g.cities {
			if c.ID == bc.CityID || registered[c.ID] {
				continue
			}
			rel := c.Position.Sub(origin)
			t := rel.Dot(seg) / (length * length)
			if t <= 0 || t >= 1 {
				continue
			}
			offset := math.Abs(seg.Cross(rel)) / length
			if offset > a.tolerance {
				continue
			}
			gaps = append(gaps, FrontierGap{
				Country:   code,
				Direction: dir,
				Border:    bc.CityID,
				Blocking:  c.ID,
				Offset:    offset,
			})
		}
	}
	return gaps
}

// Asymmetry A 声明 B 在 Direction 方向，但 B 对 A 的声明不是反方向（或根本没声明）。
type Asymmetry struct {
	Country   CountryCode `json:"country"`
	Neighbor  CountryCode `json:"neighbor"`
	Direction Direction   `json:"direction"`
	Reverse   Direction   `json:"reverse,omitempty"`
}

// AsymmetricNeighbors 只报告，不视为缺陷。
func (a *Atlas) AsymmetricNeighbors() []Asymmetry {
	var out []Asymmetry
	for _, code := range a.order {
		for _, n := range a.countries[code].neighbors {
			rev, ok := a.NeighborDirection(n.Country, code)
			if ok && rev == n.Direction.Opposite() {
				continue
			}
			out = append(out, Asymmetry{Country: code, Neighbor: n.Country, Direction: n.Direction, Reverse: rev})
		}
	}
	return out
}
