package geo

import "fmt"

// Problem 数据缺陷类别。
type Problem string

const (
	ProblemDuplicateCountry  Problem = "duplicate_country"
	ProblemUnknownCountry    Problem = "unknown_country"
	ProblemMissingCountry    Problem = "missing_country"
	ProblemDuplicateCity     Problem = "duplicate_city"
	ProblemSelfNeighbor      Problem = "self_neighbor"
	ProblemUnknownNeighbor   Problem = "unknown_neighbor"
	ProblemDuplicateNeighbor Problem = "duplicate_neighbor"
	ProblemInvalidDirection  Problem = "invalid_neighbor_direction"
	ProblemUnknownDirection  Problem = "unknown_border_direction"
	ProblemUnknownBorderCity Problem = "unknown_border_city"
	ProblemDuplicateBorder   Problem = "duplicate_border_city"
	ProblemWrongSide         Problem = "border_city_wrong_side"
	ProblemFrontierGap       Problem = "frontier_gap"
)

// Defect 一条数据问题，Validate 会一次性返回全部。
type Defect struct {
	Country   CountryCode `json:"country"`
	Direction Direction   `json:"direction,omitempty"`
	City      CityID      `json:"city,omitempty"`
	Other     string      `json:"other,omitempty"`
	Problem   Problem     `json:"problem"`
}

func (d Defect) String() string {
	s := fmt.Sprintf("%s %s", d.Country, d.Problem)
	if d.Direction != "" {
		s += " dir=" + string(d.Direction)
	}
	if d.City != "" {
		s += " city=" + string(d.City)
	}
	if d.Other != "" {
		s += " other=" + d.Other
	}
	return s
}

// Validate 对已加载的数据重新做一次完整检查（含前线缺口），无问题返回 nil。
func (a *Atlas) Validate() []Defect {
	defects := a.validate()
	for _, gap := range a.FrontierGaps() {
		defects = append(defects, gap.Defect())
	}
	return defects
}

// validate 结构与符号检查，不含缺口。
func (a *Atlas) validate() []Defect {
	var defects []Defect
	for _, code := range a.order {
		if !code.Known() {
			defects = append(defects, Defect{Country: code, Problem: ProblemUnknownCountry})
		}
	}
	for _, code := range AllCountries() {
		if _, ok := a.countries[code]; !ok {
			defects = append(defects, Defect{Country: code, Problem: ProblemMissingCountry})
		}
	}

	for _, code := range a.order {
		g := a.countries[code]
		seen := make(map[CountryCode]bool, len(g.neighbors))
		for _, n := range g.neighbors {
			switch {
			case n.Country == code:
				defects = append(defects, Defect{Country: code, Other: string(n.Country), Problem: ProblemSelfNeighbor})
			case a.countries[n.Country] == nil:
				defects = append(defects, Defect{Country: code, Other: string(n.Country), Problem: ProblemUnknownNeighbor})
			case seen[n.Country]:
				defects = append(defects, Defect{Country: code, Other: string(n.Country), Problem: ProblemDuplicateNeighbor})
			}
			if !n.Direction.Valid() {
				defects = append(defects, Defect{Country: code, Direction: n.Direction, Other: string(n.Country), Problem: ProblemInvalidDirection})
			}
			seen[n.Country] = true
		}

		for _, dir := range AllDirections() {
			dup := make(map[CityID]bool)
			for _, bc := range g.borders[dir] {
				if dup[bc.CityID] {
					defects = append(defects, Defect{Country: code, Direction: dir, City: bc.CityID, Problem: ProblemDuplicateBorder})
					continue
				}
				dup[bc.CityID] = true
				if !onSide(bc.Position, dir) {
					defects = append(defects, Defect{Country: code, Direction: dir, City: bc.CityID, Problem: ProblemWrongSide})
				}
			}
		}
	}
	return defects
}

// onSide 北边城市 y<0，南边 y>0，东边 x>0，西边 x<0。
func onSide(p Point, dir Direction) bool {
	return p.Dot(dir.Unit()) > 0
}
