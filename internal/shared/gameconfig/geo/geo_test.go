package geo

import (
	"errors"
	"slices"
	"testing"

	"ArmsDealer/internal/shared/config"
	"ArmsDealer/modules/kit/errx"
)

func loadFile(t *testing.T) atlasFile {
	t.Helper()
	var f atlasFile
	if err := config.LoadBytes(embeddedAtlas, "json", &f); err != nil {
		t.Fatalf("decode embedded atlas: %v", err)
	}
	return f
}

func removeBorder(f *atlasFile, code CountryCode, dir string, id CityID) {
	for i := range f.Countries {
		if f.Countries[i].Code != code {
			continue
		}
		for k, ids := range f.Countries[i].Borders {
			if d, _ := ParseDirection(k); d.String() == dir {
				f.Countries[i].Borders[k] = slices.DeleteFunc(slices.Clone(ids), func(c CityID) bool { return c == id })
			}
		}
	}
}

// borderKey 解码后 key 的大小写取决于 viper，这里按方向匹配。
func borderKey(m map[string][]CityID, dir Direction) string {
	for k := range m {
		if d, err := ParseDirection(k); err == nil && d == dir {
			return k
		}
	}
	return string(dir)
}

func TestDirection_反方向对合(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Opposite().Opposite() != d {
			t.Fatalf("opposite(opposite(%s)) = %s", d, d.Opposite().Opposite())
		}
		if d.Opposite() == d {
			t.Fatalf("opposite(%s) should differ", d)
		}
	}
	if OppositeDirection(North) != South || OppositeDirection(East) != West {
		t.Fatalf("unexpected opposite mapping")
	}
}

func TestParseDirection_大小写不敏感(t *testing.T) {
	d, err := ParseDirection(" west ")
	if err != nil || d != West {
		t.Fatalf("ParseDirection = %v, %v", d, err)
	}
	_, err = ParseDirection("UP")
	if !errors.Is(err, ErrUnknownDirection) {
		t.Fatalf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestDefault_内置数据无缺陷(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if defects := a.Validate(); len(defects) != 0 {
		t.Fatalf("defects: %v", defects)
	}
	if len(a.Countries()) != len(AllCountries()) {
		t.Fatalf("countries = %d, want %d", len(a.Countries()), len(AllCountries()))
	}
	if a.AttackDistance() != 1500 || a.FrontierTolerance() != 20 {
		t.Fatalf("geometry = %v/%v", a.AttackDistance(), a.FrontierTolerance())
	}
}

func TestDefault_边境城市符号正确(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, c := range a.Countries() {
		for _, d := range AllDirections() {
			for _, bc := range a.BorderCitiesForDirection(c, d) {
				p := bc.Position
				bad := (d == North && p.Y >= 0) || (d == South && p.Y <= 0) ||
					(d == East && p.X <= 0) || (d == West && p.X >= 0)
				if bad {
					t.Fatalf("%s %s %s at %+v on wrong side", c, d, bc.CityID, p)
				}
				if bc.Direction != d {
					t.Fatalf("%s direction = %s, want %s", bc.CityID, bc.Direction, d)
				}
			}
		}
	}
}

func TestBorderCitiesForDirection_乌克兰(t *testing.T) {
	a, _ := Default()
	north := a.BorderCitiesForDirection(Ukraine, North)
	if len(north) != 1 || north[0].CityID != "ukr.chernihiv" {
		t.Fatalf("UKR NORTH = %+v", north)
	}
	east := a.BorderCitiesForDirection(Ukraine, East)
	want := []CityID{"ukr.kharkiv", "ukr.sumy", "ukr.luhansk"}
	if len(east) != len(want) {
		t.Fatalf("UKR EAST = %+v", east)
	}
	for i := range want {
		if east[i].CityID != want[i] {
			t.Fatalf("UKR EAST[%d] = %s, want %s", i, east[i].CityID, want[i])
		}
	}
	// 返回副本
	east[0].CityID = "x"
	if a.BorderCitiesForDirection(Ukraine, East)[0].CityID != "ukr.kharkiv" {
		t.Fatalf("border list should be copied")
	}
	if got := a.BorderCitiesForDirection("XXX", North); got != nil {
		t.Fatalf("unknown country should get nil, got %+v", got)
	}
}

func TestNeighborDirection_与邻居表一致(t *testing.T) {
	a, _ := Default()
	d, ok := a.NeighborDirection(Ukraine, Russia)
	if !ok || d != East {
		t.Fatalf("UKR->RUS = %v %v", d, ok)
	}
	if _, ok := a.NeighborDirection(Ukraine, Syria); ok {
		t.Fatalf("UKR and SYR are not adjacent")
	}
	for _, c := range a.Countries() {
		for _, n := range a.Neighbors(c) {
			got, ok := a.NeighborDirection(c, n.Country)
			if !ok || got != n.Direction {
				t.Fatalf("%s->%s = %v, want %v", c, n.Country, got, n.Direction)
			}
		}
	}
}

func TestAsymmetricNeighbors_只报告(t *testing.T) {
	a, _ := Default()
	asym := a.AsymmetricNeighbors()
	found := false
	for _, x := range asym {
		if x.Country == Turkey && x.Neighbor == Georgia {
			found = x.Direction == East && x.Reverse == South
		}
	}
	if !found {
		t.Fatalf("expected TUR->GEO asymmetry, got %+v", asym)
	}
}

func TestAttackLine_跳过已陷落城市(t *testing.T) {
	a, _ := Default()
	line, ok := a.AttackLine(Ukraine, Russia, nil)
	if !ok || line.Target == nil || line.Target.CityID != "ukr.kharkiv" {
		t.Fatalf("line = %+v", line)
	}
	if line.From != (Point{X: 1500, Y: 0}) {
		t.Fatalf("origin = %+v", line.From)
	}
	line, _ = a.AttackLine(Ukraine, Russia, map[CityID]bool{"ukr.kharkiv": true})
	if line.Target == nil || line.Target.CityID != "ukr.sumy" {
		t.Fatalf("after fall = %+v", line.Target)
	}
	line, _ = a.AttackLine(Ukraine, Russia, map[CityID]bool{"ukr.kharkiv": true, "ukr.sumy": true, "ukr.luhansk": true})
	if line.Target != nil {
		t.Fatalf("all fallen should have no target, got %+v", line.Target)
	}
	if _, ok := a.AttackLine(Ukraine, Syria, nil); ok {
		t.Fatalf("non-neighbors have no attack line")
	}
}

func TestFrontierGaps_移除登记城市后出现缺口(t *testing.T) {
	cases := []struct {
		country CountryCode
		dir     string
		removed CityID
		border  CityID
	}{
		{Ukraine, "WEST", "ukr.uzhhorod", "ukr.chernivtsi"},
		{Romania, "NORTH", "rou.siret", "rou.suceava"},
		{Azerbaijan, "WEST", "aze.gazakh", "aze.tovuz"},
		{Azerbaijan, "SOUTH", "aze.astara", "aze.lankaran"},
		{Turkey, "EAST", "tur.artvin", "tur.hopa"},
	}
	for _, tc := range cases {
		f := loadFile(t)
		removeBorder(&f, tc.country, tc.dir, tc.removed)
		_, err := fromFile(f)
		if !errors.Is(err, ErrInvalidAtlas) {
			t.Fatalf("%s: expected ErrInvalidAtlas, got %v", tc.removed, err)
		}
		var xe *errx.Error
		if !errors.As(err, &xe) {
			t.Fatalf("expected *errx.Error")
		}
		defects, _ := xe.Data()["defects"].([]Defect)
		if len(defects) != 1 {
			t.Fatalf("%s: defects = %v", tc.removed, defects)
		}
		d := defects[0]
		if d.Problem != ProblemFrontierGap || d.City != tc.removed || d.Other != string(tc.border) {
			t.Fatalf("%s: defect = %+v", tc.removed, d)
		}
	}
}

func TestLoad_收集全部缺陷(t *testing.T) {
	f := loadFile(t)
	for i := range f.Countries {
		switch f.Countries[i].Code {
		case Ukraine:
			f.Countries[i].Neighbors = append(f.Countries[i].Neighbors, DirectionalNeighbor{Country: Ukraine, Direction: North})
			k := borderKey(f.Countries[i].Borders, North)
			f.Countries[i].Borders[k] = append(slices.Clone(f.Countries[i].Borders[k]), "ukr.nowhere")
		case Syria:
			// 北边城市挪到南边
			north := borderKey(f.Countries[i].Borders, North)
			f.Countries[i].Borders[string(South)] = f.Countries[i].Borders[north]
		}
	}
	f.Countries = slices.DeleteFunc(f.Countries, func(c countryFile) bool { return c.Code == Iran })

	_, err := fromFile(f)
	var xe *errx.Error
	if !errors.As(err, &xe) {
		t.Fatalf("expected *errx.Error, got %v", err)
	}
	defects, _ := xe.Data()["defects"].([]Defect)
	if xe.Data()["count"] != len(defects) || len(defects) == 0 {
		t.Fatalf("count=%v defects=%d", xe.Data()["count"], len(defects))
	}
	has := func(p Problem) bool {
		return slices.ContainsFunc(defects, func(d Defect) bool { return d.Problem == p })
	}
	for _, p := range []Problem{ProblemSelfNeighbor, ProblemUnknownBorderCity, ProblemWrongSide, ProblemMissingCountry, ProblemUnknownNeighbor} {
		if !has(p) {
			t.Fatalf("missing %s in %v", p, defects)
		}
	}
}
