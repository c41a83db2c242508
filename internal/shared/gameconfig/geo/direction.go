package geo

import (
	"strings"
)

// Direction 罗盘方向，描述国家的哪一侧面向某个邻国。
type Direction string

const (
	North Direction = "NORTH"
	East  Direction = "EAST"
	South Direction = "SOUTH"
	West  Direction = "WEST"
)

// AllDirections 固定顺序：N E S W。
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Opposite 对合映射：NORTH↔SOUTH、EAST↔WEST。未知方向原样返回。
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// OppositeDirection 同 d.Opposite()。
func OppositeDirection(d Direction) Direction {
	return d.Opposite()
}

// Unit 屏幕坐标系下的单位向量：+x 向东，+y 向南。
func (d Direction) Unit() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case South:
		return Point{X: 0, Y: 1}
	case East:
		return Point{X: 1, Y: 0}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Valid 是否为四个方向之一。
func (d Direction) Valid() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection 大小写不敏感。
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrUnknownDirection.WithData("direction", s)
	}
	return d, nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

// Point 国家局部坐标（以国家原点为中心）。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

func (p Point) Cross(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}
