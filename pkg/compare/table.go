package compare

import (
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// Winner names the side with the higher value.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "tie"
)

func winner(a, b int) Winner {
	switch {
	case a > b:
		return WinnerA
	case b > a:
		return WinnerB
	default:
		return WinnerTie
	}
}

// Row compares one stat. A stat missing on one side counts as 0.
type Row struct {
	Stat   string `json:"stat" yaml:"stat"`
	Label  string `json:"label" yaml:"label"`
	A      int    `json:"a" yaml:"a"`
	B      int    `json:"b" yaml:"b"`
	Winner Winner `json:"winner" yaml:"winner"`
}

// Result is a full stat comparison.
type Result struct {
	NameA       string `json:"nameA" yaml:"nameA"`
	NameB       string `json:"nameB" yaml:"nameB"`
	Rows        []Row  `json:"rows" yaml:"rows"`
	TotalA      int    `json:"totalA" yaml:"totalA"`
	TotalB      int    `json:"totalB" yaml:"totalB"`
	TotalWinner Winner `json:"totalWinner" yaml:"totalWinner"`
}

// Table compares the base stats of a and b. Rows follow a's stat order,
// then stats only b has.
func Table(a, b pokedex.Detail) Result {
	statsA := statsByName(a)
	statsB := statsByName(b)

	labels := make(map[string]string, len(a.Stats)+len(b.Stats))
	order := make([]string, 0, len(a.Stats)+len(b.Stats))
	for _, s := range a.Stats {
		if _, seen := labels[s.Name]; !seen {
			order = append(order, s.Name)
			labels[s.Name] = s.DisplayName
		}
	}
	for _, s := range b.Stats {
		if _, seen := labels[s.Name]; !seen {
			order = append(order, s.Name)
			labels[s.Name] = s.DisplayName
		}
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		label := labels[name]
		if label == "" {
			label = name
		}
		va, vb := statsA[name], statsB[name]
		rows = append(rows, Row{Stat: name, Label: label, A: va, B: vb, Winner: winner(va, vb)})
	}

	totalA, totalB := total(a), total(b)
	return Result{
		NameA:       a.Name,
		NameB:       b.Name,
		Rows:        rows,
		TotalA:      totalA,
		TotalB:      totalB,
		TotalWinner: winner(totalA, totalB),
	}
}

func statsByName(d pokedex.Detail) map[string]int {
	m := make(map[string]int, len(d.Stats))
	for _, s := range d.Stats {
		m[s.Name] = s.BaseStat
	}
	return m
}

func total(d pokedex.Detail) int {
	sum := 0
	for _, s := range d.Stats {
		sum += s.BaseStat
	}
	return sum
}
