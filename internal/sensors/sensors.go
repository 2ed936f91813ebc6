// Package sensors simulates the in-field sensor network: noisy moisture,
// nutrient, and pest readings from battery-powered nodes that occasionally
// fail and get serviced. The farm's decision engine sees these readings,
// never the ground truth.
package sensors

import (
	"math/rand"
)

// Kind is the measurement a node takes.
type Kind string

const (
	KindMoisture Kind = "soil_moisture"
	KindNutrient Kind = "nutrient"
	KindPest     Kind = "pest"
)

var kinds = []Kind{KindMoisture, KindNutrient, KindPest}

// Node is one deployed sensor.
type Node struct {
	ID          int
	Kind        Kind
	Battery     float64 // percent
	Operational bool
}

// Network is the set of nodes covering one farm.
type Network struct {
	nodes []*Node
	rng   *rand.Rand
}

// NewNetwork deploys ~1.5 nodes per hectare (minimum one per kind),
// cycling through the three sensor kinds.
func NewNetwork(seed int64, areaHa float64) *Network {
	count := int(areaHa * 1.5)
	if count < 3 {
		count = 3
	}
	n := &Network{rng: rand.New(rand.NewSource(seed))}
	for i := 0; i < count; i++ {
		n.nodes = append(n.nodes, &Node{
			ID:          i,
			Kind:        kinds[i%3],
			Battery:     100,
			Operational: true,
		})
	}
	return n
}

// Truth is the ground-truth field state a reading is sampled from.
type Truth struct {
	Moisture float64 // [0,1]
	SoilN    float64 // kg/ha
	Pest     float64 // [0,1]
}

// Reading is the aggregated view the decision engine receives.
type Reading struct {
	Moisture float64 `json:"moisture"` // [0,1]
	SoilN    float64 `json:"soil_n"`   // kg/ha
	Pest     float64 `json:"pest"`     // [0,1]
}

// Collect polls every node once and averages the surviving measurements.
// Nodes drain battery per poll, fail at random, and occasionally get
// serviced back into operation. Kinds with no live node fall back to zero,
// matching a dashboard that shows nothing rather than inventing data.
func (n *Network) Collect(t Truth) Reading {
	sums := map[Kind]float64{}
	counts := map[Kind]int{}

	for _, node := range n.nodes {
		if !node.Operational {
			// Field crew services ~5% of downed nodes per day.
			if n.rng.Float64() < 0.05 {
				node.Operational = true
				node.Battery = 100
			}
			continue
		}

		node.Battery -= 0.1 + n.rng.Float64()*0.4
		if node.Battery <= 0 || n.rng.Float64() < 0.005 {
			node.Operational = false
			continue
		}

		var v float64
		switch node.Kind {
		case KindMoisture:
			v = clamp01(t.Moisture + n.rng.NormFloat64()*0.03)
		case KindNutrient:
			v = t.SoilN + n.rng.NormFloat64()*1.2
			if v < 0 {
				v = 0
			}
		case KindPest:
			v = clamp01(t.Pest + n.rng.NormFloat64()*0.03)
		}
		sums[node.Kind] += v
		counts[node.Kind]++
	}

	r := Reading{}
	if c := counts[KindMoisture]; c > 0 {
		r.Moisture = sums[KindMoisture] / float64(c)
	}
	if c := counts[KindNutrient]; c > 0 {
		r.SoilN = sums[KindNutrient] / float64(c)
	}
	if c := counts[KindPest]; c > 0 {
		r.Pest = sums[KindPest] / float64(c)
	}
	return r
}

// Uptime returns the percentage of nodes currently operational.
func (n *Network) Uptime() float64 {
	if len(n.nodes) == 0 {
		return 0
	}
	up := 0
	for _, node := range n.nodes {
		if node.Operational {
			up++
		}
	}
	return float64(up) / float64(len(n.nodes)) * 100
}

// Size returns the node count.
func (n *Network) Size() int { return len(n.nodes) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
