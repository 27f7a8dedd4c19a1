// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similar

import "strings"

// ResourceType is the coarse class of a computational resource.
type ResourceType string

const (
	ResourceGPU     ResourceType = "gpu"
	ResourceCPU     ResourceType = "cpu"
	ResourceStorage ResourceType = "storage"
)

// ResourceCredit is the partial credit granted when a candidate holds a
// resource of the type its signature's domain cues point to.
var ResourceCredit = map[ResourceType]float64{
	ResourceGPU:     0.5,
	ResourceCPU:     0.3,
	ResourceStorage: 0.2,
}

// CueTable maps signature keywords to the resource type they imply. A cue
// matches a signature term that starts with it, so "neural" also covers
// "neuralnet" and "simulat" covers "simulation" and "simulations".
var CueTable = []struct {
	Cue  string
	Type ResourceType
}{
	{"machine", ResourceGPU},
	{"neural", ResourceGPU},
	{"deep", ResourceGPU},
	{"learning", ResourceGPU},
	{"training", ResourceGPU},
	{"vision", ResourceGPU},
	{"language", ResourceGPU},
	{"transformer", ResourceGPU},
	{"simulat", ResourceCPU},
	{"molecular", ResourceCPU},
	{"dynamics", ResourceCPU},
	{"climate", ResourceCPU},
	{"fluid", ResourceCPU},
	{"quantum", ResourceCPU},
	{"astrophysic", ResourceCPU},
	{"genom", ResourceStorage},
	{"sequenc", ResourceStorage},
	{"archive", ResourceStorage},
	{"imaging", ResourceStorage},
	{"dataset", ResourceStorage},
}

// resourceMarkers classifies a resource by substrings of its name. The first
// matching entry wins; anything unmatched is treated as CPU.
var resourceMarkers = []struct {
	Marker string
	Type   ResourceType
}{
	{"gpu", ResourceGPU},
	{"a100", ResourceGPU},
	{"v100", ResourceGPU},
	{"h100", ResourceGPU},
	{"storage", ResourceStorage},
	{"archive", ResourceStorage},
	{"ranch", ResourceStorage},
	{"ocean", ResourceStorage},
	{"disk", ResourceStorage},
	{"tape", ResourceStorage},
}

// ClassifyResource returns the resource type implied by a resource name.
func ClassifyResource(name string) ResourceType {
	lower := strings.ToLower(name)
	for _, m := range resourceMarkers {
		if strings.Contains(lower, m.Marker) {
			return m.Type
		}
	}
	return ResourceCPU
}

// ImpliedTypes returns the resource types cued by the signature terms.
func ImpliedTypes(signature string) map[ResourceType]bool {
	implied := make(map[ResourceType]bool)
	for _, term := range strings.Fields(strings.ToLower(signature)) {
		for _, c := range CueTable {
			if strings.HasPrefix(term, c.Cue) {
				implied[c.Type] = true
			}
		}
	}
	return implied
}

// ResourceHeuristic scores in [0, 0.5] how well the candidate's resources
// align with the domain cues in the signature. It returns the largest credit
// among aligned types, or 0 when nothing aligns.
func ResourceHeuristic(signature string, resourceNames []string) float64 {
	implied := ImpliedTypes(signature)
	if len(implied) == 0 {
		return 0
	}
	var best float64
	for _, name := range resourceNames {
		rt := ClassifyResource(name)
		if implied[rt] && ResourceCredit[rt] > best {
			best = ResourceCredit[rt]
		}
	}
	return best
}
