package lot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultZones is the layout of the lot when SPOT_ZONES is not set.
const DefaultZones = "A:1-15,B:1-24,C:1-23,D:1-12,E:1-11"

var ErrInvalidZones = errors.New("invalid spot zones")

type Zone struct {
	Name  string `json:"name"`
	First int    `json:"first"`
	Last  int    `json:"last"`
}

// Catalog is the fixed set of spot ids, e.g. "A1" through "E11".
type Catalog struct {
	zones []Zone
	spots []string
	index map[string]struct{}
}

// ParseZones reads a comma separated list of ZONE:FIRST-LAST ranges.
func ParseZones(s string) (*Catalog, error) {
	c := &Catalog{index: make(map[string]struct{})}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, bounds, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q has no range", ErrInvalidZones, part)
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("%w: %q has no zone name", ErrInvalidZones, part)
		}

		lo, hi, ok := strings.Cut(bounds, "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q range must be FIRST-LAST", ErrInvalidZones, part)
		}
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidZones, part, err)
		}
		last, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidZones, part, err)
		}
		if first < 1 || last < first {
			return nil, fmt.Errorf("%w: %q range is empty", ErrInvalidZones, part)
		}

		for n := first; n <= last; n++ {
			id := name + strconv.Itoa(n)
			if _, dup := c.index[id]; dup {
				return nil, fmt.Errorf("%w: spot %s listed twice", ErrInvalidZones, id)
			}
			c.index[id] = struct{}{}
			c.spots = append(c.spots, id)
		}
		c.zones = append(c.zones, Zone{Name: name, First: first, Last: last})
	}

	if len(c.spots) == 0 {
		return nil, fmt.Errorf("%w: no spots", ErrInvalidZones)
	}

	return c, nil
}

// Has reports whether spot names a catalog spot. Case is ignored.
func (c *Catalog) Has(spot string) bool {
	_, ok := c.index[strings.ToUpper(strings.TrimSpace(spot))]
	return ok
}

// Spots returns every spot id in zone order.
func (c *Catalog) Spots() []string {
	out := make([]string, len(c.spots))
	copy(out, c.spots)
	return out
}

func (c *Catalog) Zones() []Zone {
	out := make([]Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

func (c *Catalog) Len() int {
	return len(c.spots)
}
