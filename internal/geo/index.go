package geo

import (
	"fmt"
	"hub-routing-service/internal/domain"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
)

const (
	indexDimensions  = 2
	indexMinChildren = 4
	indexMaxChildren = 16
	pointTolerance   = 1e-9
)

type hubItem struct {
	id   uuid.UUID
	at   domain.Coordinates
	rect *rtreego.Rect
}

func (h *hubItem) Bounds() *rtreego.Rect { return h.rect }

// HubIndex is an R-tree over hub locations (x = lon, y = lat).
// It is built once per snapshot and read-only afterwards.
type HubIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewHubIndex indexes the given hubs.
func NewHubIndex(hubs []domain.Hub) *HubIndex {
	idx := &HubIndex{tree: rtreego.NewTree(indexDimensions, indexMinChildren, indexMaxChildren)}
	for _, h := range hubs {
		p := rtreego.Point{h.Location.Lon, h.Location.Lat}
		idx.tree.Insert(&hubItem{id: h.ID, at: h.Location, rect: p.ToRect(pointTolerance)})
		idx.size++
	}
	return idx
}

// Size is the number of indexed hubs.
func (x *HubIndex) Size() int { return x.size }

// WithinLineBuffer returns the ids of hubs within bufferMeters of [a, b].
// The R-tree narrows candidates to the buffered bounding box; each candidate
// is then checked with IsPointInLineBuffer.
func (x *HubIndex) WithinLineBuffer(a, b domain.Coordinates, bufferMeters float64) ([]uuid.UUID, error) {
	if x.size == 0 {
		return nil, nil
	}
	bounds, err := bufferedBounds(a, b, bufferMeters)
	if err != nil {
		return nil, err
	}

	var out []uuid.UUID
	for _, s := range x.tree.SearchIntersect(bounds) {
		item, ok := s.(*hubItem)
		if !ok {
			continue
		}
		if IsPointInLineBuffer(item.at, a, b, bufferMeters) {
			out = append(out, item.id)
		}
	}
	return out, nil
}

// bufferedBounds expands the segment's bounding box by the buffer. Longitude
// degrees shrink with latitude, so the lon margin is widened accordingly.
func bufferedBounds(a, b domain.Coordinates, bufferMeters float64) (*rtreego.Rect, error) {
	latMargin := 2*bufferMeters/MetersPerDegree + pointTolerance
	maxLat := math.Max(math.Abs(a.Lat), math.Abs(b.Lat)) + latMargin
	lonMargin := 360.0
	if cos := math.Cos(toRadians(math.Min(maxLat, 89.9))); cos > 0 {
		lonMargin = math.Min(360, latMargin/cos)
	}

	minLon := math.Min(a.Lon, b.Lon) - lonMargin
	minLat := math.Min(a.Lat, b.Lat) - latMargin
	lengths := []float64{
		math.Abs(a.Lon-b.Lon) + 2*lonMargin,
		math.Abs(a.Lat-b.Lat) + 2*latMargin,
	}
	r, err := rtreego.NewRect(rtreego.Point{minLon, minLat}, lengths)
	if err != nil {
		return nil, fmt.Errorf("hub index: buffered bounds: %w", err)
	}
	return r, nil
}
